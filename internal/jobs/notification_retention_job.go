package jobs

import (
	"context"
	"time"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const notificationRetentionJobName = "notification_retention"

// PurgeSeenNotificationsHandler deletes seen notifications older than the
// command's retention.
type PurgeSeenNotificationsHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeSeenNotificationsCommand) (int64, error)
}

// NotificationRetentionJob periodically deletes notifications their owners
// have already seen.
type NotificationRetentionJob struct {
	handler   PurgeSeenNotificationsHandler
	schedule  string
	retention time.Duration
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewNotificationRetentionJob creates the job. schedule is a six field cron
// expression (seconds first).
func NewNotificationRetentionJob(
	handler PurgeSeenNotificationsHandler,
	schedule string,
	retention time.Duration,
	logger *zap.Logger,
) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With(zap.String("component", notificationRetentionJobName)),
	}
}

// Start schedules the job.
func (j *NotificationRetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification retention job started",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop stops scheduling and waits for a running purge to finish.
func (j *NotificationRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification retention job stopped")
}

func (j *NotificationRetentionJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewPurgeSeenNotificationsCommand(j.retention)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(notificationRetentionJobName, "error").Inc()
		j.logger.Error("invalid notification retention", zap.Error(err))
		return
	}

	deleted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(notificationRetentionJobName, "error").Inc()
		j.logger.Error("notification retention job failed", zap.Error(err))
		return
	}

	metrics.JobRunsTotal.WithLabelValues(notificationRetentionJobName, "ok").Inc()
	if deleted > 0 {
		j.logger.Info("seen notifications purged", zap.Int64("deleted", deleted))
	}
}
