// Package fanout delivers order announcements to their recipients.
//
// Every recipient is handled by its own task: the push goes out through the
// injected notifier under a timeout and a notification record is written
// afterwards whatever the push outcome was. Failures stay inside the task and
// are only logged and counted.
package fanout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 16
	defaultPushTimeout = 5 * time.Second
)

// NotificationStore persists notification records.
type NotificationStore interface {
	Add(ctx context.Context, n *notification.Notification) error
}

// Config bounds a dispatch.
type Config struct {
	// Concurrency is the maximum number of recipients served at once.
	Concurrency int
	// PushTimeout bounds a single push call.
	PushTimeout time.Duration
}

// Report summarises one dispatched batch.
type Report struct {
	Recipients    int
	Pushed        int
	PushFailed    int
	Persisted     int
	PersistFailed int
}

// Dispatcher fans a message out to recipients concurrently.
//
// Example:
//
//	d, err := fanout.NewDispatcher(notifier, store, log, fanout.Config{Concurrency: 8})
//	if err != nil {
//	    return err
//	}
//	d.Go(ctx, recipients, services.NewOrderFromClient("Shop"))
//	...
//	_ = d.Wait(shutdownCtx)
type Dispatcher struct {
	notifier ports.Notifier
	store    NotificationStore
	log      *zap.Logger
	cfg      Config
	now      func() time.Time

	inflight sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Zero config values fall back to defaults.
func NewDispatcher(notifier ports.Notifier, store NotificationStore, log *zap.Logger, cfg Config) (*Dispatcher, error) {
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if store == nil {
		return nil, errs.NewValueIsRequiredError("store")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = defaultPushTimeout
	}

	return &Dispatcher{
		notifier: notifier,
		store:    store,
		log:      log.With(zap.String("component", "fanout")),
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// Go dispatches in the background. The request context only contributes its
// values; cancelling it does not stop the batch.
func (d *Dispatcher) Go(ctx context.Context, recipients []kernel.UUID, msg notification.Message) {
	if len(recipients) == 0 {
		return
	}

	detached := context.WithoutCancel(ctx)
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		d.Dispatch(detached, recipients, msg)
	}()
}

// Wait blocks until every batch started by Go has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch serves every recipient and returns once all of them are done. It
// never fails: push and persistence errors are reflected in the report only.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []kernel.UUID, msg notification.Message) Report {
	report := Report{Recipients: len(recipients)}
	if len(recipients) == 0 {
		return report
	}
	if err := msg.Validate(); err != nil {
		d.log.Error("notification message rejected", zap.Error(err))
		return report
	}

	var pushed, pushFailed, persisted, persistFailed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(d.cfg.Concurrency)
	for _, userID := range recipients {
		g.Go(func() error {
			if err := d.push(ctx, userID, msg); err != nil {
				pushFailed.Add(1)
			} else {
				pushed.Add(1)
			}

			if err := d.persist(ctx, userID, msg); err != nil {
				persistFailed.Add(1)
			} else {
				persisted.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Pushed = int(pushed.Load())
	report.PushFailed = int(pushFailed.Load())
	report.Persisted = int(persisted.Load())
	report.PersistFailed = int(persistFailed.Load())

	d.log.Info("notification batch dispatched",
		zap.String("title", msg.Title),
		zap.Int("recipients", report.Recipients),
		zap.Int("push_failed", report.PushFailed),
		zap.Int("persist_failed", report.PersistFailed),
	)
	return report
}

func (d *Dispatcher) push(ctx context.Context, userID kernel.UUID, msg notification.Message) error {
	pushCtx, cancel := context.WithTimeout(ctx, d.cfg.PushTimeout)
	defer cancel()

	err := d.notifier.Send(pushCtx, userID, msg.Title, msg.Content)
	if err == nil {
		metrics.PushDeliveriesTotal.WithLabelValues("ok").Inc()
		return nil
	}

	outcome := "failed"
	if errors.Is(err, context.DeadlineExceeded) {
		outcome = "timeout"
	}
	metrics.PushDeliveriesTotal.WithLabelValues(outcome).Inc()

	var transportErr *errs.TransportFailureError
	if !errors.As(err, &transportErr) {
		err = errs.NewTransportFailureError("push", userID.String(), err)
	}
	d.log.Warn("push delivery failed", zap.String("user_id", userID.String()), zap.Error(err))
	return err
}

func (d *Dispatcher) persist(ctx context.Context, userID kernel.UUID, msg notification.Message) error {
	n, err := notification.NewNotification(userID, msg, d.now())
	if err == nil {
		err = d.store.Add(ctx, n)
	}
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("persist_notification").Inc()
		d.log.Error("notification not persisted", zap.String("user_id", userID.String()), zap.Error(err))
		return err
	}

	metrics.NotificationsPersistedTotal.Inc()
	return nil
}
