// Package jobs provides scheduled background tasks for courierhub.
//
// Jobs are cron based (github.com/robfig/cron/v3, six field expressions with
// seconds) and are managed through JobManager:
//
//	retention := jobs.NewNotificationRetentionJob(purgeHandler, "0 0 3 * * *", 30*24*time.Hour, logger)
//	jobManager := jobs.NewJobManager(retention)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// NotificationRetentionJob deletes notifications that were seen longer ago
// than the configured retention. Failures are logged and counted in
// courierhub_job_runs_total; the next run retries.
package jobs
