// Package jobs runs the service's background work on robfig/cron schedules.
//
// # Available Jobs
//
// ProducerNotificationJob drains the notification_jobs queue: on every tick
// it claims a batch of pending jobs and notifies the producers of each
// job's order cycle. The admin request that queued a job never waits for
// it, and failures are only logged.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(cfg, deliverHandler, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds, for example
// "*/30 * * * * *". Each tick gets its own context with a timeout, and
// StopAll waits for a running tick to finish.
package jobs
