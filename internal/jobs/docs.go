// Package jobs provides scheduled background tasks for the marketplace service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are cron expressions with a leading seconds field, and a run that
// is still in progress when the next one is due is skipped.
//
// # Available Jobs
//
// 1. CollectionRefreshJob - refetches a collection (the producer's orders or the
// moderation queue) with its active parameters
// 2. OutboxRelayJob - publishes pending outbox messages and marks them sent
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewCollectionRefreshJob("orders", orderStore, "*/30 * * * * *", logger),
//		jobs.NewOutboxRelayJob(relayHandler, 100, "*/5 * * * * *", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Run failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
