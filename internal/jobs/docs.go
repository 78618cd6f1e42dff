// Package jobs provides scheduled background tasks for the luggage counter.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. RetentionJob - Runs daily (03:00 shop time by default) and deletes orders
// created before now minus ORDER_RETENTION_DAYS
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	retention, err := jobs.NewRetentionJob(purgeHandler, clock, 60*24*time.Hour, "", recorder, logger)
//	if err != nil {
//		return err
//	}
//	jobManager := jobs.NewJobManager(retention)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are standard five-field cron expressions. A CRON_TZ= prefix pins
// the expression to the shop's zone regardless of the host's.
//
// # Error Handling
//
// - Run failures are logged and reported to the observer, never propagated
// - Failed job starts will stop any already running jobs
package jobs
