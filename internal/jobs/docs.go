// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field format with seconds.
//
// # Available Jobs
//
// 1. QueueDepthJob - logs the depth and the oldest wait of every dealership queue (read-only)
// 2. DirectoryReloadJob - re-reads the technician directory file
//
// Orders are never assigned by a job: technicians request them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager().
//		Add("queue depth", jobs.NewQueueDepthJob(queueHandler, dealerships, clock, "", logger)).
//		Add("directory reload", jobs.NewDirectoryReloadJob(directory, "", logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Queue depth job logs an unreadable dealership and continues with the next one
// - Reload job keeps the loaded technicians when the file is invalid
// - Failed job starts will stop any already running jobs
package jobs
