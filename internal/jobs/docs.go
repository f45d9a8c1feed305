// Package jobs provides the background tasks of the dispatch core.
//
// # Available Jobs
//
//  1. DeadlineScheduler - one in-process timer per accepted order; when it fires the
//     order's accept window is expired if the rider has not picked it up
//  2. AcceptWindowSweepJob - runs every second (robfig/cron/v3) and expires every
//     accepted order whose persisted deadline has passed
//
// The persisted transfer_deadline is the source of truth. Timers only make expiry
// prompt; the sweep catches everything a timer missed, including timers lost in
// a restart.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(orders, scheduler, sweep, logger)
//
//	// Recovery sweep, timers for open windows, then the periodic sweep
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed timer expiry is logged and left to the sweep
//   - A failed sweep is logged and counted; the next run retries
//   - A failed recovery sweep aborts startup
package jobs
