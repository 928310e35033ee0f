// Package jobs implements background work for the FreelanceHub API.
//
// Jobs run on their own goroutine with Start/Stop and expose RunOnce for
// tests and manual triggers.
//
// # StoreMonitor
//
// StoreMonitor probes the backing store on an interval and caches the
// outcome. It satisfies handler.Pinger, so GET /health reports the last
// probe instead of querying the database per request.
//
//	monitor := jobs.NewStoreMonitor(jobs.StoreMonitorConfig{
//	    Store:    db,
//	    Interval: 15 * time.Second,
//	    Logger:   logger,
//	})
//	monitor.Start()
//	defer monitor.Stop()
package jobs
