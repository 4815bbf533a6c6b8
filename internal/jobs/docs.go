// Package jobs provides scheduled background tasks for the flower shop.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shop backend.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Runs every minute to re-check payment sessions
// for orders that were never confirmed, covering lost webhook deliveries
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(orderUoWFactory, gateway, confirmPaymentHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "0 * * * * *" which means
// it runs at the start of every minute. Confirmation still goes through the
// order lifecycle guard, so a webhook landing first simply wins.
package jobs
