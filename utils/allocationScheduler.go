package utils

import (
	"log"

	"kudos/services"

	"github.com/robfig/cron/v3"
)

// InitializeAllocationScheduler sets up the monthly points allocation job
func InitializeAllocationScheduler(points *services.PointsService) {
	log.Println("[ALLOCATION-SCHEDULER] Initializing allocation scheduler...")

	c := cron.New()

	// Run at midnight on the 1st of every month
	c.AddFunc("0 0 1 * *", func() {
		log.Println("[ALLOCATION-SCHEDULER] Running monthly points allocation...")
		if _, err := points.RunMonthlyAllocation(); err != nil {
			log.Printf("[ALLOCATION-SCHEDULER] Allocation run failed: %v", err)
		}
	})

	c.Start()
	log.Println("[ALLOCATION-SCHEDULER] Allocation scheduler started - runs at midnight on the 1st of every month")
}
