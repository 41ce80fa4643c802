package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Remitente/Models"

	"github.com/robfig/cron/v3"
)

// LogPruner periodically deletes campaign logs older than the retention
// window so the history table does not grow without bound.
type LogPruner struct {
	cronScheduler  *cron.Cron
	store          Models.AccountStore
	retentionDays  int
	runImmediately bool
	jobID          cron.EntryID
}

// NewLogPruner creates a new pruner with the given retention in days.
func NewLogPruner(store Models.AccountStore, retentionDays int, runImmediately bool) *LogPruner {
	return &LogPruner{
		cronScheduler:  cron.New(cron.WithSeconds()),
		store:          store,
		retentionDays:  retentionDays,
		runImmediately: runImmediately,
	}
}

// Start initiates the nightly prune job
func (p *LogPruner) Start() error {
	var err error
	p.jobID, err = p.cronScheduler.AddFunc("0 0 3 * * *", func() {
		log.Println("Running scheduled campaign log prune")
		p.runPrune()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	p.cronScheduler.Start()
	log.Printf("Campaign log pruner started - will run daily at 3:00 AM, retention %d days\n", p.retentionDays)

	if p.runImmediately {
		p.runPrune()
	}

	return nil
}

// Stop terminates the pruner
func (p *LogPruner) Stop() {
	if p.cronScheduler != nil {
		p.cronScheduler.Stop()
		log.Println("Campaign log pruner stopped")
	}
}

// UpdateSchedule changes the prune schedule
// Format: "0 0 3 * * *" = At 03:00:00 AM every day
func (p *LogPruner) UpdateSchedule(schedule string) error {
	p.cronScheduler.Remove(p.jobID)

	var err error
	p.jobID, err = p.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled campaign log prune")
		p.runPrune()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Campaign log prune schedule updated to: %s\n", schedule)
	return nil
}

// RunManualPrune executes a prune outside the schedule
func (p *LogPruner) RunManualPrune() {
	log.Println("Running manual campaign log prune")
	p.runPrune()
}

func (p *LogPruner) runPrune() {
	cutoff := time.Now().AddDate(0, 0, -p.retentionDays)
	removed, err := p.store.PruneCampaignLogs(cutoff)
	if err != nil {
		log.Printf("Error pruning campaign logs: %v\n", err)
		return
	}
	if removed > 0 {
		log.Printf("Pruned %d campaign logs older than %s\n", removed, cutoff.Format("2006-01-02"))
	}
}
