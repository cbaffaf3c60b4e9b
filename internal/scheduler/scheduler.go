package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/a62mds/stock-trading/internal/model"
	"github.com/a62mds/stock-trading/internal/updater"
)

// Scheduler runs periodic update cycles for a set of symbols.
type Scheduler struct {
	Cron     *cron.Cron
	Updater  *updater.Updater
	Symbols  []string
	Interval model.Interval
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, u *updater.Updater, symbols []string, interval model.Interval) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Updater:  u,
		Symbols:  symbols,
		Interval: interval,
		Ctx:      ctx,
	}
}

// Register schedules the update task on the given cron spec.
func (s *Scheduler) Register(updateCron string) error {
	if _, err := s.Cron.AddFunc(updateCron, s.updateTask); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	return nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop halts the cron scheduler.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the update task immediately, outside the schedule.
func (s *Scheduler) RunNow() {
	s.updateTask()
}

func (s *Scheduler) updateTask() {
	for _, symbol := range s.Symbols {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO] update task cancelled")
			return
		default:
		}
		if _, err := s.Updater.Update(symbol, s.Interval); err != nil {
			log.Printf("[ERROR] update %s: %v", symbol, err)
		}
	}
}
