package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/runweather/running-advisor/internal/cache"
)

// Scheduler periodically sweeps expired entries out of the forecast cache.
// Reads already treat expired entries as absent; the sweep just keeps the
// store from accumulating dead rows.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     cache.Store
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a new Scheduler.
func New(store cache.Store, interval time.Duration, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic prune job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		dropped := s.store.Prune(time.Now())
		if dropped > 0 {
			s.log.Infof("scheduler: pruned %d expired cache entries", dropped)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
