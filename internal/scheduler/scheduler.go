package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

// Scheduler periodically re-runs the dashboard pipeline for tracked cities,
// so the history log keeps filling between user actions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, service *weather.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. With no tracked cities configured this is a no-op.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no tracked cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	// Cities are refreshed one at a time; the pipeline is sequential by
	// design and a slow provider only delays the remaining cities.
	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running tracked-city refresh")

		for _, city := range s.cities {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, err := s.service.GetWeather(ctx, city); err != nil {
				log.Printf("scheduler: refresh failed for %s: %v", city, err)
			}
			cancel()
		}

		log.Println("scheduler: completed tracked-city refresh")
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
