package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Service drives the sample, compare and record cycle on a fixed ticker
type Service struct {
	interval time.Duration
	sampler  *Sampler
	logger   *ChangeLogger

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

func NewService(interval time.Duration, sampler *Sampler, logger *ChangeLogger) *Service {
	return &Service{
		interval: interval,
		sampler:  sampler,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start polls until ctx is cancelled, Stop is called, or a record cannot be
// written. Only the last case returns a non-context error.
func (s *Service) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("tracker is already running")
	}
	defer s.running.Store(false)

	log.Printf("Starting tracker with %v poll interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	if err := s.trackOnce(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("Tracker stopped by context")
			return ctx.Err()

		case <-s.stopChan:
			log.Println("Tracker stopped")
			return nil

		case <-ticker.C:
			if err := s.trackOnce(); err != nil {
				return err
			}
		}
	}
}

func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

func (s *Service) IsRunning() bool {
	return s.running.Load()
}

func (s *Service) trackOnce() error {
	return s.logger.Observe(s.sampler.Sample())
}
