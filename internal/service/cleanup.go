package service

import (
	"context"
	"log"
	"sync"
	"time"

	"guardian-vault-api/internal/repository"
)

// CleanupConfig holds configuration for the annotation cleanup scheduler.
type CleanupConfig struct {
	// StaleThreshold is the age after which untouched annotations are deleted.
	// Default: 30 days.
	StaleThreshold time.Duration

	// CleanupInterval is how often the cleanup runs.
	// Default: 24 hours.
	CleanupInterval time.Duration
}

// CleanupScheduler runs periodic cleanup of stale item annotations.
type CleanupScheduler struct {
	repo     repository.AnnotationRepository
	config   CleanupConfig
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	running  bool
}

// NewCleanupScheduler creates a new cleanup scheduler.
func NewCleanupScheduler(repo repository.AnnotationRepository, config CleanupConfig) *CleanupScheduler {
	if config.StaleThreshold == 0 {
		config.StaleThreshold = 30 * 24 * time.Hour
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 24 * time.Hour
	}

	return &CleanupScheduler{
		repo:   repo,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start begins the cleanup scheduler.
func (s *CleanupScheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ticker = time.NewTicker(s.config.CleanupInterval)
	s.mu.Unlock()

	log.Printf("[CleanupScheduler] Started - Interval: %v, Threshold: %v",
		s.config.CleanupInterval, s.config.StaleThreshold)

	go s.run()
}

func (s *CleanupScheduler) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runCleanup()
		case <-s.stopCh:
			log.Printf("[CleanupScheduler] Stopped")
			return
		}
	}
}

func (s *CleanupScheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.repo.DeleteStale(ctx, s.config.StaleThreshold)
	if err != nil {
		log.Printf("[CleanupScheduler] Error during cleanup: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("[CleanupScheduler] Cleaned up %d stale annotations", deleted)
	}
}

// Stop stops the cleanup scheduler.
func (s *CleanupScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.running = false
	})
}

// RunNow triggers an immediate cleanup run.
func (s *CleanupScheduler) RunNow() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return s.repo.DeleteStale(ctx, s.config.StaleThreshold)
}
