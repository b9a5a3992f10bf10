package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/repository"
)

// BookingSweeper drops bookings that were abandoned before payment so the
// in-memory store does not grow without bound.
type BookingSweeper struct {
	repo     *repository.BookingRepo
	ttl      time.Duration
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func NewBookingSweeper(repo *repository.BookingRepo, ttl, interval time.Duration, logger zerolog.Logger) *BookingSweeper {
	return &BookingSweeper{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *BookingSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	select {
	case <-s.stopChan:
		return
	default:
	}
	s.started = true

	go s.loop()
	s.logger.Info().Dur("ttl", s.ttl).Dur("interval", s.interval).Msg("booking sweeper started")
}

// Stop ends the loop and waits for it. It returns at once if Start never ran.
func (s *BookingSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if started {
		<-s.done
	}
}

func (s *BookingSweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.Sweep(context.Background())
		}
	}
}

// Sweep removes unconfirmed bookings idle for longer than the TTL.
func (s *BookingSweeper) Sweep(ctx context.Context) int {
	removed := s.repo.DeleteUnconfirmedBefore(ctx, s.now().Add(-s.ttl))
	if removed > 0 {
		metrics.RecordBookingsSwept(removed)
		s.logger.Info().Int("removed", removed).Msg("swept abandoned bookings")
	}
	return removed
}
