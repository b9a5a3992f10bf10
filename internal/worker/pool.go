package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sessionbook-backend/internal/metrics"
)

const pollTimeout = time.Second

// Confirmer finishes a booking once its simulated payment has cleared.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID) error
}

// Pool runs the simulated payment processor: each job waits out the payment
// delay and then confirms its booking.
type Pool struct {
	queue       Queue
	confirmer   Confirmer
	delay       time.Duration
	workerCount int
	logger      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(queue Queue, confirmer Confirmer, delay time.Duration, workerCount int, logger zerolog.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		queue:       queue,
		confirmer:   confirmer,
		delay:       delay,
		workerCount: workerCount,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.logger.Info().Int("workers", p.workerCount).Dur("delay", p.delay).Msg("payment workers started")
}

// Stop signals every worker and waits for them to return. Jobs still waiting
// out their delay are abandoned and their bookings stay in processing.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		if p.ctx.Err() != nil {
			p.logger.Debug().Int("worker", id).Msg("payment worker shutting down")
			return
		}

		job, err := p.queue.Dequeue(p.ctx, pollTimeout)
		if err != nil {
			if p.ctx.Err() == nil {
				p.logger.Warn().Err(err).Int("worker", id).Msg("failed to dequeue payment job")
				p.sleep(pollTimeout)
			}
			continue
		}
		if job == nil {
			continue
		}

		if !p.sleep(p.delay) {
			return
		}

		if err := p.confirmer.ConfirmPayment(p.ctx, job.BookingID); err != nil {
			metrics.RecordPayment(false)
			p.logger.Error().Err(err).Int("worker", id).Str("booking_id", job.BookingID.String()).Msg("payment confirmation failed")
			continue
		}

		metrics.RecordPayment(true)
		p.logger.Info().Int("worker", id).Str("booking_id", job.BookingID.String()).
			Dur("queued_for", time.Since(job.EnqueuedAt)).Msg("payment confirmed")
	}
}

// sleep waits for d and reports false if the pool stopped first.
func (p *Pool) sleep(d time.Duration) bool {
	if d <= 0 {
		return p.ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.ctx.Done():
		return false
	}
}
