package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"sessionbook-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

// BookingRepo keeps bookings in process memory only; nothing survives a restart.
type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]models.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[uuid.UUID]models.Booking)}
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

// Update applies fn to the stored booking under the write lock, so a check and
// its state change happen atomically. An error from fn leaves the booking as is.
func (r *BookingRepo) Update(ctx context.Context, id uuid.UUID, fn func(b *models.Booking) error) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(&b); err != nil {
		return nil, err
	}
	r.bookings[id] = b
	return &b, nil
}

// DeleteUnconfirmedBefore removes bookings that never reached confirmation and
// were last touched before cutoff. It returns how many were removed.
func (r *BookingRepo) DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, b := range r.bookings {
		if b.Step == models.StepConfirmed || b.Step == models.StepProcessing {
			continue
		}
		if b.UpdatedAt.Before(cutoff) {
			delete(r.bookings, id)
			removed++
		}
	}
	return removed
}

func (r *BookingRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bookings)
}
