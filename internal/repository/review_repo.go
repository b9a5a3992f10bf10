package repository

import (
	"context"
	"sync"

	"sessionbook-backend/internal/models"
)

type ReviewRepo struct {
	mu        sync.RWMutex
	bySession map[int][]models.Review
}

func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{bySession: make(map[int][]models.Review)}
}

func (r *ReviewRepo) Create(ctx context.Context, review models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySession[review.SessionID] = append(r.bySession[review.SessionID], review)
	return nil
}

// ListBySession returns submitted reviews newest first.
func (r *ReviewRepo) ListBySession(ctx context.Context, sessionID int) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.bySession[sessionID]
	out := make([]models.Review, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}
