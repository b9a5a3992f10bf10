package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbook-backend/internal/models"
)

func TestBookingRepo_CreateAndGet(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()

	b := &models.Booking{SessionID: 12, Step: models.StepSelectTime}
	require.NoError(t, repo.Create(ctx, b))
	require.NotEqual(t, uuid.Nil, b.ID)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.SessionID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRepo_UpdateRollsBackOnError(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()

	b := &models.Booking{SessionID: 1, Step: models.StepSelectTime}
	require.NoError(t, repo.Create(ctx, b))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, b.ID, func(b *models.Booking) error {
		b.Step = models.StepReview
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := repo.GetByID(ctx, b.ID)
	assert.Equal(t, models.StepSelectTime, got.Step)

	updated, err := repo.Update(ctx, b.ID, func(b *models.Booking) error {
		b.Time = "9:00"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "9:00", updated.Time)
}

func TestBookingRepo_DeleteUnconfirmedBefore(t *testing.T) {
	repo := NewBookingRepo()
	ctx := context.Background()
	now := time.Now()

	stale := &models.Booking{Step: models.StepReview, UpdatedAt: now.Add(-time.Hour)}
	fresh := &models.Booking{Step: models.StepSelectTime, UpdatedAt: now}
	confirmed := &models.Booking{Step: models.StepConfirmed, UpdatedAt: now.Add(-time.Hour)}
	processing := &models.Booking{Step: models.StepProcessing, UpdatedAt: now.Add(-time.Hour)}
	for _, b := range []*models.Booking{stale, fresh, confirmed, processing} {
		require.NoError(t, repo.Create(ctx, b))
	}

	removed := repo.DeleteUnconfirmedBefore(ctx, now.Add(-30*time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 3, repo.Count())

	_, err := repo.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewRepo_NewestFirst(t *testing.T) {
	repo := NewReviewRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Review{SessionID: 5, Comment: "first"}))
	require.NoError(t, repo.Create(ctx, models.Review{SessionID: 5, Comment: "second"}))
	require.NoError(t, repo.Create(ctx, models.Review{SessionID: 6, Comment: "other"}))

	got, err := repo.ListBySession(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Comment)
	assert.Equal(t, "first", got[1].Comment)

	empty, err := repo.ListBySession(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
