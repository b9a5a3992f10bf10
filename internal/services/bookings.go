package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sessionbook-backend/internal/catalog"
	"sessionbook-backend/internal/events"
	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/models"
	"sessionbook-backend/internal/repository"
)

const paymentMethod = "Apple Pay"

type PaymentQueue interface {
	Enqueue(ctx context.Context, job models.PaymentJob) error
}

// BookingService drives a booking through select_time, review, processing and
// confirmed. Bookings live in memory for the lifetime of the process.
type BookingService struct {
	catalog *catalog.Catalog
	repo    *repository.BookingRepo
	queue   PaymentQueue
	broker  events.Broker
	tickets *TicketService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewBookingService(
	c *catalog.Catalog,
	repo *repository.BookingRepo,
	queue PaymentQueue,
	broker events.Broker,
	tickets *TicketService,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		catalog: c,
		repo:    repo,
		queue:   queue,
		broker:  broker,
		tickets: tickets,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *BookingService) Start(ctx context.Context, sessionID int) (*models.Booking, error) {
	if _, ok := s.catalog.Find(sessionID); !ok {
		return nil, &NotFoundError{Message: "Session not found"}
	}

	now := s.now().UTC()
	b := &models.Booking{
		SessionID:     sessionID,
		Step:          models.StepSelectTime,
		DateLabel:     tomorrowLabel(now),
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.RecordBookingTransition(string(b.Step))
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return b, nil
}

// SelectTime picks one of the session's available slots. Picking again before
// paying replaces the earlier choice.
func (s *BookingService) SelectTime(ctx context.Context, id uuid.UUID, slot string) (*models.Booking, error) {
	b, err := s.repo.Update(ctx, id, func(b *models.Booking) error {
		if b.Step != models.StepSelectTime && b.Step != models.StepReview {
			return &ConflictError{Message: "Time can no longer be changed for this booking"}
		}

		session, ok := s.catalog.Find(b.SessionID)
		if !ok {
			return &NotFoundError{Message: "Session not found"}
		}
		if !slices.Contains(session.Availability, slot) {
			return &ValidationError{Fields: map[string]string{"time": "Time is not available for this session"}}
		}

		b.Time = slot
		b.Step = models.StepReview
		b.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.transitioned(ctx, b)
	return b, nil
}

// Pay submits the simulated payment. The booking stays in processing until a
// payment worker confirms it.
func (s *BookingService) Pay(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.repo.Update(ctx, id, func(b *models.Booking) error {
		if b.Step != models.StepReview {
			return &ConflictError{Message: "Select a time before paying"}
		}

		session, ok := s.catalog.Find(b.SessionID)
		if !ok {
			return &NotFoundError{Message: "Session not found"}
		}

		total := session.Price
		b.Total = &total
		b.Step = models.StepProcessing
		b.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	// Announce processing before a worker can possibly confirm.
	s.transitioned(ctx, b)

	job := models.PaymentJob{BookingID: b.ID, EnqueuedAt: s.now().UTC()}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		// Put the booking back so the client can retry.
		reverted, rerr := s.repo.Update(ctx, id, func(b *models.Booking) error {
			b.Step = models.StepReview
			b.Total = nil
			b.UpdatedAt = s.now().UTC()
			return nil
		})
		if rerr == nil {
			s.transitioned(ctx, reverted)
		}
		return nil, fmt.Errorf("failed to enqueue payment: %w", err)
	}

	return b, nil
}

// ConfirmPayment is called by the payment workers once the delay has passed.
func (s *BookingService) ConfirmPayment(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.Update(ctx, id, func(b *models.Booking) error {
		if b.Step != models.StepProcessing {
			return &ConflictError{Message: fmt.Sprintf("booking is %s, not processing", b.Step)}
		}

		now := s.now().UTC()
		b.Step = models.StepConfirmed
		b.ConfirmedAt = &now
		b.UpdatedAt = now
		b.TicketCode = s.tickets.Code(b.ID)
		return nil
	})
	if err != nil {
		return mapRepoError(err)
	}

	metrics.RecordBookingTransition(string(b.Step))
	s.publish(ctx, b.ID, models.WSMessage{
		Type: "booking_confirmed",
		Payload: models.ConfirmedEvent{
			BookingID: b.ID,
			SessionID: b.SessionID,
			TicketURL: fmt.Sprintf("/api/v1/bookings/%s/ticket", b.ID),
		},
	})
	return nil
}

func (s *BookingService) Ticket(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Step != models.StepConfirmed {
		return nil, &ConflictError{Message: "Booking is not confirmed yet"}
	}

	session, ok := s.catalog.Find(b.SessionID)
	if !ok {
		return nil, &NotFoundError{Message: "Session not found"}
	}

	return &models.Ticket{
		BookingID:  b.ID,
		SessionID:  session.ID,
		Title:      session.Title,
		Date:       b.DateLabel,
		Time:       b.Time,
		Location:   LocationLabel(session.City),
		Code:       b.TicketCode,
		QRPayload:  QRPayload(b.ID, b.TicketCode),
		IssuedAt:   *b.ConfirmedAt,
		ReviewPath: fmt.Sprintf("/api/v1/sessions/%d/reviews", session.ID),
	}, nil
}

func (s *BookingService) VerifyTicket(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if b.Step != models.StepConfirmed {
		return false, nil
	}
	return s.tickets.Verify(id, code), nil
}

func (s *BookingService) transitioned(ctx context.Context, b *models.Booking) {
	metrics.RecordBookingTransition(string(b.Step))
	s.publish(ctx, b.ID, models.WSMessage{
		Type:    "status_update",
		Payload: models.StatusUpdate{BookingID: b.ID, Step: b.Step},
	})
}

func (s *BookingService) publish(ctx context.Context, id uuid.UUID, msg models.WSMessage) {
	if err := events.PublishJSON(ctx, s.broker, events.BookingChannel(id), msg); err != nil {
		s.logger.Warn().Err(err).Str("booking_id", id.String()).Str("type", msg.Type).Msg("failed to publish booking event")
	}
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: "Booking not found"}
	}
	return err
}

func tomorrowLabel(now time.Time) string {
	return "Tomorrow, " + now.AddDate(0, 0, 1).Format("January 2")
}
