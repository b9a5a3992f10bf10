package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStep string

const (
	StepSelectTime BookingStep = "select_time"
	StepReview     BookingStep = "review"
	StepProcessing BookingStep = "processing"
	StepConfirmed  BookingStep = "confirmed"
)

type Booking struct {
	ID            uuid.UUID        `json:"id"`
	SessionID     int              `json:"session_id"`
	Step          BookingStep      `json:"step"`
	DateLabel     string           `json:"date"`
	Time          string           `json:"time,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	TicketCode    string           `json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	ConfirmedAt   *time.Time       `json:"confirmed_at,omitempty"`
}

type StartBookingRequest struct {
	SessionID int `json:"session_id"`
}

type SelectTimeRequest struct {
	Time string `json:"time"`
}

type Ticket struct {
	BookingID  uuid.UUID `json:"booking_id"`
	SessionID  int       `json:"session_id"`
	Title      string    `json:"title"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Location   string    `json:"location"`
	Code       string    `json:"code"`
	QRPayload  string    `json:"qr_payload"`
	IssuedAt   time.Time `json:"issued_at"`
	ReviewPath string    `json:"review_path"`
}

// PaymentJob is queued when a booking moves to processing.
type PaymentJob struct {
	BookingID  uuid.UUID `json:"booking_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
