package models

import (
	"github.com/google/uuid"
)

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatusUpdate struct {
	BookingID uuid.UUID   `json:"booking_id"`
	Step      BookingStep `json:"step"`
}

type ConfirmedEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	SessionID int       `json:"session_id"`
	TicketURL string    `json:"ticket_url"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
