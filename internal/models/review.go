package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	SessionID int        `json:"session_id"`
	Name      string     `json:"name"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	Date      string     `json:"date"`
	Featured  bool       `json:"featured"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type SubmitReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
