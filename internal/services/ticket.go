package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const ticketCodeBytes = 8

// TicketService issues and checks the short codes printed on tickets. A code
// is a keyed BLAKE2b digest of the booking id, so it can be verified without
// storing it anywhere.
type TicketService struct {
	key []byte
}

// NewTicketService derives the MAC key from secret. An empty secret gets a
// random key, which invalidates every issued code on restart.
func NewTicketService(secret string) (*TicketService, error) {
	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate ticket key: %w", err)
		}
		return &TicketService{key: key}, nil
	}

	sum := blake2b.Sum256([]byte(secret))
	return &TicketService{key: sum[:]}, nil
}

func (s *TicketService) Code(bookingID uuid.UUID) string {
	h, err := blake2b.New256(s.key)
	if err != nil {
		// Only returned for keys longer than 64 bytes; ours is always 32.
		panic(err)
	}
	h.Write(bookingID[:])
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)[:ticketCodeBytes]))
}

func (s *TicketService) Verify(bookingID uuid.UUID, code string) bool {
	expected := s.Code(bookingID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToUpper(code))) == 1
}

func QRPayload(bookingID uuid.UUID, code string) string {
	return fmt.Sprintf("sessionbook://ticket/%s?code=%s", bookingID, code)
}
