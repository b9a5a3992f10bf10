package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sessionbook-backend/internal/events"
	"sessionbook-backend/internal/models"
	"sessionbook-backend/internal/services"
)

type stubLookup struct {
	booking *models.Booking
}

func (s *stubLookup) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, &services.NotFoundError{Message: "Booking not found"}
	}
	return s.booking, nil
}

type failingLookup struct{}

func (failingLookup) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return nil, errors.New("store unavailable")
}

// racingLookup confirms the booking while the hub is reading it and returns
// the copy taken before the confirmation.
type racingLookup struct {
	booking *models.Booking
	broker  events.Broker
}

func (l *racingLookup) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	before := *l.booking
	err := events.PublishJSON(ctx, l.broker, events.BookingChannel(id), models.WSMessage{
		Type:    "booking_confirmed",
		Payload: models.ConfirmedEvent{BookingID: id},
	})
	if err != nil {
		return nil, err
	}
	return &before, nil
}

func dialBooking(t *testing.T, hub *Hub, bookingID string) (*gorilla.Conn, *httptest.Server) {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/bookings/{id}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/bookings/" + bookingID + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn, srv
}

func readMessage(t *testing.T, conn *gorilla.Conn) models.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg models.WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_StreamsBookingEvents(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	booking := &models.Booking{ID: uuid.New(), Step: models.StepReview}
	broker := events.NewMemoryBroker()
	hub := NewHub(broker, &stubLookup{booking: booking}, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/bookings/{id}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/bookings/" + booking.ID.String() + "/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	snapshot := readMessage(t, conn)
	assert.Equal(t, "status_update", snapshot.Type)

	require.NoError(t, events.PublishJSON(context.Background(), broker, events.BookingChannel(booking.ID),
		models.WSMessage{Type: "booking_confirmed"}))
	assert.Equal(t, "booking_confirmed", readMessage(t, conn).Type)

	conn.Close()
	hub.Close()
	srv.Close()
}

func TestHub_RejectsUnknownBooking(t *testing.T) {
	hub := NewHub(events.NewMemoryBroker(), &stubLookup{}, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/bookings/{id}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	base := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := gorilla.DefaultDialer.Dial(base+"/bookings/"+uuid.NewString()+"/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)

	_, resp, err = gorilla.DefaultDialer.Dial(base+"/bookings/not-a-uuid/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHub_TransitionDuringConnectIsDelivered(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	booking := &models.Booking{ID: uuid.New(), Step: models.StepProcessing}
	broker := events.NewMemoryBroker()
	hub := NewHub(broker, &racingLookup{booking: booking, broker: broker}, zerolog.Nop())

	conn, srv := dialBooking(t, hub, booking.ID.String())

	snapshot := readMessage(t, conn)
	assert.Equal(t, "status_update", snapshot.Type)
	assert.Equal(t, "booking_confirmed", readMessage(t, conn).Type)

	conn.Close()
	hub.Close()
	srv.Close()
}

func TestHub_LookupFailureIs500(t *testing.T) {
	hub := NewHub(events.NewMemoryBroker(), failingLookup{}, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/bookings/{id}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/bookings/" + uuid.NewString() + "/ws"
	_, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 500, resp.StatusCode)
}

type mapLookup map[uuid.UUID]*models.Booking

func (m mapLookup) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := m[id]
	if !ok {
		return nil, &services.NotFoundError{Message: "Booking not found"}
	}
	return b, nil
}

func TestHub_SlowClientDoesNotBlockOtherBookings(t *testing.T) {
	slow := &models.Booking{ID: uuid.New(), Step: models.StepProcessing}
	other := &models.Booking{ID: uuid.New(), Step: models.StepReview}
	broker := events.NewMemoryBroker()
	hub := NewHub(broker, mapLookup{slow.ID: slow, other.ID: other}, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/bookings/{id}/ws", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/bookings/"

	slowConn, _, err := gorilla.DefaultDialer.Dial(base+slow.ID.String()+"/ws", nil)
	require.NoError(t, err)
	defer slowConn.Close()
	readMessage(t, slowConn)

	// Hold the slow client's write lock so the next broadcast stalls on it.
	hub.mu.RLock()
	stalled := hub.connections[slow.ID][0]
	hub.mu.RUnlock()
	stalled.mu.Lock()

	require.NoError(t, events.PublishJSON(context.Background(), broker, events.BookingChannel(slow.ID),
		models.WSMessage{Type: "booking_confirmed"}))
	time.Sleep(50 * time.Millisecond)

	otherConn, _, err := gorilla.DefaultDialer.Dial(base+other.ID.String()+"/ws", nil)
	require.NoError(t, err)
	defer otherConn.Close()
	assert.Equal(t, "status_update", readMessage(t, otherConn).Type)

	stalled.mu.Unlock()
	assert.Equal(t, "booking_confirmed", readMessage(t, slowConn).Type)
}
