package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"sessionbook-backend/internal/events"
	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/models"
	"sessionbook-backend/internal/services"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// BookingLookup resolves the booking a socket wants to follow.
type BookingLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(data)
}

func (c *client) writeLocked(data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub streams booking events to websocket clients. One broker subscription is
// held per booking while at least one client follows it.
type Hub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID][]*client
	cancelFuncs map[uuid.UUID]context.CancelFunc
	broker      events.Broker
	bookings    BookingLookup
	logger      zerolog.Logger
	wg          sync.WaitGroup
}

func NewHub(broker events.Broker, bookings BookingLookup, logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*client),
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
		broker:      broker,
		bookings:    bookings,
		logger:      logger,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	if _, err := h.bookings.Get(r.Context(), bookingID); err != nil {
		writeLookupError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Broadcasts to c wait on c.mu, so nothing forwarded after the
	// subscription can overtake the snapshot.
	c := &client{conn: conn}
	c.mu.Lock()
	if err := h.registerConnection(bookingID, c); err != nil {
		c.mu.Unlock()
		h.logger.Error().Err(err).Str("booking_id", bookingID.String()).Msg("failed to subscribe to booking updates")
		conn.Close()
		return
	}

	// Read after subscribing so any later transition arrives as an event.
	booking, err := h.bookings.Get(r.Context(), bookingID)
	if err != nil {
		c.mu.Unlock()
		h.logger.Warn().Err(err).Str("booking_id", bookingID.String()).Msg("booking vanished before snapshot")
		h.unregisterConnection(bookingID, c)
		return
	}

	snapshot, _ := json.Marshal(models.WSMessage{
		Type:    "status_update",
		Payload: models.StatusUpdate{BookingID: booking.ID, Step: booking.Step},
	})
	_ = c.writeLocked(snapshot)
	c.mu.Unlock()

	// Keep connection alive and handle disconnect
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer h.unregisterConnection(bookingID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) registerConnection(bookingID uuid.UUID, c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.connections[bookingID]) == 0 {
		ctx, cancel := context.WithCancel(context.Background())
		updates, err := h.broker.Subscribe(ctx, events.BookingChannel(bookingID))
		if err != nil {
			cancel()
			return err
		}
		h.cancelFuncs[bookingID] = cancel

		h.wg.Add(1)
		go h.forward(bookingID, updates)
	}

	h.connections[bookingID] = append(h.connections[bookingID], c)
	metrics.WebSocketOpened()
	h.logger.Debug().Str("booking_id", bookingID.String()).Int("total", len(h.connections[bookingID])).Msg("websocket connected")
	return nil
}

func (h *Hub) unregisterConnection(bookingID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.conn.Close()

	conns := h.connections[bookingID]
	for i, existing := range conns {
		if existing == c {
			h.connections[bookingID] = append(conns[:i], conns[i+1:]...)
			metrics.WebSocketClosed()
			break
		}
	}

	// If no more connections, cancel the subscription
	if len(h.connections[bookingID]) == 0 {
		delete(h.connections, bookingID)
		if cancel, ok := h.cancelFuncs[bookingID]; ok {
			cancel()
			delete(h.cancelFuncs, bookingID)
		}
	}

	h.logger.Debug().Str("booking_id", bookingID.String()).Msg("websocket disconnected")
}

func (h *Hub) forward(bookingID uuid.UUID, updates <-chan []byte) {
	defer h.wg.Done()
	for data := range updates {
		h.broadcast(bookingID, data)
	}
}

func (h *Hub) broadcast(bookingID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := append([]*client(nil), h.connections[bookingID]...)
	h.mu.RUnlock()

	for _, c := range clients {
		_ = c.write(data)
	}
}

func writeLookupError(w http.ResponseWriter, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, notFound.Message, http.StatusNotFound)
		return
	}
	http.Error(w, "Failed to load booking", http.StatusInternalServerError)
}

// Close disconnects every client and waits for the hub goroutines to exit.
func (h *Hub) Close() {
	h.mu.RLock()
	for _, conns := range h.connections {
		for _, c := range conns {
			c.conn.Close()
		}
	}
	h.mu.RUnlock()

	h.wg.Wait()
}
