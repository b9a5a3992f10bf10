package handlers

import (
	"math"
	"net/http"
	"strconv"

	"sessionbook-backend/internal/catalog"
	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/models"
	"sessionbook-backend/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Cities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cities":       catalog.CityInfos(),
		"default_city": h.sessions.DefaultCity(),
	})
}

func (h *SessionHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": catalog.Categories,
	})
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")

	city, sessions := h.sessions.List(q.Get("city"), category)
	recordQuery(city, "list")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"city":     city,
		"category": category,
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	detail, err := h.sessions.Detail(id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *SessionHandler) Map(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := h.sessions.MapView(q.Get("city"), q.Get("category"))
	recordQuery(view.City, "map")

	writeJSON(w, http.StatusOK, view)
}

func (h *SessionHandler) NearestCity(w http.ResponseWriter, r *http.Request) {
	city := h.sessions.NearestCity(parseCoordinate(r.URL.Query().Get("lat"), r.URL.Query().Get("lng")))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"city":   city,
		"center": catalog.CoordinateFor(string(city)),
	})
}

// parseCoordinate returns nil for anything that is not a point on the globe.
// ParseFloat accepts "NaN", which every range comparison lets through.
func parseCoordinate(latRaw, lngRaw string) *models.Coordinate {
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || math.IsNaN(lng) || lng < -180 || lng > 180 {
		return nil
	}
	return &models.Coordinate{Lat: lat, Lng: lng}
}

// Free-form city values are folded into one label.
func recordQuery(city models.City, kind string) {
	label := string(city)
	if !catalog.IsCity(label) {
		label = "other"
	}
	metrics.RecordCatalogQuery(label, kind)
}
