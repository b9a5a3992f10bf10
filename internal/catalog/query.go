package catalog

import (
	"math"

	"sessionbook-backend/internal/models"
)

const (
	markerSpread    = 0.08
	earthRadiusKm   = 6371.0
	degreesToRadian = math.Pi / 180
)

// Filter returns the sessions in city, optionally narrowed to category, in
// their original order. An empty category matches every category. The input
// slice is never modified and a miss yields an empty, non-nil slice.
func Filter(sessions []models.Session, city models.City, category models.Category) []models.Session {
	out := make([]models.Session, 0)
	for _, s := range sessions {
		if s.City != city {
			continue
		}
		if category != "" && s.Category != category {
			continue
		}
		out = append(out, s)
	}
	return out
}

// PlacementFor derives a stable marker position for s around base. The result
// depends only on the session id and base, so repeated renders line up.
func PlacementFor(s models.Session, base models.Coordinate) (lat, lng float64) {
	seed := int64(s.ID) * 1000
	offsetLat := (float64(seed%100)/100 - 0.5) * markerSpread
	offsetLng := (float64((seed*7)%100)/100 - 0.5) * markerSpread
	return base.Lat + offsetLat, base.Lng + offsetLng
}

// MapViewFor builds the map model for a filtered set of sessions in city.
func MapViewFor(city models.City, sessions []models.Session) models.MapView {
	center := CoordinateFor(string(city))
	markers := make([]models.Marker, 0, len(sessions))
	for _, s := range sessions {
		lat, lng := PlacementFor(s, center)
		markers = append(markers, models.Marker{
			SessionID: s.ID,
			Title:     s.Title,
			Category:  s.Category,
			Rating:    s.Rating.StringFixed(1),
			Price:     s.Price.Round(0).IntPart(),
			Position:  models.Coordinate{Lat: lat, Lng: lng},
		})
	}

	return models.MapView{
		City:    city,
		Center:  center,
		Zoom:    MapZoom,
		Count:   len(markers),
		Markers: markers,
	}
}

// NearestCity returns the known city whose center is closest to p. p must not
// contain NaN; every distance would compare false and Cities[0] would win.
func NearestCity(p models.Coordinate) models.City {
	best := Cities[0]
	bestDist := math.Inf(1)
	for _, c := range Cities {
		if d := distanceKm(p, cityCoordinates[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// distanceKm is the haversine great-circle distance.
func distanceKm(a, b models.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * degreesToRadian
	dLng := (b.Lng - a.Lng) * degreesToRadian
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*degreesToRadian)*math.Cos(b.Lat*degreesToRadian)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
