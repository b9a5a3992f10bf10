package services

import (
	"fmt"
	"math"
	"net/url"

	"sessionbook-backend/internal/catalog"
	"sessionbook-backend/internal/models"
)

// SessionService answers the discovery and map queries over the catalog.
type SessionService struct {
	catalog     *catalog.Catalog
	reviews     *ReviewService
	defaultCity models.City
}

func NewSessionService(c *catalog.Catalog, reviews *ReviewService, defaultCity string) *SessionService {
	return &SessionService{catalog: c, reviews: reviews, defaultCity: models.City(defaultCity)}
}

func (s *SessionService) DefaultCity() models.City {
	return s.defaultCity
}

// List filters the catalog; an empty city means the default city.
func (s *SessionService) List(city, category string) (models.City, []models.Session) {
	c := s.resolveCity(city)
	return c, s.catalog.Filter(c, models.Category(category))
}

func (s *SessionService) MapView(city, category string) models.MapView {
	c, sessions := s.List(city, category)
	return catalog.MapViewFor(c, sessions)
}

func (s *SessionService) Get(id int) (models.Session, error) {
	session, ok := s.catalog.Find(id)
	if !ok {
		return models.Session{}, &NotFoundError{Message: "Session not found"}
	}
	return session, nil
}

func (s *SessionService) Detail(id int) (*models.SessionDetail, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	return &models.SessionDetail{
		Session:       session,
		Location:      LocationLabel(session.City),
		DirectionsURL: DirectionsURL(session.City),
		Reviews:       s.reviews.Featured(id),
	}, nil
}

// NearestCity maps a point to the closest known city. Nil or NaN means the
// caller had no usable coordinates, which selects the default city.
func (s *SessionService) NearestCity(p *models.Coordinate) models.City {
	if p == nil || math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return s.defaultCity
	}
	return catalog.NearestCity(*p)
}

func (s *SessionService) resolveCity(city string) models.City {
	if city == "" {
		return s.defaultCity
	}
	return models.City(city)
}

func LocationLabel(city models.City) string {
	return fmt.Sprintf("%s Premium Training Center", city)
}

func DirectionsURL(city models.City) string {
	return "https://maps.google.com/maps?q=" + url.PathEscape(LocationLabel(city))
}
