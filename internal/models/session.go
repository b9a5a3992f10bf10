package models

import (
	"github.com/shopspring/decimal"
)

type City string

const (
	CityDallas       City = "Dallas"
	CityMiami        City = "Miami"
	CityNewYork      City = "New York"
	CityLosAngeles   City = "Los Angeles"
	CityChicago      City = "Chicago"
	CitySanFrancisco City = "San Francisco"
	CitySanDiego     City = "San Diego"
	CityAustin       City = "Austin"
	CitySeattle      City = "Seattle"
	CityPortland     City = "Portland"
	CityDenver       City = "Denver"
)

type Category string

const (
	CategoryYoga             Category = "Yoga"
	CategoryPilates          Category = "Pilates"
	CategoryTennis           Category = "Tennis"
	CategoryPersonalTraining Category = "Personal Training"
	CategoryBoxing           Category = "Boxing"
	CategoryDance            Category = "Dance"
	CategorySwimming         Category = "Swimming"
	CategoryMartialArts      Category = "Martial Arts"
	CategoryHIIT             Category = "HIIT"
	CategoryCrossFit         Category = "CrossFit"
)

type Session struct {
	ID           int             `json:"session_id"`
	Title        string          `json:"title"`
	City         City            `json:"city"`
	Category     Category        `json:"category"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`  // 80.00 - 280.00
	Rating       decimal.Decimal `json:"rating"` // 4.0 - 5.0
	ReviewsCount int             `json:"reviews_count"`
	Images       []string        `json:"images"`
	Availability []string        `json:"availability"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CityInfo struct {
	Name   City       `json:"name"`
	Center Coordinate `json:"center"`
}

// Marker is one session pin on the city map.
type Marker struct {
	SessionID int        `json:"session_id"`
	Title     string     `json:"title"`
	Category  Category   `json:"category"`
	Rating    string     `json:"rating"`
	Price     int64      `json:"price"` // whole dollars
	Position  Coordinate `json:"position"`
}

type MapView struct {
	City    City       `json:"city"`
	Center  Coordinate `json:"center"`
	Zoom    int        `json:"zoom"`
	Count   int        `json:"count"`
	Markers []Marker   `json:"markers"`
}

type SessionDetail struct {
	Session       Session  `json:"session"`
	Location      string   `json:"location"`
	DirectionsURL string   `json:"directions_url"`
	Reviews       []Review `json:"reviews"`
}
