package catalog

import (
	"sessionbook-backend/internal/models"
)

// Cities in generation order.
var Cities = []models.City{
	models.CityDallas,
	models.CityMiami,
	models.CityNewYork,
	models.CityLosAngeles,
	models.CityChicago,
	models.CitySanFrancisco,
	models.CitySanDiego,
	models.CityAustin,
	models.CitySeattle,
	models.CityPortland,
	models.CityDenver,
}

// Categories in generation order.
var Categories = []models.Category{
	models.CategoryYoga,
	models.CategoryPilates,
	models.CategoryTennis,
	models.CategoryPersonalTraining,
	models.CategoryBoxing,
	models.CategoryDance,
	models.CategorySwimming,
	models.CategoryMartialArts,
	models.CategoryHIIT,
	models.CategoryCrossFit,
}

var Prefixes = [10]string{
	"Elite", "Summit", "Prime", "Golden", "Zen",
	"Urban", "Signature", "Prestige", "Opulent", "Pro",
}

// BaseSlots is the fixed set every availability list is drawn from.
var BaseSlots = [13]string{
	"7:00", "8:00", "9:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
}

const (
	SessionsPerPair   = 3
	AvailabilitySlots = 6
	MapZoom           = 12
)

var fallbackActions = []string{"Signature"}

// ActionWords returns the title words for a category. Unmapped categories get a
// single generic word so title generation never indexes an empty table.
func ActionWords(category models.Category) []string {
	switch category {
	case models.CategoryYoga:
		return []string{"Flow", "Balance", "Asana", "Zen", "Power"}
	case models.CategoryPilates:
		return []string{"Form", "Body", "Alignment", "Core", "Balance"}
	case models.CategoryTennis:
		return []string{"Serve", "Rally", "Match", "Court", "Ace"}
	case models.CategoryPersonalTraining:
		return []string{"Strength", "Performance", "Conditioning", "Power", "Endurance"}
	case models.CategoryBoxing:
		return []string{"Knockout", "Fight", "Punch", "Warrior", "Combat"}
	case models.CategoryDance:
		return []string{"Rhythm", "Move", "Groove", "Expression", "Flow"}
	case models.CategorySwimming:
		return []string{"Stroke", "Aqua", "Swim", "Water", "Pool"}
	case models.CategoryMartialArts:
		return []string{"Discipline", "Combat", "Warrior", "Dojo", "Fight"}
	case models.CategoryHIIT:
		return []string{"Burn", "Power", "Pulse", "Intensity", "Energy"}
	case models.CategoryCrossFit:
		return []string{"WOD", "Athlete", "Power", "Endurance", "Beast"}
	default:
		return fallbackActions
	}
}

// DefaultCoordinate is used for any city missing from the coordinate table.
var DefaultCoordinate = models.Coordinate{Lat: 40.7128, Lng: -74.006}

var cityCoordinates = map[models.City]models.Coordinate{
	models.CityDallas:       {Lat: 32.7767, Lng: -96.797},
	models.CityMiami:        {Lat: 25.7617, Lng: -80.1918},
	models.CityNewYork:      {Lat: 40.7128, Lng: -74.006},
	models.CityLosAngeles:   {Lat: 34.0522, Lng: -118.2437},
	models.CityChicago:      {Lat: 41.8781, Lng: -87.6298},
	models.CitySanFrancisco: {Lat: 37.7749, Lng: -122.4194},
	models.CitySanDiego:     {Lat: 32.7157, Lng: -117.1611},
	models.CityAustin:       {Lat: 30.2672, Lng: -97.7431},
	models.CitySeattle:      {Lat: 47.6062, Lng: -122.3321},
	models.CityPortland:     {Lat: 45.5152, Lng: -122.6784},
	models.CityDenver:       {Lat: 39.7392, Lng: -104.9903},
}

// CoordinateFor returns the map center for a city name, or DefaultCoordinate
// when the name is not one of the known cities.
func CoordinateFor(city string) models.Coordinate {
	if c, ok := cityCoordinates[models.City(city)]; ok {
		return c
	}
	return DefaultCoordinate
}

func IsCity(name string) bool {
	_, ok := cityCoordinates[models.City(name)]
	return ok
}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// CityInfos lists every city with its map center, in generation order.
func CityInfos() []models.CityInfo {
	out := make([]models.CityInfo, 0, len(Cities))
	for _, c := range Cities {
		out = append(out, models.CityInfo{Name: c, Center: cityCoordinates[c]})
	}
	return out
}
