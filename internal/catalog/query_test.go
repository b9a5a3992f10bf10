package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionbook-backend/internal/models"
)

func TestFilter_CityOnly(t *testing.T) {
	sessions := Generate()

	var expected []int
	for _, s := range sessions {
		if s.City == models.CityMiami {
			expected = append(expected, s.ID)
		}
	}

	got := Filter(sessions, models.CityMiami, "")
	require.Len(t, got, len(expected))

	ids := make([]int, 0, len(got))
	for _, s := range got {
		assert.Equal(t, models.CityMiami, s.City)
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff(expected, ids); diff != "" {
		t.Errorf("filtered ids mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_CityAndCategory(t *testing.T) {
	got := Filter(Generate(), models.CityMiami, models.CategoryYoga)
	require.Len(t, got, 3)
	for _, s := range got {
		assert.Equal(t, models.CityMiami, s.City)
		assert.Equal(t, models.CategoryYoga, s.Category)
	}
}

func TestFilter_NoMatchIsEmpty(t *testing.T) {
	got := Filter(Generate(), models.City("Atlantis"), "")
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Filter(Generate(), models.CityDenver, models.Category("Curling"))
	assert.Empty(t, got)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	sessions := Generate()
	before := make([]int, len(sessions))
	for i, s := range sessions {
		before[i] = s.ID
	}

	_ = Filter(sessions, models.CityAustin, models.CategoryDance)

	for i, s := range sessions {
		require.Equal(t, before[i], s.ID)
	}
}

func TestDenverBoxingScenario(t *testing.T) {
	c := New(Generate())
	got := c.Filter(models.CityDenver, models.CategoryBoxing)
	require.Len(t, got, 3)

	seen := make(map[int]bool)
	for _, s := range got {
		assert.Equal(t, models.CityDenver, s.City)
		assert.Equal(t, models.CategoryBoxing, s.Category)
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		assert.GreaterOrEqual(t, s.ID, 1)
		assert.LessOrEqual(t, s.ID, 330)
		seen[s.ID] = true
	}
}

func TestPlacementFor_Deterministic(t *testing.T) {
	coord := CoordinateFor("Seattle")
	s := models.Session{ID: 42, City: models.CitySeattle}

	lat1, lng1 := PlacementFor(s, coord)
	lat2, lng2 := PlacementFor(s, coord)
	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lng1, lng2)
}

func TestPlacementFor_Offsets(t *testing.T) {
	base := models.Coordinate{Lat: 10, Lng: 20}

	// id*1000 is always a multiple of 100, so both offsets sit at the low edge.
	for _, id := range []int{1, 7, 330} {
		lat, lng := PlacementFor(models.Session{ID: id}, base)
		assert.InDelta(t, 9.96, lat, 1e-12, "id %d", id)
		assert.InDelta(t, 19.96, lng, 1e-12, "id %d", id)
	}
}

func TestPlacementFor_WithinSpread(t *testing.T) {
	for _, s := range Generate() {
		base := CoordinateFor(string(s.City))
		lat, lng := PlacementFor(s, base)
		assert.InDelta(t, base.Lat, lat, 0.04+1e-9)
		assert.InDelta(t, base.Lng, lng, 0.04+1e-9)
	}
}

func TestCoordinateFor(t *testing.T) {
	assert.Equal(t, models.Coordinate{Lat: 25.7617, Lng: -80.1918}, CoordinateFor("Miami"))
	assert.Equal(t, DefaultCoordinate, CoordinateFor("Gotham"))
	assert.Equal(t, DefaultCoordinate, CoordinateFor(""))

	lat, lng := PlacementFor(models.Session{ID: 3}, CoordinateFor("Gotham"))
	assert.InDelta(t, DefaultCoordinate.Lat, lat, 0.05)
	assert.InDelta(t, DefaultCoordinate.Lng, lng, 0.05)
}

func TestMapViewFor(t *testing.T) {
	sessions := Filter(Generate(), models.CityChicago, models.CategoryTennis)
	view := MapViewFor(models.CityChicago, sessions)

	assert.Equal(t, models.CityChicago, view.City)
	assert.Equal(t, CoordinateFor("Chicago"), view.Center)
	assert.Equal(t, MapZoom, view.Zoom)
	require.Equal(t, 3, view.Count)
	require.Len(t, view.Markers, 3)

	for i, m := range view.Markers {
		assert.Equal(t, sessions[i].ID, m.SessionID)
		assert.Equal(t, sessions[i].Price.Round(0).IntPart(), m.Price)
		lat, lng := PlacementFor(sessions[i], view.Center)
		assert.Equal(t, models.Coordinate{Lat: lat, Lng: lng}, m.Position)
	}
}

func TestNearestCity(t *testing.T) {
	tests := []struct {
		name     string
		point    models.Coordinate
		expected models.City
	}{
		{"miami beach", models.Coordinate{Lat: 25.79, Lng: -80.13}, models.CityMiami},
		{"boulder", models.Coordinate{Lat: 40.015, Lng: -105.27}, models.CityDenver},
		{"oakland", models.Coordinate{Lat: 37.80, Lng: -122.27}, models.CitySanFrancisco},
		{"exact center", CoordinateFor("Portland"), models.CityPortland},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NearestCity(tc.point))
		})
	}
}
