package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"sessionbook-backend/internal/models"
)

const (
	minPrice      = 80
	priceSpread   = 200
	minRating     = 4
	maxReviews    = 500
	imageTemplate = "https://dummyimage.com/600x400/000/fff&text=%s+in+%s"
)

// Source is the subset of *rand.Rand the generator draws from.
type Source interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }
func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Generate builds the full catalog from the process-wide random source.
// Field values differ between runs; counts, bounds and id order do not.
func Generate() []models.Session {
	return GenerateWith(globalSource{})
}

// GenerateWith builds the catalog from r: cities outer, categories inner,
// SessionsPerPair records per pair, ids counting up from 1.
func GenerateWith(r Source) []models.Session {
	sessions := make([]models.Session, 0, len(Cities)*len(Categories)*SessionsPerPair)
	id := 1

	for _, city := range Cities {
		for _, category := range Categories {
			actions := ActionWords(category)
			for i := 0; i < SessionsPerPair; i++ {
				prefix := Prefixes[r.IntN(len(Prefixes))]
				action := actions[r.IntN(len(actions))]

				sessions = append(sessions, models.Session{
					ID:           id,
					Title:        fmt.Sprintf("%s %s - %s Session in %s", prefix, action, category, city),
					City:         city,
					Category:     category,
					Description:  describe(category, city),
					Price:        decimal.NewFromFloat(r.Float64()*priceSpread + minPrice).Round(2),
					Rating:       decimal.NewFromFloat(r.Float64() + minRating).Round(1),
					ReviewsCount: r.IntN(maxReviews) + 1,
					Images:       []string{imageURL(category, city)},
					Availability: generateAvailability(r),
				})
				id++
			}
		}
	}

	return sessions
}

// generateAvailability returns AvailabilitySlots distinct entries of BaseSlots
// using an unbiased Fisher-Yates shuffle of a copy.
func generateAvailability(r Source) []string {
	slots := BaseSlots
	r.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	out := make([]string, AvailabilitySlots)
	copy(out, slots[:AvailabilitySlots])
	return out
}

func describe(category models.Category, city models.City) string {
	return fmt.Sprintf("Exclusive %s session designed for travelers seeking premium training in %s.",
		strings.ToLower(string(category)), city)
}

// Only the first space is encoded, matching the placeholder service links the
// client already renders.
func imageURL(category models.Category, city models.City) string {
	return fmt.Sprintf(imageTemplate,
		strings.Replace(string(category), " ", "+", 1),
		strings.Replace(string(city), " ", "+", 1))
}
