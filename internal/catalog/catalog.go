package catalog

import (
	"sessionbook-backend/internal/models"
)

// Catalog is the generated session collection. It is built once at startup and
// never written afterwards, so any number of goroutines may read it.
type Catalog struct {
	sessions []models.Session
	byID     map[int]int
}

func New(sessions []models.Session) *Catalog {
	c := &Catalog{
		sessions: make([]models.Session, len(sessions)),
		byID:     make(map[int]int, len(sessions)),
	}
	copy(c.sessions, sessions)
	for i, s := range c.sessions {
		c.byID[s.ID] = i
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.sessions)
}

// All returns a copy of every session in generation order.
func (c *Catalog) All() []models.Session {
	out := make([]models.Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Find looks a session up by id; ok is false on a miss.
func (c *Catalog) Find(id int) (models.Session, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Session{}, false
	}
	return c.sessions[i], true
}

func (c *Catalog) Filter(city models.City, category models.Category) []models.Session {
	return Filter(c.sessions, city, category)
}
