package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"sessionbook-backend/internal/catalog"
	"sessionbook-backend/internal/metrics"
	"sessionbook-backend/internal/models"
	"sessionbook-backend/internal/repository"
)

const (
	maxCommentLength = 1000
	maxNameLength    = 80
	anonymousName    = "Anonymous"
)

var featuredReviews = []models.Review{
	{
		Name:    "Alexandra M.",
		Rating:  5,
		Comment: "Exceptional training experience. The coach was professional and the facility was pristine.",
		Date:    "2 days ago",
	},
	{
		Name:    "Marcus R.",
		Rating:  5,
		Comment: "Perfect for business travelers. Convenient booking and top-tier equipment.",
		Date:    "1 week ago",
	},
	{
		Name:    "Sofia L.",
		Rating:  4,
		Comment: "Great session, exactly what I needed during my stay in the city.",
		Date:    "2 weeks ago",
	},
}

type ReviewService struct {
	catalog *catalog.Catalog
	repo    *repository.ReviewRepo
	now     func() time.Time
}

func NewReviewService(c *catalog.Catalog, repo *repository.ReviewRepo) *ReviewService {
	return &ReviewService{catalog: c, repo: repo, now: time.Now}
}

// Featured returns the canned reviews shown on every session page.
func (s *ReviewService) Featured(sessionID int) []models.Review {
	out := make([]models.Review, len(featuredReviews))
	for i, r := range featuredReviews {
		r.SessionID = sessionID
		r.Featured = true
		out[i] = r
	}
	return out
}

// List returns the featured reviews followed by submitted ones, newest first.
func (s *ReviewService) List(ctx context.Context, sessionID int) ([]models.Review, error) {
	if _, ok := s.catalog.Find(sessionID); !ok {
		return nil, &NotFoundError{Message: "Session not found"}
	}

	submitted, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return append(s.Featured(sessionID), submitted...), nil
}

func (s *ReviewService) Submit(ctx context.Context, sessionID int, req models.SubmitReviewRequest) (*models.Review, error) {
	if _, ok := s.catalog.Find(sessionID); !ok {
		return nil, &NotFoundError{Message: "Session not found"}
	}

	name := strings.TrimSpace(req.Name)
	comment := strings.TrimSpace(req.Comment)

	fieldErrors := make(map[string]string)
	if req.Rating < 1 || req.Rating > 5 {
		fieldErrors["rating"] = "Rating must be between 1 and 5"
	}
	if comment == "" {
		fieldErrors["comment"] = "Comment is required"
	} else if utf8.RuneCountInString(comment) > maxCommentLength {
		fieldErrors["comment"] = "Comment must be at most 1000 characters"
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		fieldErrors["name"] = "Name must be at most 80 characters"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if name == "" {
		name = anonymousName
	}

	id := uuid.New()
	now := s.now().UTC()
	review := models.Review{
		ID:        &id,
		SessionID: sessionID,
		Name:      name,
		Rating:    req.Rating,
		Comment:   comment,
		Date:      now.Format("Jan 2, 2006"),
		CreatedAt: &now,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	metrics.RecordReviewSubmitted()

	return &review, nil
}
