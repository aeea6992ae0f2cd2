package review

import (
	"context"
	"math"
	"strings"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5

	maxCommentLength = 1000
)

type Submission struct {
	BarberID    string
	Rating      int
	Comment     string
	ClientName  string
	ClientEmail string
}

// Validate trims the free-text fields in place.
func (s *Submission) Validate() error {
	s.Comment = strings.TrimSpace(s.Comment)
	s.ClientName = strings.TrimSpace(s.ClientName)
	s.ClientEmail = strings.TrimSpace(s.ClientEmail)

	if s.BarberID == "" {
		return httperr.ErrBusiness("barber_required")
	}
	if s.Rating < MinRating || s.Rating > MaxRating {
		return httperr.ErrBusiness("invalid_rating")
	}
	if s.Comment == "" {
		return httperr.ErrBusiness("comment_required")
	}
	if len(s.Comment) > maxCommentLength {
		return httperr.ErrBusiness("comment_too_long")
	}
	if s.ClientName == "" {
		return httperr.ErrBusiness("client_name_required")
	}
	return nil
}

type Summary struct {
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
}

// Summarize averages approved reviews only, rounded to one decimal.
// AverageRating is nil when nothing is approved.
func Summarize(reviews []models.Review) Summary {
	var sum, n int
	for _, r := range reviews {
		if !r.Approved {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return Summary{}
	}
	avg := math.Round(float64(sum)/float64(n)*10) / 10
	return Summary{AverageRating: &avg, TotalReviews: n}
}

type Repository interface {
	Create(ctx context.Context, r *models.Review) error
	Get(ctx context.Context, id string) (*models.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	ListByBarber(ctx context.Context, barberID string, approvedOnly bool) ([]models.Review, error)
	ListPending(ctx context.Context) ([]models.Review, error)
	Delete(ctx context.Context, id string) error
	BarberExists(ctx context.Context, barberID string) (bool, error)
}
