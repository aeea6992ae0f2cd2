package review

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/review"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
)

// BarberRefresher recomputes a barber's derived rating.
type BarberRefresher interface {
	RefreshBarberStats(ctx context.Context, barberID string) error
}

// ======================================================
// SUBMIT (public)
// ======================================================

type SubmitReview struct {
	repo  domain.Repository
	audit audit.Emitter
	retry retry.Config
}

func NewSubmitReview(repo domain.Repository, audit audit.Emitter, rc retry.Config) *SubmitReview {
	return &SubmitReview{repo: repo, audit: audit, retry: rc}
}

// Execute stores the review unapproved; it counts nowhere until moderated.
func (uc *SubmitReview) Execute(ctx context.Context, in domain.Submission) (*models.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	exists, err := retry.DoValue(ctx, uc.retry, "barber_exists",
		func(ctx context.Context) (bool, error) {
			return uc.repo.BarberExists(ctx, in.BarberID)
		},
	)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, httperr.ErrNotFound("barber_not_found")
	}

	rv := &models.Review{
		BarberID:    in.BarberID,
		Rating:      in.Rating,
		Comment:     in.Comment,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		Approved:    false,
	}
	if err := uc.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "review_submitted",
		Entity:   "review",
		EntityID: &rv.ID,
		Metadata: map[string]any{"barber_id": rv.BarberID, "rating": rv.Rating},
	})
	return rv, nil
}

// ======================================================
// MODERATION (manager)
// ======================================================

type SetApproval struct {
	repo      domain.Repository
	refresher BarberRefresher
	audit     audit.Emitter
	retry     retry.Config
}

func NewSetApproval(
	repo domain.Repository,
	refresher BarberRefresher,
	audit audit.Emitter,
	rc retry.Config,
) *SetApproval {
	return &SetApproval{repo: repo, refresher: refresher, audit: audit, retry: rc}
}

func (uc *SetApproval) Execute(
	ctx context.Context,
	reviewID string,
	approved bool,
	actorID *string,
) (*models.Review, error) {

	rv, err := retry.DoValue(ctx, uc.retry, "get_review",
		func(ctx context.Context) (*models.Review, error) {
			return uc.repo.Get(ctx, reviewID)
		},
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SetApproved(ctx, reviewID, approved); err != nil {
		return nil, err
	}
	rv.Approved = approved

	if err := uc.refresher.RefreshBarberStats(ctx, rv.BarberID); err != nil {
		log.Warn().Err(err).Str("barber_id", rv.BarberID).Msg("rating refresh failed")
	}

	action := "review_rejected"
	if approved {
		action = "review_approved"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "review",
		EntityID: &rv.ID,
	})
	return rv, nil
}

type DeleteReview struct {
	repo      domain.Repository
	refresher BarberRefresher
	audit     audit.Emitter
}

func NewDeleteReview(repo domain.Repository, refresher BarberRefresher, audit audit.Emitter) *DeleteReview {
	return &DeleteReview{repo: repo, refresher: refresher, audit: audit}
}

func (uc *DeleteReview) Execute(ctx context.Context, reviewID string, actorID *string) error {
	rv, err := uc.repo.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, reviewID); err != nil {
		return err
	}
	if rv.Approved {
		if err := uc.refresher.RefreshBarberStats(ctx, rv.BarberID); err != nil {
			log.Warn().Err(err).Str("barber_id", rv.BarberID).Msg("rating refresh failed")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &rv.ID,
	})
	return nil
}

// ======================================================
// LISTING
// ======================================================

type BarberReviews struct {
	Summary domain.Summary  `json:"summary"`
	Reviews []models.Review `json:"reviews"`
}

type ListReviews struct {
	repo  domain.Repository
	retry retry.Config
}

func NewListReviews(repo domain.Repository, rc retry.Config) *ListReviews {
	return &ListReviews{repo: repo, retry: rc}
}

// ForBarber lists a barber's reviews. Public callers pass approvedOnly; the
// summary always reflects approved reviews only.
func (uc *ListReviews) ForBarber(ctx context.Context, barberID string, approvedOnly bool) (*BarberReviews, error) {
	reviews, err := retry.DoValue(ctx, uc.retry, "list_reviews",
		func(ctx context.Context) ([]models.Review, error) {
			return uc.repo.ListByBarber(ctx, barberID, approvedOnly)
		},
	)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &BarberReviews{Summary: domain.Summarize(reviews), Reviews: reviews}, nil
}

func (uc *ListReviews) Pending(ctx context.Context) ([]models.Review, error) {
	return retry.DoValue(ctx, uc.retry, "list_pending_reviews", uc.repo.ListPending)
}
