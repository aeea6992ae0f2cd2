package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/domain/review"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv *models.Review) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(rv).Error, "create review")
}

func (r *ReviewGormRepository) Get(ctx context.Context, id string) (*models.Review, error) {
	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "review_not_found", "get review")
	}
	return &rv, nil
}

func (r *ReviewGormRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return notFoundAs(res.Error, "review_not_found", "set review approval")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("review_not_found")
	}
	return nil
}

func (r *ReviewGormRepository) ListByBarber(
	ctx context.Context,
	barberID string,
	approvedOnly bool,
) ([]models.Review, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if approvedOnly {
		q = q.Where("approved = ?", true)
	}

	var out []models.Review
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	return out, nil
}

func (r *ReviewGormRepository) ListPending(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	if err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list pending reviews")
	}
	return out, nil
}

func (r *ReviewGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return notFoundAs(res.Error, "review_not_found", "delete review")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("review_not_found")
	}
	return nil
}

func (r *ReviewGormRepository) BarberExists(ctx context.Context, barberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ? AND active = ?", barberID, true).
		Count(&count).Error; err != nil {
		if isMalformedID(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "check barber")
	}
	return count > 0, nil
}

var _ review.Repository = (*ReviewGormRepository)(nil)
