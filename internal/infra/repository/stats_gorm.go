package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/domain/stats"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

type statsRow struct {
	BarberID         string
	Date             string
	Type             string
	Status           string
	Price            float64
	CommissionAmount float64
}

func (r *StatsGormRepository) ListRows(
	ctx context.Context,
	from string,
	to string,
	barberID string,
) ([]stats.Row, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("barber_id, date, type, status, price, commission_amount").
		Where("date >= ? AND date <= ?", from, to).
		Where("status IN ?", []string{"scheduled", "completed"})
	if barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var raw []statsRow
	if err := q.Scan(&raw).Error; err != nil {
		return nil, errors.Wrap(err, "list stats rows")
	}

	rows := make([]stats.Row, len(raw))
	for i, s := range raw {
		rows[i] = stats.Row{
			BarberID:   s.BarberID,
			Date:       s.Date,
			Type:       s.Type,
			Status:     s.Status,
			Price:      s.Price,
			Commission: s.CommissionAmount,
		}
	}
	return rows, nil
}

func (r *StatsGormRepository) ListBarbers(ctx context.Context) ([]stats.BarberRef, error) {
	var refs []stats.BarberRef
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Select("id, name").
		Where("active = ?", true).
		Order("name ASC").
		Scan(&refs).Error; err != nil {
		return nil, errors.Wrap(err, "list barbers")
	}
	return refs, nil
}

func (r *StatsGormRepository) GetBarber(ctx context.Context, id string) (stats.BarberRef, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).Select("id", "name").First(&b, "id = ?", id).Error; err != nil {
		return stats.BarberRef{}, notFoundAs(err, "barber_not_found", "get barber")
	}
	return stats.BarberRef{ID: b.ID, Name: b.Name}, nil
}

var _ stats.Repository = (*StatsGormRepository)(nil)
