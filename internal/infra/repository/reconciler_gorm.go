package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

// ReconcilerGorm recomputes denormalized counters from appointment rows.
// Nothing else writes those columns.
type ReconcilerGorm struct {
	db *gorm.DB
}

func NewReconcilerGorm(db *gorm.DB) *ReconcilerGorm {
	return &ReconcilerGorm{db: db}
}

func (r *ReconcilerGorm) RefreshBarberStats(ctx context.Context, barberID string) error {
	if err := r.db.WithContext(ctx).
		Exec("SELECT update_barber_stats(?::uuid)", barberID).Error; err != nil {
		return errors.Wrapf(err, "update_barber_stats %s", barberID)
	}
	return nil
}

const refreshClientVisitsSQL = `
UPDATE clients SET
	total_visits = agg.visits,
	last_visit   = agg.last_visit,
	updated_at   = NOW()
FROM (
	SELECT COUNT(*) AS visits, MAX(completed_at) AS last_visit
	FROM appointments
	WHERE client_id = ?::uuid AND status = 'completed'
) AS agg
WHERE clients.id = ?::uuid`

func (r *ReconcilerGorm) RefreshClientVisits(ctx context.Context, clientID string) error {
	if err := r.db.WithContext(ctx).
		Exec(refreshClientVisitsSQL, clientID, clientID).Error; err != nil {
		return errors.Wrapf(err, "refresh client visits %s", clientID)
	}
	return nil
}

// ReconcileAll refreshes every barber and every client and reports how many
// of each were processed.
func (r *ReconcilerGorm) ReconcileAll(ctx context.Context) (barbers, clients int, err error) {
	var barberIDs []string
	if err := r.db.WithContext(ctx).Model(&models.Barber{}).Pluck("id", &barberIDs).Error; err != nil {
		return 0, 0, errors.Wrap(err, "list barber ids")
	}
	for _, id := range barberIDs {
		if err := r.RefreshBarberStats(ctx, id); err != nil {
			return barbers, 0, err
		}
		barbers++
	}

	var clientIDs []string
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Pluck("id", &clientIDs).Error; err != nil {
		return barbers, 0, errors.Wrap(err, "list client ids")
	}
	for _, id := range clientIDs {
		if err := r.RefreshClientVisits(ctx, id); err != nil {
			return barbers, clients, err
		}
		clients++
	}
	return barbers, clients, nil
}

var _ domain.Reconciler = (*ReconcilerGorm)(nil)
