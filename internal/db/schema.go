package db

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

// Only one scheduled appointment may hold a (barber, date, time) slot.
// Completed walk-ins and cancelled rows do not take part.
const scheduledSlotIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_scheduled_slot
	ON appointments (barber_id, date, time)
	WHERE status = 'scheduled'`

const barberRatingsViewSQL = `
CREATE OR REPLACE VIEW barber_ratings_view AS
SELECT
	b.id                                  AS barber_id,
	ROUND(AVG(r.rating)::numeric, 1)      AS average_rating,
	COUNT(r.id)                           AS total_reviews
FROM barbers b
LEFT JOIN reviews r ON r.barber_id = b.id AND r.approved
GROUP BY b.id`

// update_barber_stats derives every barber counter from appointments and
// the rating from approved reviews.
const updateBarberStatsSQL = `
CREATE OR REPLACE FUNCTION update_barber_stats(p_barber_id uuid)
RETURNS void
LANGUAGE plpgsql
AS $$
BEGIN
	UPDATE barbers b SET
		appointment_cuts = s.appointment_cuts,
		walk_in_cuts     = s.walk_in_cuts,
		total_cuts       = s.appointment_cuts + s.walk_in_cuts,
		total_commission = s.total_commission,
		rating           = v.average_rating,
		updated_at       = NOW()
	FROM (
		SELECT
			COUNT(*) FILTER (WHERE type = 'appointment') AS appointment_cuts,
			COUNT(*) FILTER (WHERE type = 'walk-in')     AS walk_in_cuts,
			COALESCE(SUM(commission_amount), 0)          AS total_commission
		FROM appointments
		WHERE barber_id = p_barber_id
		  AND status IN ('scheduled', 'completed')
	) s,
	barber_ratings_view v
	WHERE b.id = p_barber_id
	  AND v.barber_id = p_barber_id;
END;
$$`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Barber{},
		&models.Client{},
		&models.Appointment{},
		&models.Review{},
		&models.StaffUser{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate")
	}

	if err := db.Exec(scheduledSlotIndexSQL).Error; err != nil {
		return errors.Wrap(err, "failed to create scheduled slot index")
	}
	if err := db.Exec(barberRatingsViewSQL).Error; err != nil {
		return errors.Wrap(err, "failed to create barber_ratings_view")
	}
	if err := db.Exec(updateBarberStatsSQL).Error; err != nil {
		return errors.Wrap(err, "failed to create update_barber_stats")
	}
	return nil
}
