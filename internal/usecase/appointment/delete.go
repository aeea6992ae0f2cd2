package appointment

import (
	"context"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
)

type DeleteAppointment struct {
	repo       domain.Repository
	reconciler domain.Reconciler
	audit      audit.Emitter
	retry      retry.Config
}

func NewDeleteAppointment(
	repo domain.Repository,
	reconciler domain.Reconciler,
	audit audit.Emitter,
	rc retry.Config,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:       repo,
		reconciler: reconciler,
		audit:      audit,
		retry:      rc,
	}
}

// Execute hard-deletes the appointment and refreshes the counters it fed.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id string,
	actorID *string,
) error {

	ap, err := retry.DoValue(ctx, uc.retry, "get_appointment",
		func(ctx context.Context) (*models.Appointment, error) {
			return uc.repo.GetAppointment(ctx, id)
		},
	)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	refreshBarber(ctx, uc.reconciler, ap.BarberID)
	if ap.ClientID != nil && ap.Status == string(domain.StatusCompleted) {
		refreshClient(ctx, uc.reconciler, *ap.ClientID)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"barber_id": ap.BarberID,
			"date":      ap.Date,
			"time":      ap.Time,
			"status":    ap.Status,
		},
	})
	return nil
}
