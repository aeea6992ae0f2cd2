package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

type SetStatusInput struct {
	AppointmentID string
	Status        string
	// ClientID overrides the appointment's own client for visit counting.
	// On completion it is also stored on an appointment that has none.
	ClientID string

	// OwnBarberID limits the change to that barber's appointments.
	OwnBarberID string
	ActorID     *string
}

type SetAppointmentStatus struct {
	repo       domain.Repository
	reconciler domain.Reconciler
	audit      audit.Emitter
	clock      timezone.Clock
	retry      retry.Config
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	reconciler domain.Reconciler,
	audit audit.Emitter,
	clock timezone.Clock,
	rc retry.Config,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:       repo,
		reconciler: reconciler,
		audit:      audit,
		clock:      clock,
		retry:      rc,
	}
}

func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := retry.DoValue(ctx, uc.retry, "get_appointment",
		func(ctx context.Context) (*models.Appointment, error) {
			return uc.repo.GetAppointment(ctx, in.AppointmentID)
		},
	)
	if err != nil {
		return nil, err
	}
	if in.OwnBarberID != "" && ap.BarberID != in.OwnBarberID {
		return nil, httperr.ErrForbidden("not_your_appointment")
	}

	from := domain.Status(ap.Status)
	if err := domain.Transition(ap, to, uc.clock.Now()); err != nil {
		return nil, err
	}

	// A guest booking completed for a known client is attributed to them
	// in the same write, so the visit recount finds it.
	if to == domain.StatusCompleted && ap.ClientID == nil {
		if id := strings.TrimSpace(in.ClientID); domain.IsPersistedClientID(id) {
			ap.ClientID = &id
		}
	}

	// Conditional on the row still being in from: of two concurrent
	// transitions only one lands.
	if err := uc.repo.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	if to == domain.StatusCompleted {
		clientID := strings.TrimSpace(in.ClientID)
		if !domain.IsPersistedClientID(clientID) && ap.ClientID != nil {
			clientID = *ap.ClientID
		}
		if domain.IsPersistedClientID(clientID) {
			refreshClient(ctx, uc.reconciler, clientID)
		}
	}
	refreshBarber(ctx, uc.reconciler, ap.BarberID)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(to),
		},
	})

	return ap, nil
}
