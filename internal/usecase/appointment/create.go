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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// ClientID is attached only when it is a real client id; anything else
	// (empty, "guest") books without a client.
	ClientID         string
	WalkInClientName string

	BarberID  string
	ServiceID string

	Date string
	Time string

	Type   string
	Status string

	Price    *float64
	Duration *int
	Notes    string

	ActorID *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	reconciler domain.Reconciler
	audit      audit.Emitter
	clock      timezone.Clock
	retry      retry.Config
}

func NewCreateAppointment(
	repo domain.Repository,
	reconciler domain.Reconciler,
	audit audit.Emitter,
	clock timezone.Clock,
	rc retry.Config,
) *CreateAppointment {
	return &CreateAppointment{
		repo:       repo,
		reconciler: reconciler,
		audit:      audit,
		clock:      clock,
		retry:      rc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	typ, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	status := domain.InitialStatus(typ)
	if in.Status != "" {
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	if _, ok := timezone.ParseDate(in.Date); !ok {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidSlot(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	walkInName := strings.TrimSpace(in.WalkInClientName)
	if typ == domain.TypeWalkIn && walkInName == "" {
		return nil, httperr.ErrBusiness("walk_in_client_name_required")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	// --------------------------------------------------
	// 2. Service and barber, before any write
	// --------------------------------------------------
	svc, err := retry.DoValue(ctx, uc.retry, "get_service",
		func(ctx context.Context) (*models.Service, error) {
			return uc.repo.GetService(ctx, in.ServiceID)
		},
	)
	if err != nil {
		return nil, err
	}

	barber, err := retry.DoValue(ctx, uc.retry, "get_barber",
		func(ctx context.Context) (*models.Barber, error) {
			return uc.repo.GetBarber(ctx, in.BarberID)
		},
	)
	if err != nil {
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrNotFound("barber_not_found")
	}

	// --------------------------------------------------
	// 3. Price, duration, commission
	// --------------------------------------------------
	price := svc.Price
	if in.Price != nil {
		price = *in.Price
	}
	duration := svc.Duration
	if in.Duration != nil {
		duration = *in.Duration
	}

	ap := &models.Appointment{
		BarberID:         barber.ID,
		ServiceID:        svc.ID,
		Date:             in.Date,
		Time:             in.Time,
		Duration:         duration,
		Status:           string(status),
		Type:             string(typ),
		Price:            price,
		CommissionAmount: domain.Commission(price, barber.CommissionRate),
		Notes:            strings.TrimSpace(in.Notes),
	}

	// --------------------------------------------------
	// 4. Client attribution
	// --------------------------------------------------
	if typ == domain.TypeWalkIn {
		ap.WalkInClientName = walkInName
	} else if domain.IsPersistedClientID(in.ClientID) {
		id := strings.TrimSpace(in.ClientID)
		ap.ClientID = &id
	}

	if status == domain.StatusCompleted {
		now := uc.clock.Now()
		ap.CompletedAt = &now
	}

	// --------------------------------------------------
	// 5. Persist
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	ap.Barber, ap.Service = barber, svc

	// --------------------------------------------------
	// 6. Derived counters (best effort)
	// --------------------------------------------------
	refreshBarber(ctx, uc.reconciler, ap.BarberID)
	if ap.ClientID != nil && status == domain.StatusCompleted {
		refreshClient(ctx, uc.reconciler, *ap.ClientID)
	}

	// --------------------------------------------------
	// 7. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"date":      ap.Date,
			"time":      ap.Time,
			"type":      ap.Type,
			"status":    ap.Status,
		},
	})

	return ap, nil
}
