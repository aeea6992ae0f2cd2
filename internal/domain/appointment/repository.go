package appointment

import (
	"context"

	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type ListFilter struct {
	BarberID string
	DateFrom string
	DateTo   string
	Status   string
	Type     string
}

type Repository interface {
	// -------- Reference data --------
	GetService(ctx context.Context, id string) (*models.Service, error)
	GetBarber(ctx context.Context, id string) (*models.Barber, error)
	ListActiveBarbers(ctx context.Context) ([]models.Barber, error)

	// -------- Client --------
	GetClient(ctx context.Context, id string) (*models.Client, error)
	GetOrCreateClient(ctx context.Context, name, phone, email string) (*models.Client, error)

	// -------- Availability --------
	ListBookedTimes(ctx context.Context, barberID, date string) ([]string, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatus persists ap.Status only if the stored row is still in from.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
}

// Reconciler recomputes denormalized aggregates from appointments.
type Reconciler interface {
	RefreshBarberStats(ctx context.Context, barberID string) error
	RefreshClientVisits(ctx context.Context, clientID string) error
}
