package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
)

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

// memoryRepo mirrors the Postgres constraints that matter: at most one
// scheduled appointment per barber, date and time.
type memoryRepo struct {
	mu sync.Mutex

	services     map[string]models.Service
	barbers      map[string]models.Barber
	clients      map[string]models.Client
	appointments map[string]models.Appointment

	bookedErr     error
	bookedErrLeft int
	barbersErr    error
	servicesErr   error
	serviceCalls  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		services:     map[string]models.Service{},
		barbers:      map[string]models.Barber{},
		clients:      map[string]models.Client{},
		appointments: map[string]models.Appointment{},
	}
}

func (r *memoryRepo) addService(price float64, duration int) models.Service {
	s := models.Service{ID: uuid.NewString(), Name: "Cut", Price: price, Duration: duration}
	r.services[s.ID] = s
	return s
}

func (r *memoryRepo) addBarber(name string, rate float64, active bool) models.Barber {
	b := models.Barber{ID: uuid.NewString(), Name: name, CommissionRate: rate, Active: active}
	r.barbers[b.ID] = b
	return b
}

func (r *memoryRepo) addClient(name string) models.Client {
	c := models.Client{ID: uuid.NewString(), Name: name}
	r.clients[c.ID] = c
	return c
}

func (r *memoryRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serviceCalls++
	if r.servicesErr != nil {
		return nil, r.servicesErr
	}
	s, ok := r.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &s, nil
}

func (r *memoryRepo) GetBarber(_ context.Context, id string) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, httperr.ErrNotFound("barber_not_found")
	}
	return &b, nil
}

func (r *memoryRepo) ListActiveBarbers(_ context.Context) ([]models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.barbersErr != nil {
		return nil, r.barbersErr
	}
	var out []models.Barber
	for _, b := range r.barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepo) GetClient(_ context.Context, id string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, httperr.ErrNotFound("client_not_found")
	}
	return &c, nil
}

func (r *memoryRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if (phone != "" && c.Phone == phone) || (email != "" && c.Email == email) {
			return &c, nil
		}
	}
	c := models.Client{ID: uuid.NewString(), Name: name, Phone: phone, Email: email}
	r.clients[c.ID] = c
	return &c, nil
}

func (r *memoryRepo) ListBookedTimes(_ context.Context, barberID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bookedErr != nil && r.bookedErrLeft != 0 {
		r.bookedErrLeft--
		return nil, r.bookedErr
	}
	var out []string
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.Date == date && ap.Status == string(domain.StatusScheduled) {
			out = append(out, ap.Time)
		}
	}
	return out, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.Status == string(domain.StatusScheduled) {
		for _, other := range r.appointments {
			if other.BarberID == ap.BarberID && other.Date == ap.Date && other.Time == ap.Time &&
				other.Status == string(domain.StatusScheduled) {
				return httperr.ErrConflict(httperr.CodeSlotConflict)
			}
		}
	}
	ap.ID = uuid.NewString()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return &ap, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Status != string(from) {
		return httperr.ErrConflict(httperr.CodeInvalidTransition)
	}
	stored.Status = ap.Status
	stored.ClientID = ap.ClientID
	stored.CompletedAt = ap.CompletedAt
	stored.CancelledAt = ap.CancelledAt
	r.appointments[ap.ID] = stored
	return nil
}

func (r *memoryRepo) DeleteAppointment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	delete(r.appointments, id)
	return nil
}

func (r *memoryRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.BarberID != "" && ap.BarberID != f.BarberID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time < out[j].Date+out[j].Time })
	return out, nil
}

func (r *memoryRepo) scheduledCount(barberID, date, hm string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.Date == date && ap.Time == hm && ap.Status == string(domain.StatusScheduled) {
			n++
		}
	}
	return n
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) RefreshBarberStats(ctx context.Context, barberID string) error {
	return m.Called(ctx, barberID).Error(0)
}

func (m *mockReconciler) RefreshClientVisits(ctx context.Context, clientID string) error {
	return m.Called(ctx, clientID).Error(0)
}

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Action
	}
	return out
}

var (
	_ domain.Repository = (*memoryRepo)(nil)
	_ domain.Reconciler = (*mockReconciler)(nil)
	_ audit.Emitter     = (*recordingAudit)(nil)
)

func listFilter(barberID, status string) domain.ListFilter {
	return domain.ListFilter{BarberID: barberID, Status: status}
}
