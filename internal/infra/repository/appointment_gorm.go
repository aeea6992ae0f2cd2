package repository

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "service_not_found", "get service")
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id string,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "barber_not_found", "get barber")
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, errors.Wrap(err, "list active barbers")
	}
	return barbers, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "client_not_found", "get client")
	}
	return &client, nil
}

// GetOrCreateClient matches on phone, then email, before inserting.
func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	db := r.db.WithContext(ctx)

	var client models.Client
	lookups := []struct{ col, val string }{
		{"phone", phone},
		{"LOWER(email)", strings.ToLower(email)},
	}
	for _, l := range lookups {
		if l.val == "" {
			continue
		}
		err := db.Where(l.col+" = ?", l.val).Order("created_at ASC").First(&client).Error
		if err == nil {
			return &client, nil
		}
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "find client")
		}
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := db.Create(&client).Error; err != nil {
		return nil, errors.Wrap(err, "create client")
	}
	return &client, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	barberID string,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ? AND status = ?", barberID, date, string(domain.StatusScheduled)).
		Order("time ASC").
		Pluck("time", &times).Error; err != nil {
		return nil, errors.Wrap(err, "list booked times")
	}
	return times, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment checks the slot first for a clean error, but the partial
// unique index is what settles concurrent inserts.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	db := r.db.WithContext(ctx)

	if ap.Status == string(domain.StatusScheduled) {
		var count int64
		if err := db.Model(&models.Appointment{}).
			Where("barber_id = ? AND date = ? AND time = ? AND status = ?",
				ap.BarberID, ap.Date, ap.Time, string(domain.StatusScheduled)).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "check slot")
		}
		if count > 0 {
			return httperr.ErrConflict(httperr.CodeSlotConflict)
		}
	}

	return mapCreateAppointmentErr(db.Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, "appointment_not_found", "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"client_id":    ap.ClientID,
			"completed_at": ap.CompletedAt,
			"cancelled_at": ap.CancelledAt,
		})
	if res.Error != nil {
		return errors.Wrap(res.Error, "update appointment status")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict(httperr.CodeInvalidTransition)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return notFoundAs(res.Error, "appointment_not_found", "delete appointment")
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("appointment_not_found")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Service")

	if f.BarberID != "" {
		q = q.Where("barber_id = ?", f.BarberID)
	}
	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&apps).Error; err != nil {
		return nil, errors.Wrap(err, "list appointments")
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
