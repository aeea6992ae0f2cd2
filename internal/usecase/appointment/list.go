package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/dto"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

type ListAppointments struct {
	repo  domain.Repository
	retry retry.Config
}

func NewListAppointments(repo domain.Repository, rc retry.Config) *ListAppointments {
	return &ListAppointments{repo: repo, retry: rc}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d == "" {
			continue
		}
		if _, ok := timezone.ParseDate(d); !ok {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}
	if f.Status != "" {
		if _, err := domain.ParseStatus(f.Status); err != nil {
			return nil, err
		}
	}
	if f.Type != "" {
		if _, err := domain.ParseType(f.Type); err != nil {
			return nil, err
		}
	}

	appointments, err := retry.DoValue(ctx, uc.retry, "list_appointments",
		func(ctx context.Context) ([]models.Appointment, error) {
			return uc.repo.ListAppointments(ctx, f)
		},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, ToListDTO(ap))
	}
	return out, nil
}

func ToListDTO(ap models.Appointment) dto.AppointmentListDTO {
	item := dto.AppointmentListDTO{
		ID:               ap.ID,
		Date:             ap.Date,
		Time:             ap.Time,
		Duration:         ap.Duration,
		Status:           ap.Status,
		Type:             ap.Type,
		ClientID:         ap.ClientID,
		ClientName:       ap.WalkInClientName,
		BarberID:         ap.BarberID,
		ServiceID:        ap.ServiceID,
		Price:            ap.Price,
		CommissionAmount: ap.CommissionAmount,
		Notes:            ap.Notes,
		CompletedAt:      ap.CompletedAt,
	}
	if ap.Client != nil {
		item.ClientName = ap.Client.Name
	}
	if ap.Barber != nil {
		item.BarberName = ap.Barber.Name
	}
	if ap.Service != nil {
		item.ServiceName = ap.Service.Name
	}
	return item
}
