package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
	"github.com/BruksfildServices01/amai-mens-care/internal/validators"
)

type PublicBookingInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string

	BarberID  string
	ServiceID string
	Date      string
	Time      string
	Notes     string
}

// PublicBooking is the guest flow: resolve the client by contact details,
// then book a regular appointment for them.
type PublicBooking struct {
	repo       domain.Repository
	create     *CreateAppointment
	clock      timezone.Clock
	emailCheck validators.EmailCheck
}

func NewPublicBooking(
	repo domain.Repository,
	create *CreateAppointment,
	clock timezone.Clock,
	emailCheck validators.EmailCheck,
) *PublicBooking {
	return &PublicBooking{
		repo:       repo,
		create:     create,
		clock:      clock,
		emailCheck: emailCheck,
	}
}

func (uc *PublicBooking) Execute(
	ctx context.Context,
	in PublicBookingInput,
) (*models.Appointment, error) {

	name := strings.TrimSpace(in.ClientName)
	phone := validators.NormalizePhone(in.ClientPhone)
	email := strings.ToLower(strings.TrimSpace(in.ClientEmail))

	if name == "" {
		return nil, httperr.ErrBusiness("client_name_required")
	}
	if phone == "" && email == "" {
		return nil, httperr.ErrBusiness("client_contact_required")
	}
	if phone != "" && !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	if email != "" && !uc.emailCheck(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	if _, ok := timezone.ParseDate(in.Date); !ok {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !domain.IsValidSlot(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	now := uc.clock.Now()
	today := now.Format(timezone.DateLayout)
	if in.Date < today || (in.Date == today && in.Time <= now.Format(timezone.TimeLayout)) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	client, err := uc.repo.GetOrCreateClient(ctx, name, phone, email)
	if err != nil {
		return nil, err
	}

	return uc.create.Execute(ctx, CreateAppointmentInput{
		ClientID:  client.ID,
		BarberID:  in.BarberID,
		ServiceID: in.ServiceID,
		Date:      in.Date,
		Time:      in.Time,
		Type:      string(domain.TypeAppointment),
		Notes:     in.Notes,
	})
}
