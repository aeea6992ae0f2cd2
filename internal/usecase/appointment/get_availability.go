package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	retry retry.Config
}

func NewGetAvailability(repo domain.Repository, rc retry.Config) *GetAvailability {
	return &GetAvailability{repo: repo, retry: rc}
}

// Execute never fails: when bookings cannot be read it offers no slots
// and flags the result as degraded.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID string,
	date string,
) domain.Availability {

	out := domain.Availability{BarberID: barberID, Date: date, Slots: []string{}}

	if _, ok := timezone.ParseDate(date); !ok || barberID == "" {
		out.Degraded = true
		return out
	}

	booked, err := retry.DoValue(ctx, uc.retry, "list_booked_times",
		func(ctx context.Context) ([]string, error) {
			return uc.repo.ListBookedTimes(ctx, barberID, date)
		},
	)
	if err != nil {
		log.Error().
			Err(err).
			Str("barber_id", barberID).
			Str("date", date).
			Msg("availability lookup failed, offering no slots")
		out.Degraded = true
		return out
	}

	out.Slots = domain.FreeSlots(booked)
	return out
}
