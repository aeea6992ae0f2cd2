package appointment

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

const (
	HorizonDays = 14

	availabilityFanOut = 8
)

type AllBarbersAvailability struct {
	repo  domain.Repository
	avail *GetAvailability
	clock timezone.Clock
	retry retry.Config
}

func NewAllBarbersAvailability(
	repo domain.Repository,
	avail *GetAvailability,
	clock timezone.Clock,
	rc retry.Config,
) *AllBarbersAvailability {
	return &AllBarbersAvailability{
		repo:  repo,
		avail: avail,
		clock: clock,
		retry: rc,
	}
}

// Execute returns every active barber with free slots for the next
// HorizonDays days, today first.
func (uc *AllBarbersAvailability) Execute(
	ctx context.Context,
) ([]domain.BarberAvailability, error) {

	barbers, err := retry.DoValue(ctx, uc.retry, "list_active_barbers",
		func(ctx context.Context) ([]models.Barber, error) {
			return uc.repo.ListActiveBarbers(ctx)
		},
	)
	if err != nil {
		log.Error().Err(err).Msg("listing barbers for availability failed")
		return nil, httperr.ErrUnavailable(httperr.CodeServiceUnavailable)
	}

	dates := timezone.NextDays(uc.clock.Now(), HorizonDays)

	out := make([]domain.BarberAvailability, len(barbers))
	for i, b := range barbers {
		out[i] = domain.BarberAvailability{
			BarberID:  b.ID,
			Name:      b.Name,
			Specialty: b.Specialty,
			PhotoURL:  b.PhotoURL,
			Days:      make([]domain.DayAvailability, len(dates)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(availabilityFanOut)

	for i := range out {
		for j, date := range dates {
			g.Go(func() error {
				a := uc.avail.Execute(gctx, out[i].BarberID, date)
				out[i].Days[j] = domain.DayAvailability{Date: date, Slots: a.Slots}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
