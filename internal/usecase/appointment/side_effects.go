package appointment

import (
	"context"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
)

// Counter refreshes run after the primary write has committed. A failure
// leaves counters stale until the next refresh or a full reconcile, so it is
// logged and not returned.

func refreshBarber(ctx context.Context, r domain.Reconciler, barberID string) {
	if err := r.RefreshBarberStats(ctx, barberID); err != nil {
		log.Warn().Err(err).Str("barber_id", barberID).Msg("barber stats refresh failed")
	}
}

func refreshClient(ctx context.Context, r domain.Reconciler, clientID string) {
	if err := r.RefreshClientVisits(ctx, clientID); err != nil {
		log.Warn().Err(err).Str("client_id", clientID).Msg("client visits refresh failed")
	}
}
