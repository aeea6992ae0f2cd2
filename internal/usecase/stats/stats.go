package stats

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/stats"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

// SnapshotStore keeps the last successful result per key.
type SnapshotStore interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, dst any) (bool, error)
}

const dashboardKey = "stats:dashboard"

func barberKey(id string) string {
	return "stats:barber:" + id
}

// ======================================================
// DASHBOARD
// ======================================================

type DashboardStats struct {
	repo      domain.Repository
	snapshots SnapshotStore
	clock     timezone.Clock
	retry     retry.Config
}

func NewDashboardStats(
	repo domain.Repository,
	snapshots SnapshotStore,
	clock timezone.Clock,
	rc retry.Config,
) *DashboardStats {
	return &DashboardStats{repo: repo, snapshots: snapshots, clock: clock, retry: rc}
}

// Execute computes shop-wide stats. If the live read fails the last
// snapshot is returned labelled "cached".
func (uc *DashboardStats) Execute(ctx context.Context) (*domain.DashboardStats, error) {
	now := uc.clock.Now()

	live, err := uc.compute(ctx, now)
	if err == nil {
		live.Source = domain.SourceLive
		live.GeneratedAt = now
		saveSnapshot(ctx, uc.snapshots, dashboardKey, live)
		return live, nil
	}

	var cached domain.DashboardStats
	if loadSnapshot(ctx, uc.snapshots, dashboardKey, &cached, err) {
		cached.Source = domain.SourceCached
		return &cached, nil
	}
	return nil, err
}

func (uc *DashboardStats) compute(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	from := domain.WindowStart(now).Format(timezone.DateLayout)
	to := now.Format(timezone.DateLayout)

	rows, err := retry.DoValue(ctx, uc.retry, "stats_rows",
		func(ctx context.Context) ([]domain.Row, error) {
			return uc.repo.ListRows(ctx, from, to, "")
		},
	)
	if err != nil {
		return nil, err
	}

	barbers, err := retry.DoValue(ctx, uc.retry, "stats_barbers",
		func(ctx context.Context) ([]domain.BarberRef, error) {
			return uc.repo.ListBarbers(ctx)
		},
	)
	if err != nil {
		return nil, err
	}

	out := domain.BuildDashboard(rows, barbers, now)
	return &out, nil
}

// ======================================================
// PER BARBER
// ======================================================

type BarberStats struct {
	repo      domain.Repository
	snapshots SnapshotStore
	clock     timezone.Clock
	retry     retry.Config
}

func NewBarberStats(
	repo domain.Repository,
	snapshots SnapshotStore,
	clock timezone.Clock,
	rc retry.Config,
) *BarberStats {
	return &BarberStats{repo: repo, snapshots: snapshots, clock: clock, retry: rc}
}

func (uc *BarberStats) Execute(ctx context.Context, barberID string) (*domain.BarberStats, error) {
	now := uc.clock.Now()

	barber, err := retry.DoValue(ctx, uc.retry, "stats_barber",
		func(ctx context.Context) (domain.BarberRef, error) {
			return uc.repo.GetBarber(ctx, barberID)
		},
	)
	if httperr.IsKind(err, httperr.KindNotFound) {
		return nil, err
	}

	if err == nil {
		from := domain.WindowStart(now).Format(timezone.DateLayout)
		to := now.Format(timezone.DateLayout)
		var rows []domain.Row
		rows, err = retry.DoValue(ctx, uc.retry, "stats_rows",
			func(ctx context.Context) ([]domain.Row, error) {
				return uc.repo.ListRows(ctx, from, to, barberID)
			},
		)
		if err == nil {
			live := domain.BuildBarber(rows, barber, now)
			live.Source = domain.SourceLive
			live.GeneratedAt = now
			saveSnapshot(ctx, uc.snapshots, barberKey(barberID), live)
			return &live, nil
		}
	}

	var cached domain.BarberStats
	if loadSnapshot(ctx, uc.snapshots, barberKey(barberID), &cached, err) {
		cached.Source = domain.SourceCached
		return &cached, nil
	}
	return nil, err
}

// ======================================================
// SNAPSHOT HELPERS
// ======================================================

func saveSnapshot(ctx context.Context, s SnapshotStore, key string, v any) {
	if err := s.Save(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stats snapshot save failed")
	}
}

// loadSnapshot logs liveErr and reports whether dst was filled.
func loadSnapshot(ctx context.Context, s SnapshotStore, key string, dst any, liveErr error) bool {
	found, err := s.Load(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stats snapshot load failed")
	}
	log.Error().
		Err(liveErr).
		Str("key", key).
		Bool("served_cached", found).
		Msg("live stats computation failed")
	return found
}
