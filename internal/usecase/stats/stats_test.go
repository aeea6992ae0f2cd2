package stats

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/stats"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListRows(ctx context.Context, from, to, barberID string) ([]domain.Row, error) {
	args := m.Called(ctx, from, to, barberID)
	rows, _ := args.Get(0).([]domain.Row)
	return rows, args.Error(1)
}

func (m *mockRepo) ListBarbers(ctx context.Context) ([]domain.BarberRef, error) {
	args := m.Called(ctx)
	refs, _ := args.Get(0).([]domain.BarberRef)
	return refs, args.Error(1)
}

func (m *mockRepo) GetBarber(ctx context.Context, id string) (domain.BarberRef, error) {
	args := m.Called(ctx, id)
	ref, _ := args.Get(0).(domain.BarberRef)
	return ref, args.Error(1)
}

// memoryStore round-trips through JSON like the Redis store does.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Save(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = b
	return nil
}

func (s *memoryStore) Load(_ context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

var now = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

func sampleRows() []domain.Row {
	return []domain.Row{
		{BarberID: "a", Date: "2024-06-10", Type: "appointment", Status: "completed", Price: 300, Commission: 180},
		{BarberID: "a", Date: "2024-06-12", Type: "walk-in", Status: "completed", Price: 100, Commission: 60},
		{BarberID: "b", Date: "2024-06-11", Type: "appointment", Status: "scheduled", Price: 200, Commission: 80},
	}
}

func TestDashboardStatsLiveThenCached(t *testing.T) {
	repo := &mockRepo{}
	store := newMemoryStore()
	uc := NewDashboardStats(repo, store, timezone.NewFixedClock(now), fastRetry())

	repo.On("ListRows", mock.Anything, "2024-01-01", "2024-06-12", "").Return(sampleRows(), nil).Once()
	repo.On("ListBarbers", mock.Anything).
		Return([]domain.BarberRef{{ID: "a", Name: "Alex"}, {ID: "b", Name: "Bilal"}}, nil).Once()

	live, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLive, live.Source)
	assert.Equal(t, 3, live.TotalCuts)
	assert.Equal(t, 67, live.AppointmentsPercentage)
	assert.Equal(t, 33, live.WalkInsPercentage)
	assert.Equal(t, 600.0, live.Revenue)
	require.Len(t, live.Barbers, 2)
	assert.Equal(t, "a", live.Barbers[0].BarberID)

	repo.On("ListRows", mock.Anything, "2024-01-01", "2024-06-12", "").Return(nil, errors.New("connection refused"))

	cached, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCached, cached.Source)
	assert.Equal(t, live.TotalCuts, cached.TotalCuts)
	assert.True(t, live.GeneratedAt.Equal(cached.GeneratedAt))
}

func TestDashboardStatsNoSnapshot(t *testing.T) {
	repo := &mockRepo{}
	boom := errors.New("connection refused")
	repo.On("ListRows", mock.Anything, mock.Anything, mock.Anything, "").Return(nil, boom)

	uc := NewDashboardStats(repo, newMemoryStore(), timezone.NewFixedClock(now), fastRetry())
	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDashboardStatsUnavailableWithoutSnapshot(t *testing.T) {
	repo := &mockRepo{}
	lost := &pgconn.PgError{Code: "08006"}
	repo.On("ListRows", mock.Anything, mock.Anything, mock.Anything, "").Return(nil, lost)

	uc := NewDashboardStats(repo, newMemoryStore(), timezone.NewFixedClock(now), fastRetry())
	_, err := uc.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceUnavailable))
	assert.True(t, errors.As(err, new(*pgconn.PgError)))
	repo.AssertNumberOfCalls(t, "ListRows", 3)
}

func TestDashboardStatsWindowEndsToday(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListRows", mock.Anything, "2024-01-01", "2024-06-12", "").Return(sampleRows(), nil).Once()
	repo.On("ListBarbers", mock.Anything).Return([]domain.BarberRef{}, nil).Once()

	late := timezone.NewFixedClock(time.Date(2024, 6, 12, 23, 59, 0, 0, time.UTC))
	uc := NewDashboardStats(repo, newMemoryStore(), late, fastRetry())
	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDashboardStatsEmpty(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListRows", mock.Anything, mock.Anything, mock.Anything, "").Return([]domain.Row{}, nil)
	repo.On("ListBarbers", mock.Anything).Return([]domain.BarberRef{}, nil)

	uc := NewDashboardStats(repo, newMemoryStore(), timezone.NewFixedClock(now), fastRetry())
	out, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, out.TotalCuts)
	assert.Equal(t, 0, out.AppointmentsPercentage)
	assert.Equal(t, 0, out.WalkInsPercentage)
	assert.Equal(t, domain.Trends{}, out.Trends)
}

func TestBarberStats(t *testing.T) {
	repo := &mockRepo{}
	store := newMemoryStore()
	uc := NewBarberStats(repo, store, timezone.NewFixedClock(now), fastRetry())

	repo.On("GetBarber", mock.Anything, "a").Return(domain.BarberRef{ID: "a", Name: "Alex"}, nil)
	repo.On("ListRows", mock.Anything, "2024-01-01", "2024-06-12", "a").Return(sampleRows()[:2], nil).Once()

	live, err := uc.Execute(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Alex", live.Name)
	assert.Equal(t, 2, live.TotalCuts)
	assert.Equal(t, 240.0, live.Commission)
	assert.Equal(t, domain.SourceLive, live.Source)

	repo.On("ListRows", mock.Anything, "2024-01-01", "2024-06-12", "a").Return(nil, errors.New("timeout"))

	cached, err := uc.Execute(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceCached, cached.Source)
	assert.Equal(t, 2, cached.TotalCuts)
}

func TestBarberStatsNotFound(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetBarber", mock.Anything, "zz").Return(domain.BarberRef{}, httperr.ErrNotFound("barber_not_found"))

	uc := NewBarberStats(repo, newMemoryStore(), timezone.NewFixedClock(now), fastRetry())
	_, err := uc.Execute(context.Background(), "zz")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	repo.AssertNotCalled(t, "ListRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
