package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/review"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
)

type memoryRepo struct {
	mu      sync.Mutex
	barbers map[string]bool
	reviews map[string]models.Review
}

func newMemoryRepo(barbers ...string) *memoryRepo {
	r := &memoryRepo{barbers: map[string]bool{}, reviews: map[string]models.Review{}}
	for _, b := range barbers {
		r.barbers[b] = true
	}
	return r
}

func (r *memoryRepo) Create(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ID = uuid.NewString()
	rv.CreatedAt = time.Now()
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, httperr.ErrNotFound("review_not_found")
	}
	return &rv, nil
}

func (r *memoryRepo) SetApproved(_ context.Context, id string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return httperr.ErrNotFound("review_not_found")
	}
	rv.Approved = approved
	r.reviews[id] = rv
	return nil
}

func (r *memoryRepo) ListByBarber(_ context.Context, barberID string, approvedOnly bool) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if rv.BarberID == barberID && (!approvedOnly || rv.Approved) {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListPending(_ context.Context) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rv := range r.reviews {
		if !rv.Approved {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return httperr.ErrNotFound("review_not_found")
	}
	delete(r.reviews, id)
	return nil
}

func (r *memoryRepo) BarberExists(_ context.Context, barberID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.barbers[barberID], nil
}

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) RefreshBarberStats(ctx context.Context, barberID string) error {
	return m.Called(ctx, barberID).Error(0)
}

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = time.Millisecond
	return cfg
}

func TestReviewApprovalGatesRating(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo("alex")
	refresher := &mockRefresher{}
	refresher.On("RefreshBarberStats", mock.Anything, "alex").Return(nil)

	submit := NewSubmitReview(repo, audit.Nop{}, fastRetry())
	approve := NewSetApproval(repo, refresher, audit.Nop{}, fastRetry())
	list := NewListReviews(repo, fastRetry())

	five, err := submit.Execute(ctx, domain.Submission{BarberID: "alex", Rating: 5, Comment: "Sharp", ClientName: "Omar"})
	require.NoError(t, err)
	assert.False(t, five.Approved)

	_, err = submit.Execute(ctx, domain.Submission{BarberID: "alex", Rating: 1, Comment: "Late", ClientName: "Sami"})
	require.NoError(t, err)

	public, err := list.ForBarber(ctx, "alex", true)
	require.NoError(t, err)
	assert.Empty(t, public.Reviews)
	assert.Nil(t, public.Summary.AverageRating)

	_, err = approve.Execute(ctx, five.ID, true, nil)
	require.NoError(t, err)
	refresher.AssertCalled(t, "RefreshBarberStats", mock.Anything, "alex")

	public, err = list.ForBarber(ctx, "alex", true)
	require.NoError(t, err)
	require.Len(t, public.Reviews, 1)
	require.NotNil(t, public.Summary.AverageRating)
	assert.Equal(t, 5.0, *public.Summary.AverageRating)

	all, err := list.ForBarber(ctx, "alex", false)
	require.NoError(t, err)
	assert.Len(t, all.Reviews, 2)
	assert.Equal(t, 1, all.Summary.TotalReviews)

	pending, err := list.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestSubmitReviewErrors(t *testing.T) {
	submit := NewSubmitReview(newMemoryRepo("alex"), audit.Nop{}, fastRetry())

	_, err := submit.Execute(context.Background(), domain.Submission{BarberID: "alex", Rating: 9, Comment: "x", ClientName: "y"})
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	_, err = submit.Execute(context.Background(), domain.Submission{BarberID: "ghost", Rating: 4, Comment: "x", ClientName: "y"})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestSetApprovalRefreshFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo("alex")
	refresher := &mockRefresher{}
	refresher.On("RefreshBarberStats", mock.Anything, "alex").Return(errors.New("rpc down"))

	rv, err := NewSubmitReview(repo, audit.Nop{}, fastRetry()).
		Execute(ctx, domain.Submission{BarberID: "alex", Rating: 4, Comment: "Good", ClientName: "Omar"})
	require.NoError(t, err)

	out, err := NewSetApproval(repo, refresher, audit.Nop{}, fastRetry()).Execute(ctx, rv.ID, true, nil)
	require.NoError(t, err)
	assert.True(t, out.Approved)

	_, err = NewSetApproval(repo, refresher, audit.Nop{}, fastRetry()).Execute(ctx, "missing", true, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo("alex")
	refresher := &mockRefresher{}
	refresher.On("RefreshBarberStats", mock.Anything, "alex").Return(nil)

	rv, err := NewSubmitReview(repo, audit.Nop{}, fastRetry()).
		Execute(ctx, domain.Submission{BarberID: "alex", Rating: 4, Comment: "Good", ClientName: "Omar"})
	require.NoError(t, err)

	del := NewDeleteReview(repo, refresher, audit.Nop{})
	require.NoError(t, del.Execute(ctx, rv.ID, nil))
	refresher.AssertNotCalled(t, "RefreshBarberStats", mock.Anything, mock.Anything)

	assert.True(t, httperr.IsKind(del.Execute(ctx, rv.ID, nil), httperr.KindNotFound))
}
