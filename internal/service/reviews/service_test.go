package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
	reviewRepo "github.com/maxturnos/turnos-service/internal/infra/storage/review"
	"github.com/maxturnos/turnos-service/internal/service/reviews/models"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/ptr"
)

type fakeReviews struct {
	items       []*domain.Review
	lastOrder   domain.ReviewOrder
	onlyApprove bool
	purgeBefore time.Time
}

func (f *fakeReviews) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	r.ID = int64(len(f.items) + 1)
	f.items = append(f.items, r)
	return r, nil
}

func (f *fakeReviews) List(_ context.Context, _ string, order domain.ReviewOrder, onlyApproved bool) ([]*domain.Review, error) {
	f.lastOrder, f.onlyApprove = order, onlyApproved
	return f.items, nil
}

func (f *fakeReviews) Moderate(_ context.Context, _ string, id int64, approved *bool) error {
	for _, r := range f.items {
		if r.ID == id {
			r.Approved = approved
			return nil
		}
	}
	return reviewRepo.ErrReviewNotFound
}

func (f *fakeReviews) Delete(context.Context, string, int64) error { return nil }

func (f *fakeReviews) PurgeRejected(_ context.Context, before time.Time) (int64, error) {
	f.purgeBefore = before
	return 2, nil
}

type fakeBusinesses struct{ order domain.ReviewOrder }

func (f fakeBusinesses) GetByCode(_ context.Context, code string) (*domain.Business, error) {
	return &domain.Business{Code: code, ReviewOrder: f.order}, nil
}

type nopCache struct{}

func (nopCache) Delete(context.Context, ...string) error { return nil }

var owner = domain.Principal{Email: "dueno@example.com", Role: domain.RoleAdmin, BusinessCode: "barberia"}

func TestListApproved_UsesBusinessOrder(t *testing.T) {
	repo := &fakeReviews{}
	svc := NewService(repo, fakeBusinesses{order: domain.ReviewOrderHighestFirst}, nopCache{}, logger.Nop())

	_, err := svc.ListApproved(context.Background(), "barberia")
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewOrderHighestFirst, repo.lastOrder)
	assert.True(t, repo.onlyApprove)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeReviews{}, fakeBusinesses{}, nopCache{}, logger.Nop())
	customer := domain.Principal{Email: "ana@example.com", Name: "Ana"}

	_, err := svc.Create(context.Background(), domain.Principal{}, "barberia", &models.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrLoginRequired)

	_, err = svc.Create(context.Background(), customer, "barberia", &models.CreateReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.Create(context.Background(), customer, "barberia", &models.CreateReviewRequest{Rating: 4, Texto: " Excelente "})
	require.NoError(t, err)
	assert.Equal(t, "Excelente", resp.Texto)
	assert.Equal(t, string(domain.ModerationPending), resp.Estado)
	assert.Equal(t, "Ana", resp.UsuarioNombre)
}

func TestModerate_CanResetToPending(t *testing.T) {
	repo := &fakeReviews{items: []*domain.Review{{ID: 1, Approved: ptr.Ptr(false)}}}
	svc := NewService(repo, fakeBusinesses{}, nopCache{}, logger.Nop())

	require.NoError(t, svc.Moderate(context.Background(), owner, "barberia", 1, nil))
	assert.Equal(t, domain.ModerationPending, repo.items[0].State())

	assert.ErrorIs(t, svc.Moderate(context.Background(), owner, "barberia", 9, ptr.Ptr(true)), ErrReviewNotFound)
	assert.ErrorIs(t, svc.Moderate(context.Background(), domain.Principal{Email: "ana@example.com"}, "barberia", 1, nil), ErrAccessDenied)
}

func TestPurgeRejected_UsesRetentionWindow(t *testing.T) {
	repo := &fakeReviews{}
	svc := NewService(repo, fakeBusinesses{}, nopCache{}, logger.Nop())
	now := time.Date(2025, time.November, 5, 12, 0, 0, 0, time.UTC)

	n, err := svc.PurgeRejected(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, now.Add(-24*time.Hour), repo.purgeBefore)
}
