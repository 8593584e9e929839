package membership

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateMembership(ctx context.Context, mem models.Membership) (int, error) {
	args := m.Called(ctx, mem)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetMembershipByID(ctx context.Context, id int) (*models.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}
func (m *RepoMock) GetCurrentMembershipByUserUID(ctx context.Context, userUID string) (*models.Membership, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}
func (m *RepoMock) ApproveMembership(ctx context.Context, id int, periodStart, periodEnd, gracePeriodEnd time.Time) (int, error) {
	args := m.Called(ctx, id, periodStart, periodEnd, gracePeriodEnd)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RejectMembership(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ExtendMembership(ctx context.Context, id int, periodEnd, gracePeriodEnd time.Time) (int, error) {
	args := m.Called(ctx, id, periodEnd, gracePeriodEnd)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListMemberships(ctx context.Context, username string, limit, offset int) ([]*models.Membership, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}
func (m *RepoMock) ListAllMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Membership), args.Error(1)
}
func (m *RepoMock) GetTrainerAccess(ctx context.Context, membershipID int) (*models.TrainerAccess, error) {
	args := m.Called(ctx, membershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrainerAccess), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const graceDays = 7

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tptr(t time.Time) *time.Time { return &t }

func TestPurchase(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger(), graceDays)

	req := models.DummyMembership{PlanName: "Premium", PlanMode: "monthly", DurationMonths: 1, HasAddon: true}
	repo.On("CreateMembership", mock.Anything, mock.MatchedBy(func(m models.Membership) bool {
		return m.Status == models.MembershipStatusPending &&
			m.PeriodEnd == nil &&
			m.PlanName == "Premium" &&
			m.HasAddon
	})).Return(42, nil)

	id, err := svc.Purchase(context.Background(), "uid-1", "testuser", req, now)

	assert.NoError(t, err)
	assert.Equal(t, 42, id)
	repo.AssertExpectations(t)
}

func TestApprove(t *testing.T) {
	t.Run("подтверждение выставляет окна действия", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		m := &models.Membership{ID: 5, Status: models.MembershipStatusPending, DurationMonths: 2}
		wantEnd := now.AddDate(0, 2, 0)
		wantGrace := wantEnd.AddDate(0, 0, graceDays)

		repo.On("GetMembershipByID", mock.Anything, 5).Return(m, nil)
		repo.On("ApproveMembership", mock.Anything, 5, now, wantEnd, wantGrace).Return(1, nil)
		cache.On("Invalidate", "membership:5").Return(nil)

		err := svc.Approve(context.Background(), 5, true, now)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("отклонение не трогает окна", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		repo.On("RejectMembership", mock.Anything, 5).Return(1, nil)

		err := svc.Approve(context.Background(), 5, false, now)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "ApproveMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("не ожидающий абонемент даёт ошибку", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		repo.On("RejectMembership", mock.Anything, 7).Return(0, nil)

		err := svc.Approve(context.Background(), 7, false, now)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "is not pending")
	})
}

func TestRenew(t *testing.T) {
	t.Run("продление из льготного периода", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		m := &models.Membership{
			ID:             3,
			Status:         models.MembershipStatusGracePeriod,
			PeriodEnd:      tptr(now.AddDate(0, 0, -2)),
			GracePeriodEnd: tptr(now.AddDate(0, 0, 5)),
			DurationMonths: 1,
		}
		// PeriodEnd в прошлом, продление отсчитывается от now.
		wantEnd := now.AddDate(0, 1, 0)
		wantGrace := wantEnd.AddDate(0, 0, graceDays)

		repo.On("GetMembershipByID", mock.Anything, 3).Return(m, nil)
		repo.On("ExtendMembership", mock.Anything, 3, wantEnd, wantGrace).Return(1, nil)
		cache.On("Invalidate", "membership:3").Return(nil)

		verdict, err := svc.Renew(context.Background(), 3, now)

		assert.NoError(t, err)
		assert.True(t, verdict.IsEligible)
		repo.AssertExpectations(t)
	})

	t.Run("отрицательный вердикт возвращается без ошибки", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		m := &models.Membership{ID: 3, Status: models.MembershipStatusActive, PeriodEnd: tptr(now.AddDate(0, 1, 0)), DurationMonths: 1}
		repo.On("GetMembershipByID", mock.Anything, 3).Return(m, nil)

		verdict, err := svc.Renew(context.Background(), 3, now)

		assert.NoError(t, err)
		assert.False(t, verdict.IsEligible)
		repo.AssertNotCalled(t, "ExtendMembership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка репозитория пробрасывается", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		repo.On("GetMembershipByID", mock.Anything, 3).Return(nil, errors.New("db error"))

		verdict, err := svc.Renew(context.Background(), 3, now)

		assert.Error(t, err)
		assert.Nil(t, verdict)
	})
}

func TestRead(t *testing.T) {
	t.Run("кеш-попадание не ходит в репозиторий", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		cache.On("Get", "membership:9", mock.Anything).Return(true, nil)

		_, err := svc.Read(context.Background(), 9)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "GetMembershipByID", mock.Anything, mock.Anything)
	})

	t.Run("кеш-промах читает из репозитория и кеширует", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		m := &models.Membership{ID: 9, Status: models.MembershipStatusActive}
		cache.On("Get", "membership:9", mock.Anything).Return(false, nil)
		repo.On("GetMembershipByID", mock.Anything, 9).Return(m, nil)
		cache.On("Set", "membership:9", m, time.Hour).Return(nil)

		got, err := svc.Read(context.Background(), 9)

		assert.NoError(t, err)
		assert.Equal(t, m, got)
		cache.AssertExpectations(t)
	})
}

func TestList(t *testing.T) {
	t.Run("админ видит все абонементы", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		repo.On("ListAllMemberships", mock.Anything, 10, 0).Return([]*models.Membership{{ID: 1}, {ID: 2}}, nil)

		got, err := svc.List(context.Background(), "admin-user", "admin", 10, 0)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "ListMemberships", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("пользователь видит только свои", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := New(repo, cache, newNoopLogger(), graceDays)

		repo.On("ListMemberships", mock.Anything, "testuser", 10, 0).Return([]*models.Membership{{ID: 1}}, nil)

		got, err := svc.List(context.Background(), "testuser", "user", 10, 0)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestStatus(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger(), graceDays)

	m := &models.Membership{
		ID:             4,
		UserUID:        "uid-1",
		PlanName:       "Premium",
		Status:         models.MembershipStatusGracePeriod,
		PeriodEnd:      tptr(now.AddDate(0, 0, -2)),
		GracePeriodEnd: tptr(now.AddDate(0, 0, 5)),
		DurationMonths: 1,
	}
	repo.On("GetCurrentMembershipByUserUID", mock.Anything, "uid-1").Return(m, nil)
	repo.On("GetTrainerAccess", mock.Anything, 4).Return(&models.TrainerAccess{MembershipID: 4}, nil)

	report, err := svc.Status(context.Background(), "uid-1", now)

	assert.NoError(t, err)
	assert.True(t, report.MembershipRenewal.IsEligible)
	assert.False(t, report.TrainerRenewal.IsEligible)
	assert.False(t, report.Messaging.IsEligible)
	assert.Equal(t, models.BadgeMembershipRenewal, report.Badge)
	// Тренер не назначен, окно доступа в отчёт не попадает.
	assert.Nil(t, report.TrainerAccess)
}
