package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindMembershipsEnteringGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MembershipInfo), args.Error(1)
}

func (m *MockRepository) FindMembershipsLeavingGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MembershipInfo), args.Error(1)
}

func (m *MockRepository) MarkMembershipGracePeriod(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) MarkMembershipExpired(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRunTransitions_EnteringGracePeriod(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	graceEnd := now.AddDate(0, 0, 7)
	info := &models.MembershipInfo{
		MembershipID:   5,
		Email:          "test@example.com",
		Username:       "testuser",
		PlanName:       "Premium",
		PeriodEnd:      now.AddDate(0, 0, -1),
		GracePeriodEnd: &graceEnd,
	}

	repo := new(MockRepository)
	broker := new(MockBroker)
	repo.On("FindMembershipsEnteringGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{info}, nil)
	repo.On("MarkMembershipGracePeriod", mock.Anything, 5).Return(nil)
	repo.On("FindMembershipsLeavingGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{}, nil)
	broker.On("Publish", rabbitmq.NotificationsExchange, rabbitmq.RoutingKeyGrace, info).Return(nil)

	service := New(repo, broker, newNoopLogger())
	service.runTransitions(context.Background(), now)

	repo.AssertExpectations(t)
	broker.AssertExpectations(t)
}

func TestRunTransitions_LeavingGracePeriod(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	info := &models.MembershipInfo{
		MembershipID: 9,
		Email:        "test@example.com",
		Username:     "testuser",
		PlanName:     "Basic",
		PeriodEnd:    now.AddDate(0, 0, -10),
	}

	repo := new(MockRepository)
	broker := new(MockBroker)
	repo.On("FindMembershipsEnteringGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{}, nil)
	repo.On("FindMembershipsLeavingGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{info}, nil)
	repo.On("MarkMembershipExpired", mock.Anything, 9).Return(nil)
	broker.On("Publish", rabbitmq.NotificationsExchange, rabbitmq.RoutingKeyExpired, info).Return(nil)

	service := New(repo, broker, newNoopLogger())
	service.runTransitions(context.Background(), now)

	repo.AssertExpectations(t)
	broker.AssertExpectations(t)
}

func TestRunTransitions_MarkErrorSkipsPublish(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	info := &models.MembershipInfo{MembershipID: 7, Email: "test@example.com", Username: "testuser", PlanName: "Elite", PeriodEnd: now}

	repo := new(MockRepository)
	broker := new(MockBroker)
	repo.On("FindMembershipsEnteringGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{info}, nil)
	repo.On("MarkMembershipGracePeriod", mock.Anything, 7).Return(errors.New("db error"))
	repo.On("FindMembershipsLeavingGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{}, nil)

	service := New(repo, broker, newNoopLogger())
	service.runTransitions(context.Background(), now)

	// Неотмеченный переход не публикуется
	broker.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRunTransitions_FindErrorContinuesToSecondPass(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := new(MockRepository)
	broker := new(MockBroker)
	repo.On("FindMembershipsEnteringGracePeriod", mock.Anything, now).Return(nil, errors.New("db error"))
	repo.On("FindMembershipsLeavingGracePeriod", mock.Anything, now).Return([]*models.MembershipInfo{}, nil)

	service := New(repo, broker, newNoopLogger())
	service.runTransitions(context.Background(), now)

	repo.AssertExpectations(t)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := new(MockRepository)
	broker := new(MockBroker)
	repo.On("FindMembershipsEnteringGracePeriod", mock.Anything, mock.Anything).Return([]*models.MembershipInfo{}, nil)
	repo.On("FindMembershipsLeavingGracePeriod", mock.Anything, mock.Anything).Return([]*models.MembershipInfo{}, nil)

	service := New(repo, broker, newNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.Run(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}

	assert.True(t, repo.AssertExpectations(t))
}
