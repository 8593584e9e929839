// Package scheduler содержит фоновые переходы окон абонементов по времени:
// active -> grace_period -> expired. Каждый переход публикует уведомление
// в обменник notifications для воркера рассылки.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Repository определяет методы хранилища, нужные планировщику.
type Repository interface {
	// FindMembershipsEnteringGracePeriod находит активные абонементы с наступившим концом окна.
	FindMembershipsEnteringGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error)
	// FindMembershipsLeavingGracePeriod находит абонементы с законченным льготным периодом.
	FindMembershipsLeavingGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error)
	// MarkMembershipGracePeriod переводит абонемент в льготный период.
	MarkMembershipGracePeriod(ctx context.Context, id int) error
	// MarkMembershipExpired переводит абонемент в статус expired.
	MarkMembershipExpired(ctx context.Context, id int) error
}

// Broker описывает публикацию сообщений в шину.
type Broker interface {
	Publish(exchange, routingKey string, message any) error
}

// Service реализует фоновые переходы окон абонементов.
type Service struct {
	repo   Repository
	broker Broker
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, broker Broker, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		broker: broker,
		log:    log,
	}
}

// Run запускает цикл переходов с заданным интервалом до отмены контекста.
// Первый проход выполняется сразу. now фиксируется один раз на проход,
// чтобы оба перехода видели один и тот же момент времени.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.runTransitions(ctx, time.Now().UTC())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runTransitions(ctx, time.Now().UTC())
		}
	}
}

func (s *Service) runTransitions(ctx context.Context, now time.Time) {
	s.log.Info("starting membership window transitions")

	entering, err := s.repo.FindMembershipsEnteringGracePeriod(ctx, now)
	if err != nil {
		s.log.Error("failed to find memberships entering grace period", sl.Err(err))
	} else {
		for _, info := range entering {
			if err := s.repo.MarkMembershipGracePeriod(ctx, info.MembershipID); err != nil {
				s.log.Error("failed to mark grace period", sl.Err(err))
				continue
			}
			if err := s.broker.Publish(rabbitmq.NotificationsExchange,
				rabbitmq.RoutingKeyGrace, info); err != nil {
				s.log.Error("failed to publish grace notification", sl.Err(err))
			}
		}
		if len(entering) > 0 {
			s.log.Info("memberships moved to grace period", "count", len(entering))
		}
	}

	leaving, err := s.repo.FindMembershipsLeavingGracePeriod(ctx, now)
	if err != nil {
		s.log.Error("failed to find memberships leaving grace period", sl.Err(err))
		return
	}
	for _, info := range leaving {
		if err := s.repo.MarkMembershipExpired(ctx, info.MembershipID); err != nil {
			s.log.Error("failed to mark expired", sl.Err(err))
			continue
		}
		if err := s.broker.Publish(rabbitmq.NotificationsExchange,
			rabbitmq.RoutingKeyExpired, info); err != nil {
			s.log.Error("failed to publish expired notification", sl.Err(err))
		}
	}
	if len(leaving) > 0 {
		s.log.Info("memberships expired", "count", len(leaving))
	}
}
