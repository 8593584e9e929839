// Package trainer содержит бизнес-логику тренерских окон доступа: назначение
// тренера с расчётом окна по тарифу, продление доступа и отправку сообщений
// тренеру с публикацией в обменник чата.
package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/planperiod"
	"github.com/magabrotheeeer/gym-manager/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/eligibility"
)

// Repository определяет методы хранилища, нужные тренерскому сервису.
type Repository interface {
	// GetMembershipByID возвращает абонемент по ID.
	GetMembershipByID(ctx context.Context, id int) (*models.Membership, error)
	// GetCurrentMembershipByUserUID возвращает последний неотклонённый абонемент пользователя.
	GetCurrentMembershipByUserUID(ctx context.Context, userUID string) (*models.Membership, error)
	// GetTrainerAccess возвращает тренерское окно доступа абонемента.
	GetTrainerAccess(ctx context.Context, membershipID int) (*models.TrainerAccess, error)
	// UpsertTrainerAccess создаёт или заменяет тренерское окно доступа.
	UpsertTrainerAccess(ctx context.Context, t models.TrainerAccess) error
	// ExtendTrainerAccess продлевает тренерское окно до новой даты.
	ExtendTrainerAccess(ctx context.Context, membershipID int, periodEnd, gracePeriodEnd time.Time) (int, error)
	// CreateMessage сохраняет сообщение чата и возвращает его ID.
	CreateMessage(ctx context.Context, msg models.Message) (int, error)
}

// Broker описывает публикацию сообщений в шину.
type Broker interface {
	Publish(exchange, routingKey string, message any) error
}

// Service реализует бизнес-логику тренерских окон.
type Service struct {
	repo      Repository
	broker    Broker
	log       *slog.Logger
	graceDays int
}

// New создает новый экземпляр Service.
func New(repo Repository, broker Broker, log *slog.Logger, graceDays int) *Service {
	return &Service{
		repo:      repo,
		broker:    broker,
		log:       log,
		graceDays: graceDays,
	}
}

// Assign назначает тренера на абонемент и рассчитывает окно доступа по тарифу.
// Требует активного абонемента. Окно начинается с now: включённые дни
// добавляются раньше месяцев дополнения, порядок арифметики фиксирован.
func (s *Service) Assign(ctx context.Context, membershipID int, trainerUID string, now time.Time) (*models.TrainerAccess, error) {
	m, err := s.repo.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MembershipStatusActive {
		return nil, fmt.Errorf("membership %d is not active", membershipID)
	}

	period := planperiod.ComputeTrainerPeriod(now, planperiod.Spec{
		PlanName:       m.PlanName,
		PlanMode:       m.PlanMode,
		HasAddon:       m.HasAddon,
		DurationMonths: m.DurationMonths,
	})

	access := models.TrainerAccess{
		MembershipID:    membershipID,
		TrainerUID:      &trainerUID,
		TrainerAssigned: true,
		PeriodStart:     period.PeriodStart,
		IsIncluded:      period.IsIncluded,
		IsAddon:         period.IsAddon,
	}
	if period.PeriodEnd.After(period.PeriodStart) {
		periodEnd := period.PeriodEnd
		gracePeriodEnd := periodEnd.AddDate(0, 0, s.graceDays)
		access.PeriodEnd = &periodEnd
		access.GracePeriodEnd = &gracePeriodEnd
	}

	if err := s.repo.UpsertTrainerAccess(ctx, access); err != nil {
		return nil, err
	}
	s.log.Info("assigned trainer",
		slog.Int("membership_id", membershipID),
		slog.String("trainer_uid", trainerUID))
	return &access, nil
}

// Renew продлевает тренерское окно, если вердикт положительный.
// Отрицательный вердикт возвращается вызывающему как есть, без ошибки.
func (s *Service) Renew(ctx context.Context, membershipID int, now time.Time) (*models.Verdict, error) {
	m, err := s.repo.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetTrainerAccess(ctx, membershipID)
	if err != nil {
		return nil, err
	}

	verdict := eligibility.CheckTrainerRenewal(*m, *t, now)
	if !verdict.IsEligible {
		return &verdict, nil
	}

	base := now
	if t.PeriodEnd != nil && t.PeriodEnd.After(now) {
		base = *t.PeriodEnd
	}
	periodEnd := base.AddDate(0, planperiod.AddonMonths(m.PlanName, m.DurationMonths), 0)
	gracePeriodEnd := periodEnd.AddDate(0, 0, s.graceDays)

	if _, err := s.repo.ExtendTrainerAccess(ctx, membershipID, periodEnd, gracePeriodEnd); err != nil {
		return nil, err
	}

	s.log.Info("renewed trainer access",
		slog.Int("membership_id", membershipID),
		slog.Time("period_end", periodEnd))
	return &verdict, nil
}

// SendMessage отправляет сообщение назначенному тренеру, если вердикт
// переписки положительный: сохраняет сообщение и публикует его в обменник
// чата с ключом маршрутизации trainer uid.
func (s *Service) SendMessage(ctx context.Context, userUID, body string, now time.Time) (*models.Verdict, int, error) {
	m, err := s.repo.GetCurrentMembershipByUserUID(ctx, userUID)
	if err != nil {
		return nil, 0, err
	}
	t, err := s.repo.GetTrainerAccess(ctx, m.ID)
	if err != nil {
		return nil, 0, err
	}

	verdict := eligibility.CheckMessagingAccess(*m, *t, now)
	if !verdict.IsEligible {
		return &verdict, 0, nil
	}

	msg := models.Message{
		MembershipID: m.ID,
		SenderUID:    userUID,
		TrainerUID:   *t.TrainerUID,
		Body:         body,
		SentAt:       now,
	}
	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return nil, 0, err
	}
	msg.ID = id

	if err := s.broker.Publish(rabbitmq.ChatExchange, msg.TrainerUID, msg); err != nil {
		// Сообщение уже сохранено, доставка в реальном времени не критична.
		s.log.Warn("failed to publish chat message", slog.Int("id", id), slog.Any("err", err))
	}

	s.log.Info("sent message to trainer", slog.Int("id", id), slog.Int("membership_id", m.ID))
	return &verdict, id, nil
}
