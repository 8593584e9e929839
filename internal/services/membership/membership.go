// Package membership содержит бизнес-логику жизненного цикла абонементов:
// покупка, подтверждение или отклонение администратором, продление в льготном
// периоде и сводный отчёт о правах доступа. Все решения о правах принимает
// пакет eligibility, текущий момент передаётся в него явно.
package membership

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
	"github.com/magabrotheeeer/gym-manager/internal/services/eligibility"
)

// Repository определяет методы для работы с абонементами в хранилище.
type Repository interface {
	// CreateMembership добавляет новый абонемент и возвращает его ID.
	CreateMembership(ctx context.Context, m models.Membership) (int, error)
	// GetMembershipByID возвращает абонемент по ID.
	GetMembershipByID(ctx context.Context, id int) (*models.Membership, error)
	// GetCurrentMembershipByUserUID возвращает последний неотклонённый абонемент пользователя.
	GetCurrentMembershipByUserUID(ctx context.Context, userUID string) (*models.Membership, error)
	// ApproveMembership активирует абонемент и выставляет окна действия.
	ApproveMembership(ctx context.Context, id int, periodStart, periodEnd, gracePeriodEnd time.Time) (int, error)
	// RejectMembership отклоняет ожидающий подтверждения абонемент.
	RejectMembership(ctx context.Context, id int) (int, error)
	// ExtendMembership продлевает абонемент до новых дат.
	ExtendMembership(ctx context.Context, id int, periodEnd, gracePeriodEnd time.Time) (int, error)
	// ListMemberships возвращает абонементы пользователя с пагинацией.
	ListMemberships(ctx context.Context, username string, limit, offset int) ([]*models.Membership, error)
	// ListAllMemberships возвращает все абонементы с пагинацией.
	ListAllMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error)
	// GetTrainerAccess возвращает тренерское окно доступа абонемента.
	GetTrainerAccess(ctx context.Context, membershipID int) (*models.TrainerAccess, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с абонементами, включая кеширование.
type Service struct {
	repo      Repository
	cache     Cache
	log       *slog.Logger
	graceDays int
}

// New создает новый экземпляр Service. graceDays — длина льготного периода,
// применяемая при подтверждении и продлении абонемента.
func New(repo Repository, cache Cache, log *slog.Logger, graceDays int) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		log:       log,
		graceDays: graceDays,
	}
}

func membershipCacheKey(id int) string {
	return fmt.Sprintf("membership:%d", id)
}

// Purchase создает абонемент в статусе pending и возвращает его ID.
// Окна действия выставляются позже, при подтверждении администратором.
func (s *Service) Purchase(ctx context.Context, userUID, username string, req models.DummyMembership, now time.Time) (int, error) {
	m := models.Membership{
		UserUID:        userUID,
		Username:       username,
		PlanName:       req.PlanName,
		PlanMode:       req.PlanMode,
		Status:         models.MembershipStatusPending,
		PeriodStart:    now,
		DurationMonths: req.DurationMonths,
		HasAddon:       req.HasAddon,
	}

	id, err := s.repo.CreateMembership(ctx, m)
	if err != nil {
		return 0, err
	}
	s.log.Info("created pending membership", slog.Int("id", id), slog.String("plan", req.PlanName))
	return id, nil
}

// Approve подтверждает или отклоняет ожидающий абонемент.
// При подтверждении окно действия начинается с now, льготный период
// добавляется после окончания, так что grace_period_end >= period_end.
func (s *Service) Approve(ctx context.Context, id int, approve bool, now time.Time) error {
	if !approve {
		count, err := s.repo.RejectMembership(ctx, id)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("membership %d is not pending", id)
		}
		s.log.Info("rejected membership", slog.Int("id", id))
		return nil
	}

	m, err := s.repo.GetMembershipByID(ctx, id)
	if err != nil {
		return err
	}

	periodEnd := now.AddDate(0, m.DurationMonths, 0)
	gracePeriodEnd := periodEnd.AddDate(0, 0, s.graceDays)
	count, err := s.repo.ApproveMembership(ctx, id, now, periodEnd, gracePeriodEnd)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("membership %d is not pending", id)
	}

	if err := s.cache.Invalidate(membershipCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", membershipCacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("approved membership", slog.Int("id", id), slog.Time("period_end", periodEnd))
	return nil
}

// Renew продлевает абонемент, если вердикт о продлении положительный.
// Отрицательный вердикт возвращается вызывающему как есть, без ошибки.
// Продление отсчитывается от max(period_end, now), чтобы окно после продления
// из льготного периода не оказалось в прошлом.
func (s *Service) Renew(ctx context.Context, id int, now time.Time) (*models.Verdict, error) {
	m, err := s.repo.GetMembershipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verdict := eligibility.CheckMembershipRenewal(*m, now)
	if !verdict.IsEligible {
		return &verdict, nil
	}

	base := now
	if m.PeriodEnd != nil && m.PeriodEnd.After(now) {
		base = *m.PeriodEnd
	}
	periodEnd := base.AddDate(0, m.DurationMonths, 0)
	gracePeriodEnd := periodEnd.AddDate(0, 0, s.graceDays)

	if _, err := s.repo.ExtendMembership(ctx, id, periodEnd, gracePeriodEnd); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(membershipCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", membershipCacheKey(id)), slog.Any("err", err))
	}

	s.log.Info("renewed membership", slog.Int("id", id), slog.Time("period_end", periodEnd))
	return &verdict, nil
}

// Read возвращает абонемент по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int) (*models.Membership, error) {
	var result *models.Membership
	cacheKey := membershipCacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetMembershipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return result, nil
}

// List возвращает список абонементов в зависимости от роли пользователя.
func (s *Service) List(ctx context.Context, username, role string, limit, offset int) ([]*models.Membership, error) {
	var err error
	var entries []*models.Membership
	if role == "admin" {
		entries, err = s.repo.ListAllMemberships(ctx, limit, offset)
	} else {
		entries, err = s.repo.ListMemberships(ctx, username, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Status собирает сводный отчёт по текущему абонементу пользователя:
// оба вердикта продления, вердикт переписки и бейдж.
func (s *Service) Status(ctx context.Context, userUID string, now time.Time) (*models.StatusReport, error) {
	m, err := s.repo.GetCurrentMembershipByUserUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetTrainerAccess(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	membershipVerdict := eligibility.CheckMembershipRenewal(*m, now)
	trainerVerdict := eligibility.CheckTrainerRenewal(*m, *t, now)

	report := &models.StatusReport{
		Membership:        m,
		MembershipRenewal: membershipVerdict,
		TrainerRenewal:    trainerVerdict,
		Messaging:         eligibility.CheckMessagingAccess(*m, *t, now),
		Badge:             eligibility.SelectRenewalBadge(membershipVerdict, trainerVerdict),
	}
	if t.TrainerAssigned {
		report.TrainerAccess = t
	}
	return report, nil
}
