package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

const membershipColumns = `id, user_uid, username, plan_name, plan_mode, status,
			      period_start, period_end, grace_period_end, duration_months, has_addon`

func scanMembership(row interface{ Scan(...any) error }) (*models.Membership, error) {
	var m models.Membership
	var periodEnd, graceEnd sql.NullTime
	if err := row.Scan(&m.ID, &m.UserUID, &m.Username, &m.PlanName, &m.PlanMode, &m.Status,
		&m.PeriodStart, &periodEnd, &graceEnd, &m.DurationMonths, &m.HasAddon); err != nil {
		return nil, err
	}
	if periodEnd.Valid {
		m.PeriodEnd = &periodEnd.Time
	}
	if graceEnd.Valid {
		m.GracePeriodEnd = &graceEnd.Time
	}
	return &m, nil
}

// CreateMembership вставляет новый абонемент и возвращает его ID.
func (s *Storage) CreateMembership(ctx context.Context, m models.Membership) (int, error) {
	const op = "storage.CreateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO memberships (user_uid, username, plan_name, plan_mode, status,
			      period_start, period_end, grace_period_end, duration_months, has_addon)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		m.UserUID, m.Username, m.PlanName, m.PlanMode, m.Status,
		m.PeriodStart, m.PeriodEnd, m.GracePeriodEnd, m.DurationMonths, m.HasAddon).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMembershipByID возвращает абонемент по его ID.
func (s *Storage) GetMembershipByID(ctx context.Context, id int) (*models.Membership, error) {
	const op = "storage.GetMembershipByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + membershipColumns + `
			  FROM memberships WHERE id = $1`
	m, err := scanMembership(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetCurrentMembershipByUserUID возвращает последний неотклонённый абонемент пользователя.
func (s *Storage) GetCurrentMembershipByUserUID(ctx context.Context, userUID string) (*models.Membership, error) {
	const op = "storage.GetCurrentMembershipByUserUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + membershipColumns + `
			  FROM memberships
			  WHERE user_uid = $1 AND status != 'rejected'
			  ORDER BY id DESC
			  LIMIT 1`
	m, err := scanMembership(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ApproveMembership активирует абонемент и выставляет окна действия.
// Возвращает количество изменённых строк.
func (s *Storage) ApproveMembership(ctx context.Context, id int, periodStart, periodEnd, gracePeriodEnd time.Time) (int, error) {
	const op = "storage.ApproveMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET status = 'active', period_start = $1, period_end = $2, grace_period_end = $3
			  WHERE id = $4 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, periodStart, periodEnd, gracePeriodEnd, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RejectMembership отклоняет ожидающий подтверждения абонемент.
func (s *Storage) RejectMembership(ctx context.Context, id int) (int, error) {
	const op = "storage.RejectMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET status = 'rejected'
			  WHERE id = $1 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ExtendMembership продлевает абонемент: новый конец окна, новый льготный
// период, статус снова active.
func (s *Storage) ExtendMembership(ctx context.Context, id int, periodEnd, gracePeriodEnd time.Time) (int, error) {
	const op = "storage.ExtendMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET status = 'active', period_end = $1, grace_period_end = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, periodEnd, gracePeriodEnd, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListMemberships возвращает список абонементов пользователя с пагинацией.
func (s *Storage) ListMemberships(ctx context.Context, username string, limit, offset int) ([]*models.Membership, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + membershipColumns + `
			  FROM memberships
			  WHERE username = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllMemberships возвращает список всех абонементов с пагинацией.
func (s *Storage) ListAllMemberships(ctx context.Context, limit, offset int) ([]*models.Membership, error) {
	const op = "storage.ListAllMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + membershipColumns + `
			  FROM memberships
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindMembershipsEnteringGracePeriod находит активные абонементы,
// срок действия которых уже наступил или прошёл.
func (s *Storage) FindMembershipsEnteringGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error) {
	const op = "storage.FindMembershipsEnteringGracePeriod"
	return s.findMembershipsForTransition(ctx, op, `
			SELECT m.id, u.email, m.username, m.plan_name, m.period_end, m.grace_period_end
			FROM memberships m
			JOIN users u ON u.uid = m.user_uid
			WHERE m.status = 'active' AND m.period_end <= $1`, now)
}

// FindMembershipsLeavingGracePeriod находит абонементы в льготном периоде,
// у которых льготный период уже закончился.
func (s *Storage) FindMembershipsLeavingGracePeriod(ctx context.Context, now time.Time) ([]*models.MembershipInfo, error) {
	const op = "storage.FindMembershipsLeavingGracePeriod"
	return s.findMembershipsForTransition(ctx, op, `
			SELECT m.id, u.email, m.username, m.plan_name, m.period_end, m.grace_period_end
			FROM memberships m
			JOIN users u ON u.uid = m.user_uid
			WHERE m.status = 'grace_period'
			  AND (m.grace_period_end IS NULL OR m.grace_period_end < $1)`, now)
}

func (s *Storage) findMembershipsForTransition(ctx context.Context, op, query string, now time.Time) ([]*models.MembershipInfo, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MembershipInfo
	for rows.Next() {
		var info models.MembershipInfo
		var graceEnd sql.NullTime
		if err = rows.Scan(&info.MembershipID, &info.Email, &info.Username,
			&info.PlanName, &info.PeriodEnd, &graceEnd); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if graceEnd.Valid {
			info.GracePeriodEnd = &graceEnd.Time
		}
		result = append(result, &info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkMembershipGracePeriod переводит абонемент в льготный период.
func (s *Storage) MarkMembershipGracePeriod(ctx context.Context, id int) error {
	const op = "storage.MarkMembershipGracePeriod"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET status = 'grace_period'
			  WHERE id = $1 AND status = 'active'`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkMembershipExpired переводит абонемент в статус expired.
func (s *Storage) MarkMembershipExpired(ctx context.Context, id int) error {
	const op = "storage.MarkMembershipExpired"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE memberships
			  SET status = 'expired'
			  WHERE id = $1 AND status = 'grace_period'`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
