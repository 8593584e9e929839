package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// UpsertTrainerAccess создаёт или заменяет тренерское окно доступа абонемента.
func (s *Storage) UpsertTrainerAccess(ctx context.Context, t models.TrainerAccess) error {
	const op = "storage.UpsertTrainerAccess"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trainer_access (membership_id, trainer_uid, trainer_assigned,
			      period_start, period_end, grace_period_end, is_included, is_addon)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (membership_id) DO UPDATE
			  SET trainer_uid = EXCLUDED.trainer_uid,
			      trainer_assigned = EXCLUDED.trainer_assigned,
			      period_start = EXCLUDED.period_start,
			      period_end = EXCLUDED.period_end,
			      grace_period_end = EXCLUDED.grace_period_end,
			      is_included = EXCLUDED.is_included,
			      is_addon = EXCLUDED.is_addon`
	_, err := s.DB.ExecContext(ctx, query,
		t.MembershipID, t.TrainerUID, t.TrainerAssigned,
		t.PeriodStart, t.PeriodEnd, t.GracePeriodEnd, t.IsIncluded, t.IsAddon)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTrainerAccess возвращает тренерское окно доступа абонемента.
// Если тренер не назначался, возвращается пустое окно с TrainerAssigned=false.
func (s *Storage) GetTrainerAccess(ctx context.Context, membershipID int) (*models.TrainerAccess, error) {
	const op = "storage.GetTrainerAccess"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT membership_id, trainer_uid, trainer_assigned,
			      period_start, period_end, grace_period_end, is_included, is_addon
			  FROM trainer_access
			  WHERE membership_id = $1`
	row := s.DB.QueryRowContext(ctx, query, membershipID)

	var t models.TrainerAccess
	var trainerUID sql.NullString
	var periodEnd, graceEnd sql.NullTime
	if err := row.Scan(&t.MembershipID, &trainerUID, &t.TrainerAssigned,
		&t.PeriodStart, &periodEnd, &graceEnd, &t.IsIncluded, &t.IsAddon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.TrainerAccess{MembershipID: membershipID}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if trainerUID.Valid {
		t.TrainerUID = &trainerUID.String
	}
	if periodEnd.Valid {
		t.PeriodEnd = &periodEnd.Time
	}
	if graceEnd.Valid {
		t.GracePeriodEnd = &graceEnd.Time
	}
	return &t, nil
}

// ExtendTrainerAccess продлевает тренерское окно до новой даты окончания.
func (s *Storage) ExtendTrainerAccess(ctx context.Context, membershipID int, periodEnd, gracePeriodEnd time.Time) (int, error) {
	const op = "storage.ExtendTrainerAccess"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trainer_access
			  SET period_end = $1, grace_period_end = $2, is_addon = true
			  WHERE membership_id = $3 AND trainer_assigned = true`
	result, err := s.DB.ExecContext(ctx, query, periodEnd, gracePeriodEnd, membershipID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CreateMessage сохраняет сообщение чата и возвращает его ID.
func (s *Storage) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	const op = "storage.CreateMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO messages (membership_id, sender_uid, trainer_uid, body, sent_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		msg.MembershipID, msg.SenderUID, msg.TrainerUID, msg.Body, msg.SentAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMessages возвращает сообщения абонемента с пагинацией.
func (s *Storage) ListMessages(ctx context.Context, membershipID, limit, offset int) ([]*models.Message, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, membership_id, sender_uid, trainer_uid, body, sent_at
			  FROM messages
			  WHERE membership_id = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, membershipID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var item models.Message
		if err = rows.Scan(&item.ID, &item.MembershipID, &item.SenderUID,
			&item.TrainerUID, &item.Body, &item.SentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
