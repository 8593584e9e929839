package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash, role string) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, username, email, passwordHash, role)
	require.NoError(t, err)
}

// CreateMembership создает тестовый абонемент с произвольным статусом и окнами
func (f *TestDataFactory) CreateMembership(t *testing.T, userUID, username, planName, planMode, status string,
	periodStart time.Time, periodEnd, gracePeriodEnd *time.Time, durationMonths int, hasAddon bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO memberships
		(user_uid, username, plan_name, plan_mode, status, period_start, period_end, grace_period_end, duration_months, has_addon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		userUID, username, planName, planMode, status, periodStart, periodEnd, gracePeriodEnd, durationMonths, hasAddon).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTrainerAccess создает тренерское окно доступа для абонемента
func (f *TestDataFactory) CreateTrainerAccess(t *testing.T, membershipID int, trainerUID *string, trainerAssigned bool,
	periodStart time.Time, periodEnd, gracePeriodEnd *time.Time, isIncluded, isAddon bool) {
	_, err := f.storage.DB.Exec(`INSERT INTO trainer_access
		(membership_id, trainer_uid, trainer_assigned, period_start, period_end, grace_period_end, is_included, is_addon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		membershipID, trainerUID, trainerAssigned, periodStart, periodEnd, gracePeriodEnd, isIncluded, isAddon)
	require.NoError(t, err)
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, userUID string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE uid = $1", userUID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyMembershipExists проверяет существование абонемента в БД
func (v *TestVerification) VerifyMembershipExists(t *testing.T, membershipID int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM memberships WHERE id = $1", membershipID).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyMembershipStatus проверяет статус абонемента
func (v *TestVerification) VerifyMembershipStatus(t *testing.T, membershipID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM memberships WHERE id = $1", membershipID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS messages CASCADE;
        DROP TABLE IF EXISTS trainer_access CASCADE;
        DROP TABLE IF EXISTS memberships CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            username TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE memberships (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users (uid),
            username TEXT NOT NULL,
            plan_name TEXT NOT NULL,
            plan_mode TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            period_start TIMESTAMPTZ NOT NULL,
            period_end TIMESTAMPTZ,
            grace_period_end TIMESTAMPTZ,
            duration_months INT NOT NULL,
            has_addon BOOLEAN NOT NULL DEFAULT false
        );

        CREATE TABLE trainer_access (
            membership_id INT PRIMARY KEY REFERENCES memberships (id),
            trainer_uid UUID REFERENCES users (uid),
            trainer_assigned BOOLEAN NOT NULL DEFAULT false,
            period_start TIMESTAMPTZ NOT NULL,
            period_end TIMESTAMPTZ,
            grace_period_end TIMESTAMPTZ,
            is_included BOOLEAN NOT NULL DEFAULT false,
            is_addon BOOLEAN NOT NULL DEFAULT false
        );

        CREATE TABLE messages (
            id SERIAL PRIMARY KEY,
            membership_id INT NOT NULL REFERENCES memberships (id),
            sender_uid UUID NOT NULL,
            trainer_uid UUID NOT NULL,
            body TEXT NOT NULL,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_memberships_user_uid ON memberships (user_uid);
        CREATE INDEX idx_memberships_status_period_end ON memberships (status, period_end);
        CREATE INDEX idx_messages_membership_id ON messages (membership_id);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
