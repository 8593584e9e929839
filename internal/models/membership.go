// Package models содержит доменные структуры приложения: абонементы,
// доступ к тренеру, пользователей и производные вердикты по правам доступа.
// Все даты хранятся в time.Time, опциональные даты — указателями (nil означает
// отсутствие значения, например отсутствие льготного периода).
package models

import "time"

// MembershipStatus описывает статус абонемента в его жизненном цикле.
type MembershipStatus string

const (
	// MembershipStatusPending — абонемент куплен, но ещё не подтверждён администратором.
	MembershipStatusPending MembershipStatus = "pending"
	// MembershipStatusActive — абонемент действует.
	MembershipStatusActive MembershipStatus = "active"
	// MembershipStatusGracePeriod — срок действия истёк, идёт льготный период для продления.
	MembershipStatusGracePeriod MembershipStatus = "grace_period"
	// MembershipStatusExpired — срок действия и льготный период истекли.
	MembershipStatusExpired MembershipStatus = "expired"
	// MembershipStatusRejected — покупка отклонена администратором.
	MembershipStatusRejected MembershipStatus = "rejected"
)

// Membership представляет абонемент пользователя в зале.
// PeriodEnd и GracePeriodEnd равны nil, пока абонемент не подтверждён.
// Инвариант: GracePeriodEnd, если задан, всегда >= PeriodEnd.
type Membership struct {
	ID             int              // Идентификатор абонемента
	UserUID        string           // UID владельца
	Username       string           // Имя владельца
	PlanName       string           // Название тарифа: Basic, Premium, Elite, Regular Monthly ...
	PlanMode       string           // Режим тарифа: monthly, quarterly, yearly
	Status         MembershipStatus // Текущий статус
	PeriodStart    time.Time        // Дата начала действия
	PeriodEnd      *time.Time       // Дата окончания действия
	GracePeriodEnd *time.Time       // Дата окончания льготного периода
	DurationMonths int              // Длительность тарифа в месяцах
	HasAddon       bool             // Куплено ли дополнение "тренер"
}

// DummyMembership используется для приёма данных из JSON-запроса на покупку
// абонемента, прежде чем конвертировать их в Membership.
type DummyMembership struct {
	PlanName       string `json:"plan_name" validate:"required"`                                 // Название тарифа
	PlanMode       string `json:"plan_mode" validate:"required,oneof=monthly quarterly yearly"`  // Режим тарифа
	DurationMonths int    `json:"duration_months" validate:"required,gt=0"`                      // Длительность (>0 месяцев)
	HasAddon       bool   `json:"has_addon"`                                                     // Дополнение "тренер"
}

// MembershipInfo агрегирует данные абонемента и владельца для уведомлений.
type MembershipInfo struct {
	MembershipID   int
	Email          string
	Username       string
	PlanName       string
	PeriodEnd      time.Time
	GracePeriodEnd *time.Time
}
