package models

// Verdict — производный, нигде не хранимый результат проверки прав доступа.
// Вычисляется заново на каждый запрос. Reason всегда заполнен человекочитаемым
// объяснением, в том числе для положительного вердикта.
type Verdict struct {
	IsEligible      bool   `json:"is_eligible"`              // Итог проверки
	Reason          string `json:"reason"`                   // Объяснение итога
	DaysRemaining   *int   `json:"days_remaining,omitempty"` // Остаток дней льготного периода
	IsInGracePeriod bool   `json:"is_in_grace_period"`       // Находится ли окно в льготном периоде
}

// RenewalBadge — какой бейдж продления показывать пользователю.
// Одновременно показывается не более одного бейджа.
type RenewalBadge string

const (
	// BadgeMembershipRenewal — предложить продление абонемента.
	BadgeMembershipRenewal RenewalBadge = "membership_renewal"
	// BadgeTrainerRenewal — предложить продление доступа к тренеру.
	BadgeTrainerRenewal RenewalBadge = "trainer_renewal"
	// BadgeNone — продление не предлагается.
	BadgeNone RenewalBadge = "none"
)

// StatusReport объединяет все вердикты по текущему абонементу пользователя
// для отдачи одним ответом.
type StatusReport struct {
	Membership        *Membership    `json:"membership"`
	TrainerAccess     *TrainerAccess `json:"trainer_access,omitempty"`
	MembershipRenewal Verdict        `json:"membership_renewal"`
	TrainerRenewal    Verdict        `json:"trainer_renewal"`
	Messaging         Verdict        `json:"messaging"`
	Badge             RenewalBadge   `json:"badge"`
}
