// Package eligibility содержит правила доступа по абонементам и тренерским
// окнам: можно ли продлить абонемент, можно ли продлить доступ к тренеру,
// доступна ли переписка с тренером и какой бейдж продления показать.
//
// Все функции чистые и тотальные: работают над снимком данных, не читают часы
// и никогда не возвращают ошибок — отрицательный результат всегда выражается
// вердиктом с объяснением причины.
package eligibility

import (
	"fmt"
	"regexp"
	"time"

	"github.com/magabrotheeeer/gym-manager/internal/lib/timewindow"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// MinTrainerRenewalPlanDays — минимальный остаток действия абонемента,
// при котором имеет смысл продлевать доступ к тренеру.
const MinTrainerRenewalPlanDays = 30

// Семейство тарифов "Regular Monthly": regular + monthly/boys/girls в названии.
var regularMonthlyPattern = regexp.MustCompile(`(?i)regular.*(monthly|boys|girls)`)

// CheckMembershipRenewal решает, можно ли продлить абонемент.
//
// Продление доступно только из статуса grace_period при непустом
// GracePeriodEnd и не истекшем льготном периоде. Любой другой статус даёт
// отрицательный вердикт с указанием фактического статуса.
func CheckMembershipRenewal(m models.Membership, now time.Time) models.Verdict {
	if m.Status != models.MembershipStatusGracePeriod {
		return models.Verdict{
			Reason: fmt.Sprintf("membership status is %q, renewal is offered only during the grace period", m.Status),
		}
	}
	if m.GracePeriodEnd == nil {
		return models.Verdict{Reason: "membership has no grace period configured"}
	}

	st := timewindow.Classify(m.PeriodEnd, m.GracePeriodEnd, now)
	if !st.IsInGracePeriod {
		return models.Verdict{Reason: "grace period has already elapsed"}
	}
	return models.Verdict{
		IsEligible:      true,
		IsInGracePeriod: true,
		DaysRemaining:   st.DaysRemaining,
		Reason:          "membership is in its grace period and can be renewed",
	}
}

// CheckTrainerRenewal решает, можно ли продлить доступ к тренеру.
//
// Предусловия проверяются строго в этом порядке приоритета: статус абонемента
// active -> тренер назначен -> окно доступа имеет дату окончания -> окно
// истекло -> остаток действия абонемента не меньше MinTrainerRenewalPlanDays.
// Льготный период окна не блокирует продление, а только аннотирует вердикт.
func CheckTrainerRenewal(m models.Membership, t models.TrainerAccess, now time.Time) models.Verdict {
	if m.Status != models.MembershipStatusActive {
		return models.Verdict{
			Reason: fmt.Sprintf("membership status is %q, trainer renewal requires an active membership", m.Status),
		}
	}
	if !t.TrainerAssigned {
		return models.Verdict{Reason: "no trainer is assigned to this membership"}
	}
	if t.PeriodEnd == nil {
		return models.Verdict{Reason: "trainer access has no end date"}
	}
	if t.PeriodEnd.After(now) {
		return models.Verdict{Reason: "trainer access period has not expired yet"}
	}
	if m.PeriodEnd == nil || m.PeriodEnd.Sub(now) < MinTrainerRenewalPlanDays*24*time.Hour {
		return models.Verdict{
			Reason: fmt.Sprintf("remaining membership period is shorter than %d days", MinTrainerRenewalPlanDays),
		}
	}

	st := timewindow.Classify(t.PeriodEnd, t.GracePeriodEnd, now)
	return models.Verdict{
		IsEligible:      true,
		IsInGracePeriod: st.IsInGracePeriod,
		DaysRemaining:   st.DaysRemaining,
		Reason:          "trainer access has expired and can be renewed",
	}
}

// CheckMessagingAccess решает, доступна ли переписка с тренером.
//
// Переписка доступна только пока окно доступа к тренеру строго действует:
// льготный период переписку не возвращает. Для тарифов семейства
// "Regular Monthly" с истекшим сроком самого абонемента доступ отзывается
// немедленно и без льготного периода, поверх общей логики.
func CheckMessagingAccess(m models.Membership, t models.TrainerAccess, now time.Time) models.Verdict {
	if !t.TrainerAssigned {
		return models.Verdict{Reason: "no trainer is assigned to this membership"}
	}

	if regularMonthlyPattern.MatchString(m.PlanName) && m.PeriodEnd != nil && !m.PeriodEnd.After(now) {
		return models.Verdict{
			Reason: "regular monthly membership has ended, trainer access is revoked without a grace period",
		}
	}

	if t.PeriodEnd != nil && t.PeriodEnd.After(now) {
		return models.Verdict{IsEligible: true, Reason: "trainer access is active"}
	}

	st := timewindow.Classify(t.PeriodEnd, t.GracePeriodEnd, now)
	if st.IsInGracePeriod {
		return models.Verdict{
			IsInGracePeriod: true,
			DaysRemaining:   st.DaysRemaining,
			Reason:          "trainer access is in its grace period, messaging is unavailable until renewal",
		}
	}
	return models.Verdict{Reason: "trainer access has expired"}
}

// SelectRenewalBadge выбирает бейдж продления по двум вердиктам.
// Продление абонемента приоритетнее продления тренера: просроченный абонемент
// нужно продлить раньше, чем предлагать тренерское продление.
func SelectRenewalBadge(membership, trainer models.Verdict) models.RenewalBadge {
	switch {
	case membership.IsEligible:
		return models.BadgeMembershipRenewal
	case trainer.IsEligible:
		return models.BadgeTrainerRenewal
	default:
		return models.BadgeNone
	}
}
