// Package planperiod вычисляет окна доступа к тренеру по тарифу абонемента:
// включённые в тариф дни/месяцы и докупленные месяцы-дополнения.
// Все функции чистые и детерминированные, без I/O.
package planperiod

import (
	"strings"
	"time"
)

// Spec — входная конфигурация расчёта: тариф и выбор дополнения.
// Используется один раз при создании абонемента или назначении тренера,
// результат сохраняется внешним слоем хранения.
type Spec struct {
	PlanName       string // Название тарифа
	PlanMode       string // Режим тарифа: monthly, quarterly, yearly
	HasAddon       bool   // Куплено ли дополнение "тренер"
	DurationMonths int    // Длительность родительского абонемента в месяцах
}

// TrainerPeriod — рассчитанное окно доступа к тренеру.
type TrainerPeriod struct {
	PeriodStart time.Time // Начало окна (совпадает с началом абонемента)
	PeriodEnd   time.Time // Окончание окна
	IsIncluded  bool      // Есть ли включённая в тариф часть
	IsAddon     bool      // Есть ли докупленная часть
}

// ComputeTrainerPeriod вычисляет окно доступа к тренеру от даты начала
// абонемента по таблице тарифов:
//
//	basic:   0 включённых дней; дополнение добавляет 1 месяц;
//	premium: 7 включённых дней (пробный доступ) всегда; дополнение — ещё 1 месяц;
//	elite:   1 включённый месяц всегда; дополнение — ещё 1 месяц;
//	прочие ("Regular ..."): 0 включённых; дополнение добавляет DurationMonths
//	         месяцев (минимум 1), то есть весь срок родительского абонемента.
//
// Порядок арифметики фиксирован: сначала прибавляются календарные дни,
// затем месяцы к результату. День-потом-месяц и месяц-потом-день дают разные
// даты при переменной длине месяцев, поэтому порядок менять нельзя.
func ComputeTrainerPeriod(membershipStart time.Time, spec Spec) TrainerPeriod {
	var includedDays, includedMonths, addonMonths int
	var isIncluded, isAddon bool

	switch {
	case matchTier(spec.PlanName, "basic"):
		if spec.HasAddon {
			addonMonths = 1
			isAddon = true
		}
	case matchTier(spec.PlanName, "premium"):
		includedDays = 7
		isIncluded = true
		if spec.HasAddon {
			addonMonths = 1
			isAddon = true
		}
	case matchTier(spec.PlanName, "elite"):
		includedMonths = 1
		isIncluded = true
		if spec.HasAddon {
			addonMonths = 1
			isAddon = true
		}
	default:
		if spec.HasAddon {
			addonMonths = AddonMonths(spec.PlanName, spec.DurationMonths)
			isAddon = true
		}
	}

	end := membershipStart.AddDate(0, 0, includedDays)
	end = end.AddDate(0, includedMonths+addonMonths, 0)

	return TrainerPeriod{
		PeriodStart: membershipStart,
		PeriodEnd:   end,
		IsIncluded:  isIncluded,
		IsAddon:     isAddon,
	}
}

// AddonMonths возвращает длительность одного дополнения "тренер" в месяцах
// для тарифа: 1 месяц для basic/premium/elite, срок родительского абонемента
// для прочих тарифов (минимум 1 месяц при незаданной длительности).
func AddonMonths(planName string, durationMonths int) int {
	if matchTier(planName, "basic") || matchTier(planName, "premium") || matchTier(planName, "elite") {
		return 1
	}
	if durationMonths <= 0 {
		return 1
	}
	return durationMonths
}

func matchTier(planName, tier string) bool {
	return strings.Contains(strings.ToLower(planName), tier)
}
