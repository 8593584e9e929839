// Package timewindow классифицирует временные окна доступа: действует ли окно,
// истекло ли оно и находится ли в льготном периоде. Все функции чистые и
// тотальные: любой набор входных данных, включая nil-даты, даёт результат без
// ошибок. Текущий момент всегда передаётся параметром, пакет не читает часы.
package timewindow

import (
	"math"
	"time"
)

// State — результат классификации окна на момент now.
// Ровно один из флагов IsActive и IsExpired истинен.
// IsInGracePeriod может быть истинным только вместе с IsExpired.
type State struct {
	IsActive        bool // Окно ещё действует (periodEnd > now)
	IsExpired       bool // Окно истекло (periodEnd <= now или не задано)
	IsInGracePeriod bool // Окно истекло, но льготный период ещё идёт
	DaysRemaining   *int // Остаток дней льготного периода, только в льготном периоде
}

// Classify классифицирует окно с границами periodEnd и gracePeriodEnd
// относительно момента now.
//
// Отсутствующий periodEnd трактуется как истекшее окно без льготного периода.
// periodEnd, равный now, считается истекшим: граница принадлежит "истёк",
// а не "действует".
func Classify(periodEnd, gracePeriodEnd *time.Time, now time.Time) State {
	if periodEnd == nil {
		return State{IsExpired: true}
	}

	st := State{
		IsActive:  periodEnd.After(now),
		IsExpired: !periodEnd.After(now),
	}

	if st.IsExpired && gracePeriodEnd != nil && !now.After(*gracePeriodEnd) {
		st.IsInGracePeriod = true
		days := int(math.Ceil(gracePeriodEnd.Sub(now).Hours() / 24))
		if days < 0 {
			days = 0
		}
		st.DaysRemaining = &days
	}
	return st
}
