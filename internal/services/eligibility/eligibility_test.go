package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-manager/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tptr(t time.Time) *time.Time { return &t }
func sptr(s string) *string       { return &s }

func membership(status models.MembershipStatus, periodEnd, graceEnd *time.Time) models.Membership {
	return models.Membership{
		ID:             1,
		PlanName:       "Premium",
		Status:         status,
		PeriodStart:    now.AddDate(0, -1, 0),
		PeriodEnd:      periodEnd,
		GracePeriodEnd: graceEnd,
		DurationMonths: 1,
	}
}

func trainerAccess(periodEnd, graceEnd *time.Time) models.TrainerAccess {
	return models.TrainerAccess{
		MembershipID:    1,
		TrainerUID:      sptr("0b26a57e-52a7-4a63-a7e0-6f2b0d9a4a11"),
		TrainerAssigned: true,
		PeriodStart:     now.AddDate(0, -1, 0),
		PeriodEnd:       periodEnd,
		GracePeriodEnd:  graceEnd,
	}
}

func TestCheckMembershipRenewal(t *testing.T) {
	tests := []struct {
		name         string
		m            models.Membership
		wantEligible bool
		wantGrace    bool
	}{
		{
			name:         "активный абонемент не продлевается",
			m:            membership(models.MembershipStatusActive, tptr(now.AddDate(0, 1, 0)), nil),
			wantEligible: false,
		},
		{
			name:         "льготный период даёт продление",
			m:            membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, -2)), tptr(now.AddDate(0, 0, 5))),
			wantEligible: true,
			wantGrace:    true,
		},
		{
			name:         "льготный период без даты окончания не продлевается",
			m:            membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, -2)), nil),
			wantEligible: false,
		},
		{
			name:         "истёкший льготный период не продлевается",
			m:            membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, -10)), tptr(now.AddDate(0, 0, -1))),
			wantEligible: false,
		},
		{
			name:         "ожидающий подтверждения не продлевается",
			m:            membership(models.MembershipStatusPending, nil, nil),
			wantEligible: false,
		},
		{
			name:         "окончательно истёкший не продлевается",
			m:            membership(models.MembershipStatusExpired, tptr(now.AddDate(0, -1, 0)), tptr(now.AddDate(0, 0, -20))),
			wantEligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckMembershipRenewal(tt.m, now)

			assert.Equal(t, tt.wantEligible, got.IsEligible)
			assert.Equal(t, tt.wantGrace, got.IsInGracePeriod)
			assert.NotEmpty(t, got.Reason)
			if tt.wantGrace {
				assert.NotNil(t, got.DaysRemaining)
			}
		})
	}
}

func TestCheckTrainerRenewal(t *testing.T) {
	activeUntil := tptr(now.AddDate(0, 2, 0))

	tests := []struct {
		name         string
		m            models.Membership
		t            models.TrainerAccess
		wantEligible bool
		wantReason   string
	}{
		{
			name:       "статус абонемента проверяется первым",
			m:          membership(models.MembershipStatusExpired, nil, nil),
			t:          models.TrainerAccess{MembershipID: 1},
			wantReason: "trainer renewal requires an active membership",
		},
		{
			name:       "без назначенного тренера продление недоступно",
			m:          membership(models.MembershipStatusActive, activeUntil, nil),
			t:          models.TrainerAccess{MembershipID: 1},
			wantReason: "no trainer is assigned",
		},
		{
			name:       "окно без даты окончания не продлевается",
			m:          membership(models.MembershipStatusActive, activeUntil, nil),
			t:          trainerAccess(nil, nil),
			wantReason: "no end date",
		},
		{
			name:       "действующее окно ещё не продлевается",
			m:          membership(models.MembershipStatusActive, activeUntil, nil),
			t:          trainerAccess(tptr(now.AddDate(0, 0, 10)), nil),
			wantReason: "has not expired yet",
		},
		{
			name:       "мало остатка действия абонемента",
			m:          membership(models.MembershipStatusActive, tptr(now.AddDate(0, 0, 20)), nil),
			t:          trainerAccess(tptr(now.AddDate(0, 0, -1)), nil),
			wantReason: "shorter than 30 days",
		},
		{
			name:         "истёкшее окно при достаточном остатке продлевается",
			m:            membership(models.MembershipStatusActive, tptr(now.AddDate(0, 0, 45)), nil),
			t:            trainerAccess(tptr(now.AddDate(0, 0, -3)), tptr(now.AddDate(0, 0, 4))),
			wantEligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckTrainerRenewal(tt.m, tt.t, now)

			assert.Equal(t, tt.wantEligible, got.IsEligible)
			assert.Contains(t, got.Reason, tt.wantReason)
		})
	}
}

// Остаток действия абонемента проверяется последним: при истёкшем статусе
// короткий остаток не упоминается в причине.
func TestCheckTrainerRenewalPreconditionOrder(t *testing.T) {
	m := membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, 1)), tptr(now.AddDate(0, 0, 8)))
	got := CheckTrainerRenewal(m, trainerAccess(tptr(now.AddDate(0, 0, -1)), nil), now)

	assert.False(t, got.IsEligible)
	assert.Contains(t, got.Reason, "trainer renewal requires an active membership")
	assert.NotContains(t, got.Reason, "30 days")
}

func TestCheckMessagingAccess(t *testing.T) {
	tests := []struct {
		name         string
		m            models.Membership
		t            models.TrainerAccess
		wantEligible bool
		wantGrace    bool
		wantReason   string
	}{
		{
			name:       "без назначенного тренера переписка недоступна",
			m:          membership(models.MembershipStatusActive, tptr(now.AddDate(0, 1, 0)), nil),
			t:          models.TrainerAccess{MembershipID: 1},
			wantReason: "no trainer is assigned",
		},
		{
			name:         "действующее окно даёт переписку",
			m:            membership(models.MembershipStatusActive, tptr(now.AddDate(0, 1, 0)), nil),
			t:            trainerAccess(tptr(now.AddDate(0, 0, 10)), nil),
			wantEligible: true,
		},
		{
			name:       "льготный период окна переписку не возвращает",
			m:          membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 1, 0)), nil),
			t:          trainerAccess(tptr(now.AddDate(0, 0, -2)), tptr(now.AddDate(0, 0, 5))),
			wantGrace:  true,
			wantReason: "grace period",
		},
		{
			name:       "истёкшее окно без льготного периода",
			m:          membership(models.MembershipStatusActive, tptr(now.AddDate(0, 1, 0)), nil),
			t:          trainerAccess(tptr(now.AddDate(0, 0, -10)), tptr(now.AddDate(0, 0, -1))),
			wantReason: "expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckMessagingAccess(tt.m, tt.t, now)

			assert.Equal(t, tt.wantEligible, got.IsEligible)
			assert.Equal(t, tt.wantGrace, got.IsInGracePeriod)
			assert.Contains(t, got.Reason, tt.wantReason)
		})
	}
}

// Для семейства тарифов Regular Monthly истечение самого абонемента отзывает
// переписку немедленно, даже если окно тренера ещё действует.
func TestCheckMessagingAccessRegularMonthlyOverride(t *testing.T) {
	plans := []string{"Regular Monthly", "Regular Boys", "regular girls", "REGULAR monthly gold"}
	for _, plan := range plans {
		m := membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, -1)), tptr(now.AddDate(0, 0, 6)))
		m.PlanName = plan

		got := CheckMessagingAccess(m, trainerAccess(tptr(now.AddDate(0, 1, 0)), nil), now)

		assert.False(t, got.IsEligible, "plan %q", plan)
		assert.False(t, got.IsInGracePeriod, "plan %q", plan)
		assert.Contains(t, got.Reason, "revoked without a grace period")
	}
}

// Тариф вне семейства Regular Monthly не попадает под немедленный отзыв.
func TestCheckMessagingAccessNoOverrideForOtherPlans(t *testing.T) {
	m := membership(models.MembershipStatusGracePeriod, tptr(now.AddDate(0, 0, -1)), tptr(now.AddDate(0, 0, 6)))
	m.PlanName = "Premium"

	got := CheckMessagingAccess(m, trainerAccess(tptr(now.AddDate(0, 1, 0)), nil), now)

	assert.True(t, got.IsEligible)
}

func TestSelectRenewalBadge(t *testing.T) {
	yes := models.Verdict{IsEligible: true}
	no := models.Verdict{}

	tests := []struct {
		name       string
		membership models.Verdict
		trainer    models.Verdict
		want       models.RenewalBadge
	}{
		{"оба продления: приоритет у абонемента", yes, yes, models.BadgeMembershipRenewal},
		{"только абонемент", yes, no, models.BadgeMembershipRenewal},
		{"только тренер", no, yes, models.BadgeTrainerRenewal},
		{"нечего продлевать", no, no, models.BadgeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectRenewalBadge(tt.membership, tt.trainer))
		})
	}
}
