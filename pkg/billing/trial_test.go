package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/payflow/pkg/billing"
)

func TestNewTrialPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		planID  string
		rawDays string
		want    billing.TrialPolicy
	}{
		{"valid", "price_trial", "14", billing.TrialPolicy{PlanID: "price_trial", Days: 14}},
		{"surrounding whitespace", " price_trial ", " 7 ", billing.TrialPolicy{PlanID: "price_trial", Days: 7}},
		{"zero days", "price_trial", "0", billing.TrialPolicy{}},
		{"negative days", "price_trial", "-3", billing.TrialPolicy{}},
		{"not a number", "price_trial", "two weeks", billing.TrialPolicy{}},
		{"letters only", "price_trial", "abc", billing.TrialPolicy{}},
		{"trailing unit", "price_trial", "14days", billing.TrialPolicy{PlanID: "price_trial", Days: 14}},
		{"fraction truncated", "price_trial", "14.5", billing.TrialPolicy{PlanID: "price_trial", Days: 14}},
		{"explicit plus sign", "price_trial", "+7", billing.TrialPolicy{PlanID: "price_trial", Days: 7}},
		{"negative with suffix", "price_trial", "-3days", billing.TrialPolicy{}},
		{"sign without digits", "price_trial", "+", billing.TrialPolicy{}},
		{"leading zeros", "price_trial", "007", billing.TrialPolicy{PlanID: "price_trial", Days: 7}},
		{"empty days", "price_trial", "", billing.TrialPolicy{}},
		{"empty plan", "", "14", billing.TrialPolicy{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := billing.NewTrialPolicy(tt.planID, tt.rawDays)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Days > 0, got.Enabled())
		})
	}
}

func TestTrialPolicyEvaluate(t *testing.T) {
	t.Parallel()

	policy := billing.NewTrialPolicy("price_trial", "14")

	ok, days := policy.Evaluate("price_trial")
	assert.True(t, ok)
	assert.Equal(t, 14, days)

	for _, id := range []string{"price_other", "PRICE_TRIAL", "price_trial ", ""} {
		ok, days = policy.Evaluate(id)
		assert.False(t, ok, id)
		assert.Zero(t, days, id)
	}

	ok, days = billing.TrialPolicy{}.Evaluate("")
	assert.False(t, ok)
	assert.Zero(t, days)
}
