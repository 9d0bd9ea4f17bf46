package billing

import (
	"strconv"
	"strings"
)

// TrialPolicy designates a single plan as trial-eligible.
// The zero value disables trials.
type TrialPolicy struct {
	PlanID string
	Days   int
}

// NewTrialPolicy builds a policy from raw configuration values.
// The trial length is the leading integer of rawDays, so "14days" and "14.5"
// both mean 14. A value without leading digits or not positive disables the
// trial instead of producing an error.
func NewTrialPolicy(planID, rawDays string) TrialPolicy {
	planID = strings.TrimSpace(planID)
	days, err := strconv.Atoi(leadingInteger(strings.TrimSpace(rawDays)))
	if err != nil || days <= 0 || planID == "" {
		return TrialPolicy{}
	}
	return TrialPolicy{PlanID: planID, Days: days}
}

// leadingInteger returns an optional sign followed by the leading run of digits.
func leadingInteger(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}

// Enabled reports whether any plan is trial-eligible.
func (p TrialPolicy) Enabled() bool {
	return p.PlanID != "" && p.Days > 0
}

// Evaluate reports whether planID qualifies for a trial and the trial length in days.
// Days is 0 when the plan is not eligible.
func (p TrialPolicy) Evaluate(planID string) (bool, int) {
	if !p.Enabled() || planID != p.PlanID {
		return false, 0
	}
	return true, p.Days
}
