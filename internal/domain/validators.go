package domain

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if an email address is valid.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePositiveAmount checks that an amount is positive (whole tokens or credits).
func ValidatePositiveAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	return nil
}

// ValidatePlanTier checks that the tier is one of the closed set.
func ValidatePlanTier(tier PlanTier) error {
	if !ValidPlanTier(tier) {
		return fmt.Errorf("unknown plan tier: %s", tier)
	}
	return nil
}

// ValidateSnapshot checks the non-negativity and bounds invariants on an
// account snapshot as read from the store.
func ValidateSnapshot(s AccountSnapshot) error {
	for _, c := range []struct {
		name  string
		value int64
	}{
		{"plan_tokens", s.PlanTokens},
		{"earned_tokens", s.EarnedTokens},
		{"purchased_tokens", s.PurchasedTokens},
		{"spent_tokens", s.SpentTokens},
		{"accrued_credits", s.AccruedCredits},
		{"withdrawn_credits", s.WithdrawnCredits},
	} {
		if c.value < 0 {
			return fmt.Errorf("%s is negative: %d", c.name, c.value)
		}
	}
	if s.SpentTokens > s.TotalTokens() {
		return fmt.Errorf("spent tokens %d exceed total tokens %d", s.SpentTokens, s.TotalTokens())
	}
	if s.WithdrawnCredits > s.AccruedCredits {
		return fmt.Errorf("withdrawn credits %d exceed accrued credits %d", s.WithdrawnCredits, s.AccruedCredits)
	}
	return nil
}
