package economy

import (
	"fmt"
	"time"

	"github.com/prohub/platform/internal/domain"
)

// ValidateWithdrawal checks whether a cashback withdrawal of the requested
// amount is permitted. Checks run in order and the first failure wins:
// tenure, monthly ceiling, available balance.
func ValidateWithdrawal(snap domain.AccountSnapshot, amount int64, now time.Time) Decision {
	if MonthsActive(snap.PlanStartedAt, now) < minTenureMonths {
		return deny("withdrawal unavailable before six months of active plan", 0)
	}

	monthlyLimit := MonthlyWithdrawalLimit(snap)
	if amount > monthlyLimit {
		return deny(fmt.Sprintf("requested amount %d exceeds monthly withdrawal limit %d", amount, monthlyLimit), monthlyLimit)
	}

	available := snap.AvailableCredits()
	if amount > available {
		return deny(fmt.Sprintf("requested amount %d exceeds available withdrawal balance %d", amount, available), available)
	}

	return allow(fmt.Sprintf("withdrawal of %d credits approved", amount), available-amount)
}
