package economy

import (
	"fmt"

	"github.com/prohub/platform/internal/domain"
)

// ValidateConsumption checks whether a token spend of the requested amount is
// permitted against the spendable balance (plan + earned + purchased − spent).
// An over-limit request is denied outright, never truncated.
func ValidateConsumption(snap domain.AccountSnapshot, amount int64) Decision {
	available := snap.AvailableTokens()
	if amount > available {
		return deny(fmt.Sprintf("insufficient balance: requested %d, available %d", amount, available), available)
	}
	return allow(fmt.Sprintf("consumption of %d tokens approved", amount), available-amount)
}
