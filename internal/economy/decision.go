// Package economy implements the token-economy engine: cashback accrual,
// withdrawal and consumption authorization. Every function is a pure
// computation over an AccountSnapshot; denials are returned decision values,
// never errors, and nothing here touches storage or logs.
package economy

// Decision is the result of a numeric authorization check.
// NewBalance is set only when the request is allowed.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	Message    string `json:"message"`
	NewBalance *int64 `json:"new_balance,omitempty"`
	Limit      int64  `json:"limit,omitempty"`
}

// allow builds an allowed decision with the projected balance.
func allow(message string, newBalance int64) Decision {
	return Decision{Allowed: true, Message: message, NewBalance: &newBalance}
}

// deny builds a denied decision citing the violated ceiling.
func deny(message string, limit int64) Decision {
	return Decision{Allowed: false, Message: message, Limit: limit}
}

// roundDiv divides n by d rounding half up. All rate arithmetic in this
// package is integer-scaled; inputs are never negative.
func roundDiv(n, d int64) int64 {
	return (n + d/2) / d
}
