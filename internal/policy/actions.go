// Package policy holds the static eligibility rules for platform actions.
// These gate whether an account may attempt an operation at all; the numeric
// feasibility of the amount involved is the economy package's job, and both
// must pass for an end-to-end request to succeed.
package policy

// Role identifies the account type requesting an action.
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

// Action enumerates the gated platform actions.
type Action string

const (
	ActionBuyTokens          Action = "buy_tokens"
	ActionHireServices       Action = "hire_services"
	ActionSubscribePlan      Action = "subscribe_plan"
	ActionWithdrawCashback   Action = "withdraw_cashback"
	ActionWorkAsProfessional Action = "work_as_professional"
)

// GateDecision is the result of an eligibility check.
type GateDecision struct {
	Allowed           bool   `json:"allowed"`
	Reason            string `json:"reason,omitempty"`
	RequiresDocuments bool   `json:"requires_documents"`
}

// Authorize maps (role, action, document-verification flag) to an allow/deny
// decision. This is a decision table over account attributes, not a function
// of the account snapshot.
func Authorize(role Role, action Action, verifiedDocs bool) GateDecision {
	switch action {
	case ActionBuyTokens:
		return GateDecision{Allowed: true}

	case ActionHireServices:
		if !verifiedDocs {
			return GateDecision{
				Reason:            "document verification is required before hiring services",
				RequiresDocuments: true,
			}
		}
		return GateDecision{Allowed: true}

	case ActionSubscribePlan:
		// Subscribing is always permitted, but cashback and withdrawal stay
		// inactive until documents are verified; the advisory reason lets the
		// caller surface that up front.
		d := GateDecision{Allowed: true, RequiresDocuments: true}
		if !verifiedDocs {
			d.Reason = "plan cashback and withdrawal will not activate until documents are verified"
		}
		return d

	case ActionWithdrawCashback:
		if !verifiedDocs {
			return GateDecision{
				Reason:            "document verification is required before withdrawing cashback",
				RequiresDocuments: true,
			}
		}
		return GateDecision{Allowed: true}

	case ActionWorkAsProfessional:
		// Role mismatch is reported before the document requirement.
		if role != RoleProfessional {
			return GateDecision{Reason: "only professional accounts can work as a professional"}
		}
		if !verifiedDocs {
			return GateDecision{
				Reason:            "document verification is required before working as a professional",
				RequiresDocuments: true,
			}
		}
		return GateDecision{Allowed: true}

	default:
		return GateDecision{Reason: "unrecognized action"}
	}
}
