package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewTransactionPostedEvent creates the standard wallet event for a ledger entry.
func NewTransactionPostedEvent(tx *Transaction) OutboxDraft {
	payload, _ := json.Marshal(tx)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateWallet,
		AggregateID:   tx.AccountID.String(),
		EventType:     EventTransactionPosted,
		PartitionKey:  tx.AccountID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewAccountCreatedEvent creates an account lifecycle event.
func NewAccountCreatedEvent(accountID uuid.UUID, email, role string) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"account_id": accountID.String(),
		"email":      email,
		"role":       role,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateAccount,
		AggregateID:   accountID.String(),
		EventType:     EventAccountCreated,
		PartitionKey:  accountID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewPlanActivatedEvent records a plan activation with its token grant.
func NewPlanActivatedEvent(accountID uuid.UUID, tier PlanTier, grant int64) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"account_id": accountID.String(),
		"plan":       tier,
		"grant":      grant,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePlan,
		AggregateID:   accountID.String(),
		EventType:     EventPlanActivated,
		PartitionKey:  accountID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
