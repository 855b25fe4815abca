package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventAccountCreated    EventType = "hub.account.created"
	EventTransactionPosted EventType = "hub.wallet.transaction.posted"
	EventPlanActivated     EventType = "hub.plan.activated"
	EventDocumentsVerified EventType = "hub.account.documents.verified"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateAccount AggregateType = "account"
	AggregateWallet  AggregateType = "wallet"
	AggregatePlan    AggregateType = "plan"
)

// OutboxDraft is the payload written to the event_outbox table.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
