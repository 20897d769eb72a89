package queue

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PositionEventType string

const (
	PositionStakedEvent   PositionEventType = "staked"
	PositionClaimedEvent  PositionEventType = "claimed"
	PositionUnstakedEvent PositionEventType = "unstaked"
	PositionAccruedEvent  PositionEventType = "accrued"
)

// RoutingKey is the topic the event is published under.
func (t PositionEventType) RoutingKey() string {
	return "position." + string(t)
}

// PositionEvent describes a committed change of a stake position.
type PositionEvent struct {
	EventType  PositionEventType `json:"event_type"`
	RequestID  string            `json:"request_id,omitempty"`
	PositionID string            `json:"position_id"`
	OwnerID    string            `json:"owner_id"`
	PoolID     string            `json:"pool_id"`
	Amount     decimal.Decimal   `json:"amount"`
	Penalty    decimal.Decimal   `json:"penalty"`
	Compounded bool              `json:"compounded,omitempty"`
	Closed     bool              `json:"closed,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// RewardEarnedEvent is an earned loyalty reward eligible for auto staking.
type RewardEarnedEvent struct {
	RequestID string          `json:"request_id"`
	OwnerID   string          `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
}

func (e *RewardEarnedEvent) Validate() error {
	if e.RequestID == "" {
		return fmt.Errorf("missing request id")
	}
	if e.OwnerID == "" {
		return fmt.Errorf("missing owner id")
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("reward amount must be positive, got %s", e.Amount)
	}
	return nil
}
