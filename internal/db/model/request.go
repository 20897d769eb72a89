package model

import (
	"time"

	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/shopspring/decimal"
)

// RequestDocument remembers the outcome of a committed staking operation so
// that a retried request with the same id returns it instead of re-applying.
type RequestDocument struct {
	RequestID  string          `bson:"_id"`
	Operation  types.Operation `bson:"operation"`
	OwnerID    string          `bson:"owner_id"`
	PositionID string          `bson:"position_id"`
	Amount     decimal.Decimal `bson:"amount"`
	Penalty    decimal.Decimal `bson:"penalty"`
	Net        decimal.Decimal `bson:"net"`
	Compounded bool            `bson:"compounded"`
	Closed     bool            `bson:"closed"`
	CreatedAt  time.Time       `bson:"created_at"`
}
