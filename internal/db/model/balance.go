package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceDocument struct {
	OwnerID   string          `bson:"_id"`
	Balance   decimal.Decimal `bson:"balance"`
	UpdatedAt time.Time       `bson:"updated_at"`
}
