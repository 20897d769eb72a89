package types

// Enum values for Position State
type PositionState string

const (
	StateActive PositionState = "ACTIVE"
	StateClosed PositionState = "CLOSED"
)

func (s PositionState) String() string {
	return string(s)
}

type RewardType string

const (
	RewardTypeDaily RewardType = "daily"
	RewardTypeClaim RewardType = "claim"
	// RewardTypeAdjustment takes back daily yield recorded on principal that
	// was withdrawn before the claim. Its amount is negative.
	RewardTypeAdjustment RewardType = "adjustment"
)

func (t RewardType) String() string {
	return string(t)
}

type Operation string

const (
	OperationStake   Operation = "STAKE"
	OperationClaim   Operation = "CLAIM"
	OperationUnstake Operation = "UNSTAKE"
	OperationAccrual Operation = "ACCRUAL"
)

func (o Operation) String() string {
	return string(o)
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) String() string {
	return string(r)
}

func (r RiskLevel) Valid() bool {
	switch r {
	case "", RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}
