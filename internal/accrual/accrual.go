// Package accrual holds the pure yield arithmetic of stake positions.
package accrual

import (
	"time"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept by the ledger.
const Precision int32 = 8

const day = 24 * time.Hour

// apy is a percentage and a year has 365 days
var yearPercentDays = decimal.NewFromInt(36500)

var hundred = decimal.NewFromInt(100)

// Truncate drops digits beyond Precision, never rounding up.
func Truncate(amount decimal.Decimal) decimal.Decimal {
	return amount.Truncate(Precision)
}

// DaysBetween returns the number of whole days elapsed from from to to.
func DaysBetween(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	return int64(to.Sub(from) / day)
}

// AccruedSinceStake is amount * apy/365/100 * days truncated to Precision.
func AccruedSinceStake(amount, apy decimal.Decimal, days int64) decimal.Decimal {
	if days <= 0 || !amount.IsPositive() || !apy.IsPositive() {
		return decimal.Zero
	}

	numerator := amount.Mul(apy).Mul(decimal.NewFromInt(days))
	// QuoRem truncates the quotient at the requested precision exactly
	quotient, _ := numerator.QuoRem(yearPercentDays, Precision)
	return quotient
}

// Pending is the yield accrued since stake that has not been claimed yet.
func Pending(amount, apy, rewardsEarned decimal.Decimal, stakeDate, now time.Time) decimal.Decimal {
	accrued := AccruedSinceStake(amount, apy, DaysBetween(stakeDate, now))
	return positiveOrZero(accrued.Sub(rewardsEarned))
}

// DailyDelta is the yield the daily driver still has to materialize. Yield
// already recorded or already claimed is never recorded again.
func DailyDelta(accrued, rewardsAccrued, rewardsEarned decimal.Decimal) decimal.Decimal {
	return positiveOrZero(accrued.Sub(decimal.Max(rewardsAccrued, rewardsEarned)))
}

// Penalty is the early withdrawal charge on amount, truncated to Precision.
func Penalty(amount, penaltyPercent decimal.Decimal) decimal.Decimal {
	if !penaltyPercent.IsPositive() {
		return decimal.Zero
	}
	quotient, _ := amount.Mul(penaltyPercent).QuoRem(hundred, Precision)
	return quotient
}

// Percentage returns percent of amount truncated to Precision.
func Percentage(amount, percent decimal.Decimal) decimal.Decimal {
	quotient, _ := amount.Mul(percent).QuoRem(hundred, Precision)
	return quotient
}

// DayKey identifies the calendar day of t in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func positiveOrZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsPositive() {
		return amount
	}
	return decimal.Zero
}
