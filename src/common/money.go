package common

import "math"

// CommissionRate is the platform's cut of every paid ticket.
const CommissionRate = 0.13

// ToMinorUnits converts a major-unit amount to the gateway's integer minor
// unit, rounding half up. The settlement cross-check compares against this
// exact conversion, so every boundary uses it.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

// SplitCommission returns the platform's commission and the host's share of
// a ticket price.
func SplitCommission(price float64) (commission float64, hostEarnings float64) {
	commission = price * CommissionRate
	hostEarnings = price - commission
	return commission, hostEarnings
}
