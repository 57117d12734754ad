package risk

import (
	"errors"
	"fmt"

	"binopt/trade"
)

// ErrInvalidConfig marks out-of-range numeric input to sizing or to a
// config setter. Callers match it with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// Stake computes the amount to risk on the next trade as a fixed
// fraction of the current balance.
//
// A non-positive balance is a contract violation: the session must have
// stopped before sizing is attempted on an unsizeable account.
func Stake(balance, riskPercent float64) (float64, error) {
	if riskPercent <= 0 {
		return 0, fmt.Errorf("%w: risk percent %.2f must be > 0", ErrInvalidConfig, riskPercent)
	}
	if balance <= 0 {
		return 0, fmt.Errorf("%w: balance %.2f must be > 0", ErrInvalidConfig, balance)
	}
	return balance * riskPercent / 100, nil
}

// Settle returns the account balance after a trade resolves.
//
//	WIN:  stake stays on the account, payout is added on top
//	LOSS: stake is forfeited
//	PUSH: stake is refunded in full
func Settle(balanceBefore, stake, payoutPercent float64, result trade.Result) float64 {
	switch result {
	case trade.Win:
		return balanceBefore + stake*payoutPercent/100
	case trade.Loss:
		return balanceBefore - stake
	default:
		return balanceBefore
	}
}
