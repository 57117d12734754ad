package trade

import "time"

// Result is the settled outcome of a single binary-options trade.
// The set is closed: a trade either wins, loses, or is refunded (push).
type Result string

const (
	Win  Result = "WIN"
	Loss Result = "LOSS"
	Push Result = "PUSH"
)

// Valid reports whether r is one of the three settled outcomes.
func (r Result) Valid() bool {
	switch r {
	case Win, Loss, Push:
		return true
	}
	return false
}

// Trade is an immutable record of one settled outcome. It captures the
// payout rate that applied when it settled, so later reconfiguration
// never rewrites history.
type Trade struct {
	Seq           int     // position in session history, 0-based
	Result        Result
	Stake         float64 // amount risked, > 0
	PayoutPercent float64 // payout rate at settlement time
	BalanceBefore float64
	BalanceAfter  float64
	PnL           float64 // BalanceAfter - BalanceBefore
	Time          time.Time
}
