package risk

import "binopt/trade"

// StopReason identifies which circuit breaker fired.
type StopReason string

const (
	StopNone              StopReason = ""
	StopDrawdownLimit     StopReason = "DRAWDOWN_LIMIT"
	StopConsecutiveLosses StopReason = "CONSECUTIVE_LOSSES"
)

// StopPolicy holds the session's circuit-breaker limits.
type StopPolicy struct {
	StopLossPercent      float64 // max drawdown from peak, (0, 100]
	MaxConsecutiveLosses int     // positive
}

// StopDecision is the result of a stop-loss evaluation.
type StopDecision struct {
	Stop   bool
	Reason StopReason

	DrawdownPercent float64
	LossStreak      int
}

// EvaluateStop checks both circuit breakers against the session state.
// The drawdown check wins when both trigger on the same trade.
func EvaluateStop(p StopPolicy, initialBalance, currentBalance float64, history []trade.Trade) StopDecision {
	d := StopDecision{
		DrawdownPercent: DrawdownPercent(Peak(initialBalance, history), currentBalance),
		LossStreak:      TrailingLosses(history),
	}

	if d.DrawdownPercent >= p.StopLossPercent {
		d.Stop = true
		d.Reason = StopDrawdownLimit
		return d
	}
	if p.MaxConsecutiveLosses > 0 && d.LossStreak >= p.MaxConsecutiveLosses {
		d.Stop = true
		d.Reason = StopConsecutiveLosses
	}
	return d
}

// Peak returns the highest balance the session has seen: the starting
// balance or any settled balance after it, whichever is greater.
func Peak(initialBalance float64, history []trade.Trade) float64 {
	peak := initialBalance
	for _, t := range history {
		if t.BalanceAfter > peak {
			peak = t.BalanceAfter
		}
	}
	return peak
}

// DrawdownPercent measures the decline from peak to current as a
// percentage of peak. Zero when the account sits at or above its peak.
func DrawdownPercent(peak, current float64) float64 {
	if peak <= 0 || current >= peak {
		return 0
	}
	return (peak - current) / peak * 100
}

// TrailingLosses counts consecutive losses at the end of history.
// A win or a push resets the streak.
func TrailingLosses(history []trade.Trade) int {
	n := 0
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Result != trade.Loss {
			break
		}
		n++
	}
	return n
}
