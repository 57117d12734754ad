// Package stats derives aggregate session metrics from the ordered trade
// history. All functions are pure; every call recomputes from scratch.
package stats

import (
	"math"

	"binopt/trade"
)

// Report is a snapshot of session performance. Rates are fractions in
// [0, 1]; percent-suffixed fields are percentages.
type Report struct {
	TotalTrades int // full history length, pushes included
	Wins        int
	Losses      int
	Pushes      int

	// Pushes are neutral: they count toward neither rate.
	WinRate  float64
	LossRate float64

	AvgWin     float64 // mean absolute P/L over winning trades
	AvgLoss    float64 // mean absolute P/L over losing trades
	Expectancy float64 // expected P/L per counted trade

	TotalPL    float64
	ROIPercent float64

	MaxDrawdownPercent float64

	// BreakevenWinRate is the win rate at which the configured payout
	// exactly covers losses: 1 / (1 + payout/100).
	BreakevenWinRate float64

	// Streak is the run of identical results at the end of history:
	// positive for wins, negative for losses, zero after a push.
	Streak int
}

// Compute aggregates the full history into a Report. payoutPercent is
// the currently configured payout, used only for the breakeven rate.
func Compute(initialBalance, currentBalance, payoutPercent float64, history []trade.Trade) Report {
	r := Report{
		TotalTrades:      len(history),
		BreakevenWinRate: 1 / (1 + payoutPercent/100),
	}

	var winPL, lossPL float64
	for _, t := range history {
		switch t.Result {
		case trade.Win:
			r.Wins++
			winPL += t.PnL
		case trade.Loss:
			r.Losses++
			lossPL += -t.PnL
		default:
			r.Pushes++
		}
	}

	if counted := r.Wins + r.Losses; counted > 0 {
		r.WinRate = float64(r.Wins) / float64(counted)
		r.LossRate = float64(r.Losses) / float64(counted)
	}
	if r.Wins > 0 {
		r.AvgWin = winPL / float64(r.Wins)
	}
	if r.Losses > 0 {
		r.AvgLoss = lossPL / float64(r.Losses)
	}
	r.Expectancy = r.WinRate*r.AvgWin - r.LossRate*r.AvgLoss

	r.TotalPL = currentBalance - initialBalance
	if initialBalance > 0 {
		r.ROIPercent = r.TotalPL / initialBalance * 100
	}

	r.MaxDrawdownPercent = maxDrawdownPercent(initialBalance, history)
	r.Streak = streak(history)

	return r
}

// maxDrawdownPercent is the worst peak-to-balance decline ever reached,
// with the running peak seeded from the starting balance.
func maxDrawdownPercent(initialBalance float64, history []trade.Trade) float64 {
	peak := initialBalance
	worst := 0.0
	for _, t := range history {
		if t.BalanceAfter > peak {
			peak = t.BalanceAfter
		}
		if peak > 0 {
			worst = math.Max(worst, (peak-t.BalanceAfter)/peak*100)
		}
	}
	return worst
}

func streak(history []trade.Trade) int {
	if len(history) == 0 {
		return 0
	}
	last := history[len(history)-1].Result
	if last == trade.Push {
		return 0
	}

	n := 0
	for i := len(history) - 1; i >= 0 && history[i].Result == last; i-- {
		n++
	}
	if last == trade.Loss {
		return -n
	}
	return n
}
