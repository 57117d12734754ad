package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"binopt/trade"
)

// play settles a canned sequence of outcomes with a fixed stake fraction
// and payout, tracking balances the way a session would.
func play(initial, riskPct, payoutPct float64, results ...trade.Result) (history []trade.Trade, balance float64) {
	balance = initial
	for i, res := range results {
		stake := balance * riskPct / 100
		before := balance
		switch res {
		case trade.Win:
			balance += stake * payoutPct / 100
		case trade.Loss:
			balance -= stake
		}
		history = append(history, trade.Trade{
			Seq:           i,
			Result:        res,
			Stake:         stake,
			PayoutPercent: payoutPct,
			BalanceBefore: before,
			BalanceAfter:  balance,
			PnL:           balance - before,
		})
	}
	return history, balance
}

func TestComputeEmptyHistory(t *testing.T) {
	t.Parallel()

	r := Compute(2000, 2000, 80, nil)

	assert.Equal(t, 0, r.TotalTrades)
	assert.Zero(t, r.WinRate)
	assert.Zero(t, r.LossRate)
	assert.Zero(t, r.Expectancy)
	assert.Zero(t, r.ROIPercent)
	assert.Zero(t, r.MaxDrawdownPercent)
	assert.Zero(t, r.Streak)
}

func TestComputeExcludesPushesFromRates(t *testing.T) {
	t.Parallel()

	h, bal := play(2000, 5, 80, trade.Win, trade.Loss, trade.Push, trade.Win, trade.Loss)
	r := Compute(2000, bal, 80, h)

	assert.Equal(t, 5, r.TotalTrades)
	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 2, r.Losses)
	assert.Equal(t, 1, r.Pushes)
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)
	assert.InDelta(t, 0.5, r.LossRate, 1e-9)
	assert.InDelta(t, 1.0, r.WinRate+r.LossRate, 1e-9)
}

func TestComputeAveragesAndExpectancy(t *testing.T) {
	t.Parallel()

	h, bal := play(1000, 10, 80, trade.Win, trade.Loss)
	// Win: stake 100, +80. Loss: stake 108, -108.
	r := Compute(1000, bal, 80, h)

	assert.InDelta(t, 80, r.AvgWin, 1e-9)
	assert.InDelta(t, 108, r.AvgLoss, 1e-9)
	assert.InDelta(t, 0.5*80-0.5*108, r.Expectancy, 1e-9)
}

func TestComputeROI(t *testing.T) {
	t.Parallel()

	h, bal := play(2000, 5, 80, trade.Win)
	r := Compute(2000, bal, 80, h)

	assert.InDelta(t, 80, r.TotalPL, 1e-9)
	assert.InDelta(t, 4, r.ROIPercent, 1e-9)
}

func TestComputeMaxDrawdownPersistsPastRecovery(t *testing.T) {
	t.Parallel()

	h, bal := play(1000, 20, 100, trade.Loss, trade.Loss, trade.Win, trade.Win, trade.Win)
	r := Compute(1000, bal, 100, h)

	// Balance bottomed at 640 against a peak of 1000 before recovering.
	assert.InDelta(t, 36, r.MaxDrawdownPercent, 1e-9)
	assert.Greater(t, bal, 1000.0)
}

func TestComputeBreakevenWinRate(t *testing.T) {
	t.Parallel()

	r := Compute(2000, 2000, 80, nil)
	// At 80% payout a trader needs to win 5 of every 9 trades.
	assert.InDelta(t, 1.0/1.8, r.BreakevenWinRate, 1e-9)

	r = Compute(2000, 2000, 100, nil)
	assert.InDelta(t, 0.5, r.BreakevenWinRate, 1e-9)
}

func TestComputeStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []trade.Result
		want    int
	}{
		{"two wins", []trade.Result{trade.Loss, trade.Win, trade.Win}, 2},
		{"three losses", []trade.Result{trade.Win, trade.Loss, trade.Loss, trade.Loss}, -3},
		{"push clears", []trade.Result{trade.Win, trade.Win, trade.Push}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, bal := play(1000, 1, 80, tt.results...)
			r := Compute(1000, bal, 80, h)
			assert.Equal(t, tt.want, r.Streak)
		})
	}
}

func TestComputePnLReconciliation(t *testing.T) {
	t.Parallel()

	h, bal := play(2000, 5, 80,
		trade.Win, trade.Loss, trade.Push, trade.Loss, trade.Win, trade.Win)

	sum := 0.0
	for _, tr := range h {
		assert.InDelta(t, tr.BalanceAfter-tr.BalanceBefore, tr.PnL, 1e-9)
		sum += tr.PnL
	}
	assert.InDelta(t, bal, 2000+sum, 1e-9)
}
