package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"binopt/trade"
)

func TestStake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance float64
		riskPct float64
		want    float64
	}{
		{"five percent", 2000, 5, 100},
		{"one percent", 1000, 1, 10},
		{"full balance", 500, 100, 500},
		{"fractional", 1234.56, 2.5, 30.864},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Stake(tt.balance, tt.riskPct)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestStakeScalesLinearlyWithBalance(t *testing.T) {
	t.Parallel()

	base, err := Stake(1000, 5)
	assert.NoError(t, err)

	for _, mult := range []float64{0.5, 2, 10, 137.5} {
		got, err := Stake(1000*mult, 5)
		assert.NoError(t, err)
		assert.InDelta(t, base*mult, got, 1e-9)
	}
}

func TestStakeRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance float64
		riskPct float64
	}{
		{"zero risk", 1000, 0},
		{"negative risk", 1000, -5},
		{"zero balance", 0, 5},
		{"negative balance", -100, 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Stake(tt.balance, tt.riskPct)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestSettle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result trade.Result
		want   float64
	}{
		{"win pays out", trade.Win, 1040},
		{"loss forfeits stake", trade.Loss, 950},
		{"push refunds", trade.Push, 1000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Settle(1000, 50, 80, tt.result)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
