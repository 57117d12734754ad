// Package session owns the mutable state of one trading session: the
// account balance and the ordered trade history. It delegates sizing and
// stop evaluation to the risk package and reporting to the stats
// package, and performs no I/O of its own.
//
// A Session assumes a single sequential caller and does no locking.
package session

import (
	"errors"
	"fmt"
	"time"

	"binopt/pkg/id"
	"binopt/risk"
	"binopt/stats"
	"binopt/trade"
)

var (
	// ErrStopped rejects mutations after a circuit breaker has fired.
	ErrStopped = errors.New("session stopped")

	// ErrEmptyHistory rejects undo when there is nothing to undo.
	ErrEmptyHistory = errors.New("empty history")
)

// Config carries the parameters a session starts with. InitialBalance
// and the stop limits are fixed for the session's lifetime; risk and
// payout may change mid-session through the setters.
type Config struct {
	InitialBalance       float64
	RiskPercent          float64
	PayoutPercent        float64
	StopLossPercent      float64
	MaxConsecutiveLosses int
}

// Validate rejects out-of-range values. Nothing is ever clamped.
func (c Config) Validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("%w: initial balance %.2f must be > 0", risk.ErrInvalidConfig, c.InitialBalance)
	}
	if c.RiskPercent <= 0 || c.RiskPercent > 100 {
		return fmt.Errorf("%w: risk percent %.2f must be in (0, 100]", risk.ErrInvalidConfig, c.RiskPercent)
	}
	if c.PayoutPercent <= 0 {
		return fmt.Errorf("%w: payout percent %.2f must be > 0", risk.ErrInvalidConfig, c.PayoutPercent)
	}
	if c.StopLossPercent <= 0 || c.StopLossPercent > 100 {
		return fmt.Errorf("%w: stop-loss percent %.2f must be in (0, 100]", risk.ErrInvalidConfig, c.StopLossPercent)
	}
	if c.MaxConsecutiveLosses <= 0 {
		return fmt.Errorf("%w: max consecutive losses %d must be > 0", risk.ErrInvalidConfig, c.MaxConsecutiveLosses)
	}
	return nil
}

// Session is the single mutable aggregate. It moves between two states,
// active and stopped; a stopped session accepts no new trades and is
// replaced wholesale on reset rather than reused.
type Session struct {
	id         string
	cfg        Config
	balance    float64
	history    []trade.Trade
	stopped    bool
	stopReason risk.StopReason
	startedAt  time.Time

	now func() time.Time // stubbed in tests
}

// Snapshot is the read-only composite view the shell renders from.
// NextStake is nil while the session is stopped.
type Snapshot struct {
	SessionID      string
	InitialBalance float64
	Balance        float64
	RiskPercent    float64
	PayoutPercent  float64
	NextStake      *float64
	Stopped        bool
	StopReason     risk.StopReason
	Stats          stats.Report
}

// New validates cfg and starts a fresh, active session.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	now := time.Now
	startedAt := now()
	return &Session{
		id:        id.NewAt(startedAt),
		cfg:       cfg,
		balance:   cfg.InitialBalance,
		startedAt: startedAt,
		now:       now,
	}, nil
}

func (s *Session) ID() string           { return s.id }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) Stopped() bool        { return s.stopped }

// Balance is the current account balance, always equal to the initial
// balance plus the sum of all recorded P/L.
func (s *Session) Balance() float64 { return s.balance }

// History returns a copy of the trade history in settlement order.
func (s *Session) History() []trade.Trade {
	out := make([]trade.Trade, len(s.history))
	copy(out, s.history)
	return out
}

// RecordOutcome sizes, settles, and appends one trade, then re-checks
// the circuit breakers. The triggering trade itself is kept; the stop
// only blocks the next attempt. On any error the session is unchanged.
func (s *Session) RecordOutcome(result trade.Result) (trade.Trade, error) {
	if s.stopped {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrStopped, s.stopReason)
	}
	if !result.Valid() {
		return trade.Trade{}, fmt.Errorf("unknown trade result %q", result)
	}

	stake, err := risk.Stake(s.balance, s.cfg.RiskPercent)
	if err != nil {
		return trade.Trade{}, err
	}
	after := risk.Settle(s.balance, stake, s.cfg.PayoutPercent, result)

	t := trade.Trade{
		Seq:           len(s.history),
		Result:        result,
		Stake:         stake,
		PayoutPercent: s.cfg.PayoutPercent,
		BalanceBefore: s.balance,
		BalanceAfter:  after,
		PnL:           after - s.balance,
		Time:          s.now(),
	}

	s.history = append(s.history, t)
	s.balance = after

	if d := risk.EvaluateStop(s.stopPolicy(), s.cfg.InitialBalance, s.balance, s.history); d.Stop {
		s.stopped = true
		s.stopReason = d.Reason
	}

	return t, nil
}

// Undo removes the last trade and rolls the balance back to what it was
// before that trade settled. Stop state is re-evaluated against the
// shorter history, so undoing the triggering trade reactivates the
// session.
func (s *Session) Undo() (trade.Trade, error) {
	if len(s.history) == 0 {
		return trade.Trade{}, ErrEmptyHistory
	}

	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.balance = last.BalanceBefore

	d := risk.EvaluateStop(s.stopPolicy(), s.cfg.InitialBalance, s.balance, s.history)
	s.stopped = d.Stop
	s.stopReason = d.Reason

	return last, nil
}

// UpdateRiskPercent changes the sizing fraction for subsequent trades.
func (s *Session) UpdateRiskPercent(v float64) error {
	if v <= 0 || v > 100 {
		return fmt.Errorf("%w: risk percent %.2f must be in (0, 100]", risk.ErrInvalidConfig, v)
	}
	s.cfg.RiskPercent = v
	return nil
}

// UpdatePayoutPercent changes the payout rate for subsequent trades.
// Already-settled trades keep the rate they were settled at.
func (s *Session) UpdatePayoutPercent(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: payout percent %.2f must be > 0", risk.ErrInvalidConfig, v)
	}
	s.cfg.PayoutPercent = v
	return nil
}

// Snapshot assembles the composite read view.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:      s.id,
		InitialBalance: s.cfg.InitialBalance,
		Balance:        s.balance,
		RiskPercent:    s.cfg.RiskPercent,
		PayoutPercent:  s.cfg.PayoutPercent,
		Stopped:        s.stopped,
		StopReason:     s.stopReason,
		Stats:          stats.Compute(s.cfg.InitialBalance, s.balance, s.cfg.PayoutPercent, s.history),
	}
	if !s.stopped {
		if stake, err := risk.Stake(s.balance, s.cfg.RiskPercent); err == nil {
			snap.NextStake = &stake
		}
	}
	return snap
}

func (s *Session) stopPolicy() risk.StopPolicy {
	return risk.StopPolicy{
		StopLossPercent:      s.cfg.StopLossPercent,
		MaxConsecutiveLosses: s.cfg.MaxConsecutiveLosses,
	}
}
