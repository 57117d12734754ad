// Package journal writes finished or in-progress session history to
// durable storage. It is an export collaborator: the session core never
// touches it, the shell hands it a read-only view of history.
package journal

import "time"

// TradeRecord is one exported trade row.
type TradeRecord struct {
	SessionID     string
	Seq           int
	Time          time.Time
	Result        string
	Stake         float64
	PayoutPercent float64
	BalanceBefore float64
	BalanceAfter  float64
	PnL           float64
}

// SessionSummary is one exported session-level row.
type SessionSummary struct {
	SessionID          string
	StartedAt          time.Time
	ExportedAt         time.Time
	InitialBalance     float64
	FinalBalance       float64
	TotalTrades        int
	Wins               int
	Losses             int
	Pushes             int
	ROIPercent         float64
	MaxDrawdownPercent float64
	Expectancy         float64
	StopReason         string
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSummary(SessionSummary) error
	Close() error
}
