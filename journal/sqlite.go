package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal stores exports in a SQLite database. Rows are keyed by
// session and sequence, so re-exporting a session overwrites in place.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO trades
		(session_id, seq, time, result, stake, payout_percent, balance_before, balance_after, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.Seq, t.Time, t.Result, t.Stake,
		t.PayoutPercent, t.BalanceBefore, t.BalanceAfter, t.PnL,
	)
	return err
}

func (j *SQLiteJournal) RecordSummary(s SessionSummary) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(session_id, started_at, exported_at, initial_balance, final_balance,
		 total_trades, wins, losses, pushes, roi_percent, max_drawdown_percent, expectancy, stop_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.StartedAt, s.ExportedAt, s.InitialBalance, s.FinalBalance,
		s.TotalTrades, s.Wins, s.Losses, s.Pushes,
		s.ROIPercent, s.MaxDrawdownPercent, s.Expectancy, s.StopReason,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
