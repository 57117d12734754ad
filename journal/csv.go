package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades and session summaries to two CSV files.
// Opening it truncates both files, so a repeated export replaces the
// previous one rather than appending duplicates.
type CSVJournal struct {
	trades  *csv.Writer
	summary *csv.Writer
	tf, sf  *os.File
}

func NewCSV(tradesPath, summaryPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(summaryPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	closeBoth := func() {
		tf.Close()
		sf.Close()
	}

	if err := tw.Write([]string{"session_id", "seq", "time", "result", "stake", "payout_percent", "balance_before", "balance_after", "pnl"}); err != nil {
		closeBoth()
		return nil, err
	}
	if err := sw.Write([]string{"session_id", "started_at", "exported_at", "initial_balance", "final_balance", "total_trades", "wins", "losses", "pushes", "roi_percent", "max_drawdown_percent", "expectancy", "stop_reason"}); err != nil {
		closeBoth()
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		closeBoth()
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		closeBoth()
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.SessionID,
		strconv.Itoa(t.Seq),
		t.Time.Format(time.RFC3339),
		t.Result,
		f(t.Stake),
		f(t.PayoutPercent),
		f(t.BalanceBefore),
		f(t.BalanceAfter),
		f(t.PnL),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSummary(s SessionSummary) error {
	err := j.summary.Write([]string{
		s.SessionID,
		s.StartedAt.Format(time.RFC3339),
		s.ExportedAt.Format(time.RFC3339),
		f(s.InitialBalance),
		f(s.FinalBalance),
		strconv.Itoa(s.TotalTrades),
		strconv.Itoa(s.Wins),
		strconv.Itoa(s.Losses),
		strconv.Itoa(s.Pushes),
		f(s.ROIPercent),
		f(s.MaxDrawdownPercent),
		f(s.Expectancy),
		s.StopReason,
	})
	if err != nil {
		return err
	}
	j.summary.Flush()
	return j.summary.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	j.summary.Flush()
	if err := j.tf.Close(); err != nil {
		j.sf.Close()
		return err
	}
	return j.sf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
