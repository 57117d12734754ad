// Package shell is the interactive front end: it reads one command per
// line, dispatches typed commands to the session, and redraws a compact
// dashboard from the session snapshot. It owns the single Session
// instance and serializes all access to it.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"binopt/config"
	"binopt/journal"
	"binopt/session"
)

type Shell struct {
	cfg    *config.Config
	sess   *session.Session
	in     io.Reader
	out    io.Writer
	status string
}

func New(cfg *config.Config, in io.Reader, out io.Writer) (*Shell, error) {
	sess, err := session.New(cfg.SessionConfig())
	if err != nil {
		return nil, err
	}
	return &Shell{
		cfg:    cfg,
		sess:   sess,
		in:     in,
		out:    out,
		status: "session active",
	}, nil
}

// Session exposes the running session for inspection in tests.
func (sh *Shell) Session() *session.Session { return sh.sess }

// Run is the read-dispatch-render loop. It returns when the user quits
// or input is exhausted.
func (sh *Shell) Run() error {
	sh.render()

	scanner := bufio.NewScanner(sh.in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		cmd, err := Parse(scanner.Text())
		if err != nil {
			sh.status = err.Error()
			sh.render()
			continue
		}
		if cmd == nil {
			sh.render()
			continue
		}

		done, err := sh.apply(cmd)
		if err != nil {
			sh.status = err.Error()
		}
		if done {
			return nil
		}
		sh.render()
	}
}

// apply executes one command against the session. Errors are reported
// through the status line; they never end the loop.
func (sh *Shell) apply(cmd Command) (done bool, err error) {
	switch c := cmd.(type) {
	case Record:
		t, err := sh.sess.RecordOutcome(c.Result)
		if err != nil {
			return false, err
		}
		sh.status = fmt.Sprintf("%s logged  stake $%.2f  P/L %+.2f", t.Result, t.Stake, t.PnL)

	case Undo:
		t, err := sh.sess.Undo()
		if err != nil {
			return false, err
		}
		sh.status = fmt.Sprintf("undid trade #%d (%s)", t.Seq, t.Result)

	case SetRisk:
		if err := sh.sess.UpdateRiskPercent(c.Percent); err != nil {
			return false, err
		}
		sh.status = fmt.Sprintf("risk set to %.2f%%", c.Percent)

	case SetPayout:
		if err := sh.sess.UpdatePayoutPercent(c.Percent); err != nil {
			return false, err
		}
		sh.status = fmt.Sprintf("payout set to %.2f%%", c.Percent)

	case Reset:
		if err := sh.reset(c.Balance); err != nil {
			return false, err
		}
		sh.status = "new session started"

	case Export:
		n, err := sh.export()
		if err != nil {
			return false, err
		}
		sh.status = fmt.Sprintf("exported %d trades", n)

	case Quit:
		if c.ExportFirst {
			if _, err := sh.export(); err != nil {
				return false, err
			}
		}
		return true, nil

	case History:
		sh.RenderHistory()

	case Help:
		sh.status = "w=win l=loss p=push u=undo h=history | :risk N :payout N :reset [balance] :w export :q quit"
	}
	return false, nil
}

// reset replaces the session wholesale. History does not survive; the
// new session starts from the requested balance (or the old starting
// balance) with the currently configured rates.
func (sh *Shell) reset(balance float64) error {
	snap := sh.sess.Snapshot()

	cfg := sh.cfg.SessionConfig()
	cfg.RiskPercent = snap.RiskPercent
	cfg.PayoutPercent = snap.PayoutPercent
	if balance > 0 {
		cfg.InitialBalance = balance
	} else {
		cfg.InitialBalance = snap.InitialBalance
	}

	sess, err := session.New(cfg)
	if err != nil {
		return err
	}
	sh.sess = sess
	return nil
}

// export writes the full history plus a session summary through the
// configured journal backend.
func (sh *Shell) export() (int, error) {
	j, err := openJournal(sh.cfg.Journal)
	if err != nil {
		return 0, fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	history := sh.sess.History()
	snap := sh.sess.Snapshot()

	for _, t := range history {
		err := j.RecordTrade(journal.TradeRecord{
			SessionID:     snap.SessionID,
			Seq:           t.Seq,
			Time:          t.Time,
			Result:        string(t.Result),
			Stake:         t.Stake,
			PayoutPercent: t.PayoutPercent,
			BalanceBefore: t.BalanceBefore,
			BalanceAfter:  t.BalanceAfter,
			PnL:           t.PnL,
		})
		if err != nil {
			return 0, fmt.Errorf("record trade %d: %w", t.Seq, err)
		}
	}

	err = j.RecordSummary(journal.SessionSummary{
		SessionID:          snap.SessionID,
		StartedAt:          sh.sess.StartedAt(),
		ExportedAt:         time.Now(),
		InitialBalance:     snap.InitialBalance,
		FinalBalance:       snap.Balance,
		TotalTrades:        snap.Stats.TotalTrades,
		Wins:               snap.Stats.Wins,
		Losses:             snap.Stats.Losses,
		Pushes:             snap.Stats.Pushes,
		ROIPercent:         snap.Stats.ROIPercent,
		MaxDrawdownPercent: snap.Stats.MaxDrawdownPercent,
		Expectancy:         snap.Stats.Expectancy,
		StopReason:         string(snap.StopReason),
	})
	if err != nil {
		return 0, fmt.Errorf("record summary: %w", err)
	}

	return len(history), nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	if cfg.Type == "sqlite" {
		return journal.NewSQLite(cfg.DBPath)
	}
	return journal.NewCSV(cfg.TradesFile, cfg.SummaryFile)
}

func (sh *Shell) render() {
	snap := sh.sess.Snapshot()
	st := snap.Stats

	fmt.Fprintf(sh.out, "\nBalance: $%.2f -> $%.2f (%+.1f%%)", snap.InitialBalance, snap.Balance, st.ROIPercent)
	if snap.NextStake != nil {
		fmt.Fprintf(sh.out, "    Next stake: $%.2f (%.1f%% risk)", *snap.NextStake, snap.RiskPercent)
	}
	fmt.Fprintln(sh.out)

	fmt.Fprintf(sh.out, "Trades: %d  W/L/P: %d/%d/%d", st.TotalTrades, st.Wins, st.Losses, st.Pushes)
	if st.Wins+st.Losses > 0 {
		fmt.Fprintf(sh.out, "  Win rate: %.1f%%", st.WinRate*100)
	}
	fmt.Fprintf(sh.out, "  Streak: %s\n", streakLabel(st.Streak))

	fmt.Fprintf(sh.out, "Expectancy: $%+.2f/trade  Max DD: %.1f%%  Breakeven WR: %.1f%%\n",
		st.Expectancy, st.MaxDrawdownPercent, st.BreakevenWinRate*100)

	if snap.Stopped {
		fmt.Fprintf(sh.out, "*** SESSION STOPPED: %s (u to undo, :reset to start over) ***\n", snap.StopReason)
	}

	fmt.Fprintf(sh.out, "-- %s\n", sh.status)
}

func streakLabel(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("W%d", n)
	case n < 0:
		return fmt.Sprintf("L%d", -n)
	}
	return "-"
}

// RenderHistory prints the trade log, most recent last, in the order
// trades settled.
func (sh *Shell) RenderHistory() {
	history := sh.sess.History()
	if len(history) == 0 {
		fmt.Fprintln(sh.out, "no trades yet")
		return
	}

	fmt.Fprintln(sh.out, "  # | Time     | Result | Stake    | P/L      | Balance")
	for _, t := range history {
		fmt.Fprintf(sh.out, "%3d | %s | %-6s | $%7.2f | %+8.2f | $%9.2f\n",
			t.Seq, t.Time.Format("15:04:05"), t.Result, t.Stake, t.PnL, t.BalanceAfter)
	}
}
