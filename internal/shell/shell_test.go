package shell

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binopt/config"
	"binopt/trade"
)

func testShell(t *testing.T) *Shell {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Journal.TradesFile = filepath.Join(dir, "trades.csv")
	cfg.Journal.SummaryFile = filepath.Join(dir, "sessions.csv")

	sh, err := New(cfg, strings.NewReader(""), &strings.Builder{})
	require.NoError(t, err)
	return sh
}

func TestApplyRecordAndUndo(t *testing.T) {
	t.Parallel()

	sh := testShell(t)

	done, err := sh.apply(Record{Result: "WIN"})
	require.NoError(t, err)
	assert.False(t, done)
	assert.InDelta(t, 2080, sh.Session().Balance(), 1e-9)

	done, err = sh.apply(Undo{})
	require.NoError(t, err)
	assert.False(t, done)
	assert.InDelta(t, 2000, sh.Session().Balance(), 1e-9)
}

func TestApplySettersHitSession(t *testing.T) {
	t.Parallel()

	sh := testShell(t)

	_, err := sh.apply(SetRisk{Percent: 2})
	require.NoError(t, err)
	_, err = sh.apply(SetPayout{Percent: 90})
	require.NoError(t, err)

	snap := sh.Session().Snapshot()
	assert.InDelta(t, 2, snap.RiskPercent, 1e-9)
	assert.InDelta(t, 90, snap.PayoutPercent, 1e-9)

	_, err = sh.apply(SetRisk{Percent: -1})
	assert.Error(t, err)
}

func TestApplyResetReplacesSession(t *testing.T) {
	t.Parallel()

	sh := testShell(t)
	_, err := sh.apply(Record{Result: "LOSS"})
	require.NoError(t, err)
	require.NoError(t, sh.Session().UpdateRiskPercent(2))

	oldID := sh.Session().ID()

	_, err = sh.apply(Reset{Balance: 5000})
	require.NoError(t, err)

	sess := sh.Session()
	assert.NotEqual(t, oldID, sess.ID())
	assert.InDelta(t, 5000, sess.Balance(), 1e-9)
	assert.Empty(t, sess.History())
	// The tuned rates carry over to the fresh session.
	assert.InDelta(t, 2, sess.Snapshot().RiskPercent, 1e-9)
}

func TestApplyResetKeepsBalanceByDefault(t *testing.T) {
	t.Parallel()

	sh := testShell(t)
	_, err := sh.apply(Record{Result: "LOSS"})
	require.NoError(t, err)

	_, err = sh.apply(Reset{})
	require.NoError(t, err)
	assert.InDelta(t, 2000, sh.Session().Balance(), 1e-9)
}

func TestApplyExportWritesCSV(t *testing.T) {
	t.Parallel()

	sh := testShell(t)
	for _, r := range []trade.Result{trade.Win, trade.Loss, trade.Push} {
		_, err := sh.apply(Record{Result: r})
		require.NoError(t, err)
	}

	done, err := sh.apply(Export{})
	require.NoError(t, err)
	assert.False(t, done)

	data, err := os.ReadFile(sh.cfg.Journal.TradesFile)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 4) // header + 3 trades

	data, err = os.ReadFile(sh.cfg.Journal.SummaryFile)
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, sh.Session().ID(), rows[1][0])
}

func TestRunQuits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Journal.TradesFile = filepath.Join(dir, "trades.csv")
	cfg.Journal.SummaryFile = filepath.Join(dir, "sessions.csv")

	var out strings.Builder
	sh, err := New(cfg, strings.NewReader("w\nl\nbogus\n:q\n"), &out)
	require.NoError(t, err)

	require.NoError(t, sh.Run())

	assert.Len(t, sh.Session().History(), 2)
	assert.Contains(t, out.String(), "Balance:")
	assert.Contains(t, out.String(), "unknown key")
}

func TestRunStopsAcceptingAfterBreaker(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Session.RiskPercent = 1
	cfg.Session.MaxConsecutiveLosses = 2
	cfg.Journal.TradesFile = filepath.Join(dir, "trades.csv")
	cfg.Journal.SummaryFile = filepath.Join(dir, "sessions.csv")

	var out strings.Builder
	sh, err := New(cfg, strings.NewReader("l\nl\nw\nq\n"), &out)
	require.NoError(t, err)

	require.NoError(t, sh.Run())

	// The post-stop "w" was rejected; only the two losses stand.
	assert.Len(t, sh.Session().History(), 2)
	assert.True(t, sh.Session().Stopped())
	assert.Contains(t, out.String(), "SESSION STOPPED: CONSECUTIVE_LOSSES")
}
