package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time DATETIME NOT NULL,
	result TEXT NOT NULL,
	stake REAL NOT NULL,
	payout_percent REAL NOT NULL,
	balance_before REAL NOT NULL,
	balance_after REAL NOT NULL,
	pnl REAL NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	exported_at DATETIME NOT NULL,
	initial_balance REAL NOT NULL,
	final_balance REAL NOT NULL,
	total_trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	pushes INTEGER NOT NULL,
	roi_percent REAL NOT NULL,
	max_drawdown_percent REAL NOT NULL,
	expectancy REAL NOT NULL,
	stop_reason TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_session ON trades(session_id);
`
