package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	date TEXT NOT NULL,
	session TEXT NOT NULL,
	price REAL NOT NULL,
	size REAL NOT NULL,
	commission REAL NOT NULL,
	tag TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS gains (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	size REAL NOT NULL,
	open_price REAL NOT NULL,
	close_price REAL NOT NULL,
	open_date TEXT NOT NULL,
	close_date TEXT NOT NULL,
	open_tag TEXT NOT NULL,
	close_tag TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dividends (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	tag TEXT NOT NULL,
	acquired_date TEXT NOT NULL,
	ex_date TEXT NOT NULL,
	shares REAL NOT NULL,
	per_share REAL NOT NULL,
	amount REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	date TEXT NOT NULL,
	cash REAL NOT NULL,
	long_equities REAL NOT NULL,
	total REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, date);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id, date);
`
