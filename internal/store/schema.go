package store

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id        TEXT PRIMARY KEY,
	code      TEXT NOT NULL UNIQUE,
	label     TEXT NOT NULL,
	type      TEXT NOT NULL,
	category  TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS journals (
	id        TEXT PRIMARY KEY,
	code      TEXT NOT NULL UNIQUE,
	label     TEXT NOT NULL,
	type      TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	journal_id  TEXT NOT NULL REFERENCES journals(id),
	date        TEXT NOT NULL,
	reference   TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	is_locked   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);

CREATE TABLE IF NOT EXISTS entry_lines (
	id          TEXT PRIMARY KEY,
	entry_id    TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
	account_id  TEXT NOT NULL REFERENCES accounts(id),
	debit       TEXT NOT NULL,
	credit      TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	line_order  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_entry_lines_entry ON entry_lines(entry_id);
CREATE INDEX IF NOT EXISTS idx_entry_lines_account ON entry_lines(account_id);

CREATE TABLE IF NOT EXISTS fiscal_years (
	id         TEXT PRIMARY KEY,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	is_closed  INTEGER NOT NULL DEFAULT 0,
	is_current INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tax_declarations (
	id       TEXT PRIMARY KEY,
	type     TEXT NOT NULL,
	period   TEXT NOT NULL,
	amount   TEXT NOT NULL,
	status   TEXT NOT NULL,
	due_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tax_payments (
	id             TEXT PRIMARY KEY,
	declaration_id TEXT NOT NULL REFERENCES tax_declarations(id),
	amount         TEXT NOT NULL,
	payment_date   TEXT NOT NULL,
	method         TEXT NOT NULL,
	reference      TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL
);
`

func (s *Store) initSchema() error {
	_, err := s.db.Exec(schema)
	return err
}
