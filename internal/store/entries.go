package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// InsertEntry commits an entry and all its lines in one transaction, so a
// partial posting is never observable.
func (s *Store) InsertEntry(e model.Entry) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO entries (id, journal_id, date, reference, description, is_locked) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.JournalID, encodeDate(e.Date), e.Reference, e.Description, boolToInt(e.Locked),
		)
		if err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
		return insertLines(tx, e.ID, e.Lines)
	})
}

// UpdateEntry rewrites an entry and replaces all its lines atomically.
func (s *Store) UpdateEntry(e model.Entry) error {
	return s.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`UPDATE entries SET journal_id = ?, date = ?, reference = ?, description = ?, is_locked = ? WHERE id = ?`,
			e.JournalID, encodeDate(e.Date), e.Reference, e.Description, boolToInt(e.Locked), e.ID,
		)
		if err != nil {
			return fmt.Errorf("updating entry: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM entry_lines WHERE entry_id = ?`, e.ID); err != nil {
			return fmt.Errorf("clearing entry lines: %w", err)
		}
		return insertLines(tx, e.ID, e.Lines)
	})
}

func insertLines(tx *sql.Tx, entryID string, lines []model.EntryLine) error {
	for i, l := range lines {
		_, err := tx.Exec(
			`INSERT INTO entry_lines (id, entry_id, account_id, debit, credit, description, line_order) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.ID, entryID, l.AccountID, l.Debit.String(), l.Credit.String(), l.Description, i,
		)
		if err != nil {
			return fmt.Errorf("inserting entry line: %w", err)
		}
	}
	return nil
}

// DeleteEntry removes an entry; its lines go with it via ON DELETE CASCADE.
// Reports false if id is unknown.
func (s *Store) DeleteEntry(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetEntry returns an entry with its lines in posting order.
func (s *Store) GetEntry(id string) (model.Entry, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, journal_id, date, reference, description, is_locked FROM entries WHERE id = ?`, id)
	e, ok, err := scanEntry(row)
	if err != nil || !ok {
		return model.Entry{}, ok, err
	}

	rows, err := s.db.Query(
		`SELECT id, account_id, debit, credit, description FROM entry_lines WHERE entry_id = ? ORDER BY line_order`, id)
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("listing entry lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l model.EntryLine
		var debit, credit string
		if err := rows.Scan(&l.ID, &l.AccountID, &debit, &credit, &l.Description); err != nil {
			return model.Entry{}, false, fmt.Errorf("scanning entry line: %w", err)
		}
		if l.Debit, err = decodeAmount(debit); err != nil {
			return model.Entry{}, false, err
		}
		if l.Credit, err = decodeAmount(credit); err != nil {
			return model.Entry{}, false, err
		}
		e.Lines = append(e.Lines, l)
	}
	return e, true, rows.Err()
}

// EntryFilter narrows ListEntries. Zero values mean no constraint.
type EntryFilter struct {
	JournalID string
	From      time.Time
	To        time.Time
}

// ListEntries returns entry headers (no lines) matching the filter, ordered
// by date.
func (s *Store) ListEntries(f EntryFilter) ([]model.Entry, error) {
	query := `SELECT id, journal_id, date, reference, description, is_locked FROM entries WHERE 1=1`
	var args []any
	if f.JournalID != "" {
		query += ` AND journal_id = ?`
		args = append(args, f.JournalID)
	}
	if !f.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, encodeDate(f.From))
	}
	if !f.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, encodeDate(f.To))
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SetEntryLocked flips the lock flag. Reports false if id is unknown.
func (s *Store) SetEntryLocked(id string, locked bool) (bool, error) {
	res, err := s.db.Exec(`UPDATE entries SET is_locked = ? WHERE id = ?`, boolToInt(locked), id)
	if err != nil {
		return false, fmt.Errorf("updating entry lock: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// PostedLines returns every committed line whose parent entry date falls in
// [from, to]. A zero from or to leaves that bound open.
func (s *Store) PostedLines(from, to time.Time) ([]model.PostedLine, error) {
	query := `SELECT l.account_id, l.debit, l.credit
		FROM entry_lines l JOIN entries e ON e.id = l.entry_id WHERE 1=1`
	var args []any
	if !from.IsZero() {
		query += ` AND e.date >= ?`
		args = append(args, encodeDate(from))
	}
	if !to.IsZero() {
		query += ` AND e.date <= ?`
		args = append(args, encodeDate(to))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing posted lines: %w", err)
	}
	defer rows.Close()

	var lines []model.PostedLine
	for rows.Next() {
		var l model.PostedLine
		var debit, credit string
		if err := rows.Scan(&l.AccountID, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scanning posted line: %w", err)
		}
		if l.Debit, err = decodeAmount(debit); err != nil {
			return nil, err
		}
		if l.Credit, err = decodeAmount(credit); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// AccountReferenced reports whether any entry line references the account.
func (s *Store) AccountReferenced(accountID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM entry_lines WHERE account_id = ?`, accountID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("counting account references: %w", err)
	}
	return n > 0, nil
}

func scanEntry(row *sql.Row) (model.Entry, bool, error) {
	var e model.Entry
	var date string
	var locked int
	err := row.Scan(&e.ID, &e.JournalID, &date, &e.Reference, &e.Description, &locked)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, false, nil
	}
	if err != nil {
		return model.Entry{}, false, fmt.Errorf("scanning entry: %w", err)
	}
	if e.Date, err = decodeDate(date); err != nil {
		return model.Entry{}, false, err
	}
	e.Locked = locked != 0
	return e, true, nil
}

func scanEntryRows(rows *sql.Rows) (model.Entry, error) {
	var e model.Entry
	var date string
	var locked int
	if err := rows.Scan(&e.ID, &e.JournalID, &date, &e.Reference, &e.Description, &locked); err != nil {
		return model.Entry{}, fmt.Errorf("scanning entry: %w", err)
	}
	var err error
	if e.Date, err = decodeDate(date); err != nil {
		return model.Entry{}, err
	}
	e.Locked = locked != 0
	return e, nil
}
