package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// InsertFiscalYear persists a new fiscal year.
func (s *Store) InsertFiscalYear(fy model.FiscalYear) error {
	_, err := s.db.Exec(
		`INSERT INTO fiscal_years (id, start_date, end_date, is_closed, is_current) VALUES (?, ?, ?, ?, ?)`,
		fy.ID, encodeDate(fy.Start), encodeDate(fy.End), boolToInt(fy.Closed), boolToInt(fy.Current),
	)
	if err != nil {
		return fmt.Errorf("inserting fiscal year: %w", err)
	}
	return nil
}

// GetFiscalYear returns the fiscal year with the given id.
func (s *Store) GetFiscalYear(id string) (model.FiscalYear, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, start_date, end_date, is_closed, is_current FROM fiscal_years WHERE id = ?`, id)
	var fy model.FiscalYear
	var start, end string
	var closed, current int
	err := row.Scan(&fy.ID, &start, &end, &closed, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FiscalYear{}, false, nil
	}
	if err != nil {
		return model.FiscalYear{}, false, fmt.Errorf("scanning fiscal year: %w", err)
	}
	if fy.Start, err = decodeDate(start); err != nil {
		return model.FiscalYear{}, false, err
	}
	if fy.End, err = decodeDate(end); err != nil {
		return model.FiscalYear{}, false, err
	}
	fy.Closed = closed != 0
	fy.Current = current != 0
	return fy, true, nil
}

// ListFiscalYears returns all fiscal years ordered by start date.
func (s *Store) ListFiscalYears() ([]model.FiscalYear, error) {
	rows, err := s.db.Query(
		`SELECT id, start_date, end_date, is_closed, is_current FROM fiscal_years ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("listing fiscal years: %w", err)
	}
	defer rows.Close()

	var years []model.FiscalYear
	for rows.Next() {
		var fy model.FiscalYear
		var start, end string
		var closed, current int
		if err := rows.Scan(&fy.ID, &start, &end, &closed, &current); err != nil {
			return nil, fmt.Errorf("scanning fiscal year: %w", err)
		}
		if fy.Start, err = decodeDate(start); err != nil {
			return nil, err
		}
		if fy.End, err = decodeDate(end); err != nil {
			return nil, err
		}
		fy.Closed = closed != 0
		fy.Current = current != 0
		years = append(years, fy)
	}
	return years, rows.Err()
}

// SetCurrentFiscalYear makes id the only current fiscal year, demoting any
// previous current in the same transaction.
func (s *Store) SetCurrentFiscalYear(id string) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`UPDATE fiscal_years SET is_current = 0 WHERE is_current = 1`); err != nil {
			return fmt.Errorf("demoting current fiscal year: %w", err)
		}
		if _, err := tx.Exec(`UPDATE fiscal_years SET is_current = 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("promoting fiscal year: %w", err)
		}
		return nil
	})
}

// CloseFiscalYear marks the year closed, clears its current flag, and locks
// every entry dated inside [start, end], all in one transaction. The cascade
// and the flag flip commit together or not at all.
func (s *Store) CloseFiscalYear(fy model.FiscalYear) error {
	return s.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`UPDATE fiscal_years SET is_closed = 1, is_current = 0 WHERE id = ?`, fy.ID); err != nil {
			return fmt.Errorf("closing fiscal year: %w", err)
		}
		if _, err := tx.Exec(
			`UPDATE entries SET is_locked = 1 WHERE date >= ? AND date <= ?`,
			encodeDate(fy.Start), encodeDate(fy.End)); err != nil {
			return fmt.Errorf("locking entries in period: %w", err)
		}
		return nil
	})
}

// ReopenFiscalYear clears the closed flag. Entries locked by the close
// cascade stay locked.
func (s *Store) ReopenFiscalYear(id string) error {
	_, err := s.db.Exec(`UPDATE fiscal_years SET is_closed = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("reopening fiscal year: %w", err)
	}
	return nil
}
