package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// InsertJournal persists a new journal, mapping code collisions to
// ErrDuplicateCode like InsertAccount does.
func (s *Store) InsertJournal(j model.Journal) error {
	_, err := s.db.Exec(
		`INSERT INTO journals (id, code, label, type, is_active) VALUES (?, ?, ?, ?, ?)`,
		j.ID, j.Code, j.Label, string(j.Type), boolToInt(j.Active),
	)
	if isUniqueViolation(err) {
		return model.Errf(model.KindDuplicateCode, "journal code %q already in use", j.Code)
	}
	if err != nil {
		return fmt.Errorf("inserting journal: %w", err)
	}
	return nil
}

// GetJournal returns the journal with the given id.
func (s *Store) GetJournal(id string) (model.Journal, bool, error) {
	return s.scanJournal(s.db.QueryRow(
		`SELECT id, code, label, type, is_active FROM journals WHERE id = ?`, id))
}

// GetJournalByCode returns the journal with the given code, active or not.
func (s *Store) GetJournalByCode(code string) (model.Journal, bool, error) {
	return s.scanJournal(s.db.QueryRow(
		`SELECT id, code, label, type, is_active FROM journals WHERE code = ?`, code))
}

// ListJournals returns all journals ordered by code.
func (s *Store) ListJournals() ([]model.Journal, error) {
	rows, err := s.db.Query(`SELECT id, code, label, type, is_active FROM journals ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	defer rows.Close()

	var journals []model.Journal
	for rows.Next() {
		var j model.Journal
		var typ string
		var active int
		if err := rows.Scan(&j.ID, &j.Code, &j.Label, &typ, &active); err != nil {
			return nil, fmt.Errorf("scanning journal: %w", err)
		}
		j.Type = model.JournalType(typ)
		j.Active = active != 0
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

// SetJournalActive flips the active flag. Reports false if id is unknown.
func (s *Store) SetJournalActive(id string, active bool) (bool, error) {
	res, err := s.db.Exec(`UPDATE journals SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return false, fmt.Errorf("updating journal: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) scanJournal(row *sql.Row) (model.Journal, bool, error) {
	var j model.Journal
	var typ string
	var active int
	err := row.Scan(&j.ID, &j.Code, &j.Label, &typ, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Journal{}, false, nil
	}
	if err != nil {
		return model.Journal{}, false, fmt.Errorf("scanning journal: %w", err)
	}
	j.Type = model.JournalType(typ)
	j.Active = active != 0
	return j, true, nil
}
