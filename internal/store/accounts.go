package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// InsertAccount persists a new account. The UNIQUE constraint on code is the
// authoritative duplicate guard; violations surface as ErrDuplicateCode.
func (s *Store) InsertAccount(a model.Account) error {
	_, err := s.db.Exec(
		`INSERT INTO accounts (id, code, label, type, category, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Code, a.Label, string(a.Type), a.Category, boolToInt(a.Active),
	)
	if isUniqueViolation(err) {
		return model.Errf(model.KindDuplicateCode, "account code %q already in use", a.Code)
	}
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// GetAccount returns the account with the given id.
func (s *Store) GetAccount(id string) (model.Account, bool, error) {
	return s.scanAccount(s.db.QueryRow(
		`SELECT id, code, label, type, category, is_active FROM accounts WHERE id = ?`, id))
}

// GetAccountByCode returns the account with the given code, active or not.
func (s *Store) GetAccountByCode(code string) (model.Account, bool, error) {
	return s.scanAccount(s.db.QueryRow(
		`SELECT id, code, label, type, category, is_active FROM accounts WHERE code = ?`, code))
}

// ListAccounts returns all accounts ordered by code.
func (s *Store) ListAccounts() ([]model.Account, error) {
	rows, err := s.db.Query(
		`SELECT id, code, label, type, category, is_active FROM accounts ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		var active int
		if err := rows.Scan(&a.ID, &a.Code, &a.Label, &typ, &a.Category, &active); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(typ)
		a.Active = active != 0
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SetAccountActive flips the active flag. Reports false if id is unknown.
func (s *Store) SetAccountActive(id string, active bool) (bool, error) {
	res, err := s.db.Exec(`UPDATE accounts SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return false, fmt.Errorf("updating account: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) scanAccount(row *sql.Row) (model.Account, bool, error) {
	var a model.Account
	var typ string
	var active int
	err := row.Scan(&a.ID, &a.Code, &a.Label, &typ, &a.Category, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, fmt.Errorf("scanning account: %w", err)
	}
	a.Type = model.AccountType(typ)
	a.Active = active != 0
	return a, true, nil
}
