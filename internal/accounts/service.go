// Package accounts owns the chart of accounts.
package accounts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// Store is the persistence surface the registry needs.
type Store interface {
	InsertAccount(model.Account) error
	GetAccount(id string) (model.Account, bool, error)
	GetAccountByCode(code string) (model.Account, bool, error)
	ListAccounts() ([]model.Account, error)
	SetAccountActive(id string, active bool) (bool, error)
}

// Service provides chart-of-accounts operations.
type Service struct {
	store Store

	// mu serializes create against the duplicate-code fast path; the UNIQUE
	// column in the store is the authoritative guard.
	mu sync.Mutex
}

// NewService creates an account registry over a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds an account to the chart. The code must be unused by any
// account, active or not.
func (s *Service) Create(code, label string, typ model.AccountType, category string) (model.Account, error) {
	if code == "" {
		return model.Account{}, fmt.Errorf("account code is required")
	}
	if !typ.Valid() {
		return model.Account{}, fmt.Errorf("unknown account type %q", typ)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists, err := s.store.GetAccountByCode(code); err != nil {
		return model.Account{}, err
	} else if exists {
		return model.Account{}, model.Errf(model.KindDuplicateCode, "account code %q already in use", code)
	}

	a := model.Account{
		ID:       uuid.NewString(),
		Code:     code,
		Label:    label,
		Type:     typ,
		Category: category,
		Active:   true,
	}
	if err := s.store.InsertAccount(a); err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// SetActive flips the activation flag. Accounts are never physically
// deleted; deactivation retires them from new postings.
func (s *Service) SetActive(id string, active bool) error {
	ok, err := s.store.SetAccountActive(id, active)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "account %s", id)
	}
	return nil
}

// Find returns the account with the given id.
func (s *Service) Find(id string) (model.Account, error) {
	a, ok, err := s.store.GetAccount(id)
	if err != nil {
		return model.Account{}, err
	}
	if !ok {
		return model.Account{}, model.Errf(model.KindNotFound, "account %s", id)
	}
	return a, nil
}

// FindByCode returns the account with the given code.
func (s *Service) FindByCode(code string) (model.Account, error) {
	a, ok, err := s.store.GetAccountByCode(code)
	if err != nil {
		return model.Account{}, err
	}
	if !ok {
		return model.Account{}, model.Errf(model.KindNotFound, "account code %s", code)
	}
	return a, nil
}

// Filter narrows List. Zero values mean no constraint.
type Filter struct {
	Type       model.AccountType
	ActiveOnly bool
	Search     string // case-insensitive match over code and label
}

// List returns accounts matching the filter, ordered by code.
func (s *Service) List(f Filter) ([]model.Account, error) {
	all, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(f.Search)
	var out []model.Account
	for _, a := range all {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.ActiveOnly && !a.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Code), search) &&
			!strings.Contains(strings.ToLower(a.Label), search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
