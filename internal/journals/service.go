// Package journals owns the named posting channels (sales, purchases,
// treasury, misc).
package journals

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// Store is the persistence surface the registry needs.
type Store interface {
	InsertJournal(model.Journal) error
	GetJournal(id string) (model.Journal, bool, error)
	GetJournalByCode(code string) (model.Journal, bool, error)
	ListJournals() ([]model.Journal, error)
	SetJournalActive(id string, active bool) (bool, error)
}

// Service provides journal registry operations. Same contract shape as the
// account registry, keyed on journal code.
type Service struct {
	store Store
	mu    sync.Mutex
}

// NewService creates a journal registry over a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create adds a journal. The code must be unused by any journal, active or
// not.
func (s *Service) Create(code, label string, typ model.JournalType) (model.Journal, error) {
	if code == "" {
		return model.Journal{}, fmt.Errorf("journal code is required")
	}
	if !typ.Valid() {
		return model.Journal{}, fmt.Errorf("unknown journal type %q", typ)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists, err := s.store.GetJournalByCode(code); err != nil {
		return model.Journal{}, err
	} else if exists {
		return model.Journal{}, model.Errf(model.KindDuplicateCode, "journal code %q already in use", code)
	}

	j := model.Journal{
		ID:     uuid.NewString(),
		Code:   code,
		Label:  label,
		Type:   typ,
		Active: true,
	}
	if err := s.store.InsertJournal(j); err != nil {
		return model.Journal{}, err
	}
	return j, nil
}

// SetActive flips the activation flag.
func (s *Service) SetActive(id string, active bool) error {
	ok, err := s.store.SetJournalActive(id, active)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "journal %s", id)
	}
	return nil
}

// Find returns the journal with the given id.
func (s *Service) Find(id string) (model.Journal, error) {
	j, ok, err := s.store.GetJournal(id)
	if err != nil {
		return model.Journal{}, err
	}
	if !ok {
		return model.Journal{}, model.Errf(model.KindNotFound, "journal %s", id)
	}
	return j, nil
}

// FindByCode returns the journal with the given code.
func (s *Service) FindByCode(code string) (model.Journal, error) {
	j, ok, err := s.store.GetJournalByCode(code)
	if err != nil {
		return model.Journal{}, err
	}
	if !ok {
		return model.Journal{}, model.Errf(model.KindNotFound, "journal code %s", code)
	}
	return j, nil
}

// Filter narrows List. Zero values mean no constraint.
type Filter struct {
	Type       model.JournalType
	ActiveOnly bool
	Search     string
}

// List returns journals matching the filter, ordered by code.
func (s *Service) List(f Filter) ([]model.Journal, error) {
	all, err := s.store.ListJournals()
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(f.Search)
	var out []model.Journal
	for _, j := range all {
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		if f.ActiveOnly && !j.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(j.Code), search) &&
			!strings.Contains(strings.ToLower(j.Label), search) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

// DefaultJournals returns the standard four posting channels.
func DefaultJournals() []model.Journal {
	return []model.Journal{
		{Code: "VE", Label: "Ventes", Type: model.JournalTypeSales},
		{Code: "AC", Label: "Achats", Type: model.JournalTypePurchases},
		{Code: "BQ", Label: "Banque", Type: model.JournalTypeTreasury},
		{Code: "OD", Label: "Opérations diverses", Type: model.JournalTypeMisc},
	}
}

// SeedDefaultJournals creates the standard journals, skipping codes that
// already exist.
func SeedDefaultJournals(s *Service) error {
	for _, j := range DefaultJournals() {
		if _, err := s.Create(j.Code, j.Label, j.Type); err != nil {
			if errors.Is(err, model.ErrDuplicateCode) {
				continue
			}
			return err
		}
	}
	return nil
}
