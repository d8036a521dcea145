// Package ledger validates and stores balanced double-entry postings.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandlivre-dev/grandlivre/internal/model"
	"github.com/grandlivre-dev/grandlivre/internal/store"
)

// EntryStore is the persistence surface the ledger needs. Insert and update
// must commit the entry and all its lines atomically.
type EntryStore interface {
	InsertEntry(model.Entry) error
	UpdateEntry(model.Entry) error
	DeleteEntry(id string) (bool, error)
	GetEntry(id string) (model.Entry, bool, error)
	ListEntries(store.EntryFilter) ([]model.Entry, error)
	SetEntryLocked(id string, locked bool) (bool, error)
}

// DeclarationChecker reports whether a submitted tax declaration's period
// covers a date. Used to defensively block deletion of entries a filed
// declaration may rest on.
type DeclarationChecker interface {
	SubmittedCovering(date time.Time) (bool, error)
}

// Service validates and persists postings. All writes hold mu, which is
// shared with the fiscal year manager so a period close and an in-flight
// posting into that period cannot interleave.
type Service struct {
	store    EntryStore
	accounts AccountResolver
	journals JournalResolver
	years    PeriodResolver
	decls    DeclarationChecker
	mu       *sync.Mutex
}

// NewService creates an entry ledger. mu is the ledger-write mutex shared
// with the fiscal year manager.
func NewService(entries EntryStore, accounts AccountResolver, journals JournalResolver, years PeriodResolver, decls DeclarationChecker, mu *sync.Mutex) *Service {
	return &Service{store: entries, accounts: accounts, journals: journals, years: years, decls: decls, mu: mu}
}

// PostParams holds the fields of a posting.
type PostParams struct {
	JournalID   string
	Date        time.Time
	Reference   string
	Description string
	Lines       []LineInput
}

// Post validates and persists a new entry. The full pipeline runs before
// any write: journal resolution, period gating, line structure, account
// references, and the balance check. The created entry is unlocked.
func (s *Service) Post(p PostParams) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate(p); err != nil {
		return model.Entry{}, err
	}

	e := s.buildEntry(uuid.NewString(), p, false)
	if err := s.store.InsertEntry(e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// Update replaces an unlocked entry's content, running the same validation
// pipeline as Post.
func (s *Service) Update(id string, p PostParams) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.store.GetEntry(id)
	if err != nil {
		return model.Entry{}, err
	}
	if !ok {
		return model.Entry{}, model.Errf(model.KindNotFound, "entry %s", id)
	}
	if existing.Locked {
		return model.Entry{}, model.Errf(model.KindEntryLocked, "entry %s is locked", id)
	}

	if err := s.validate(p); err != nil {
		return model.Entry{}, err
	}

	e := s.buildEntry(id, p, false)
	if err := s.store.UpdateEntry(e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// Lock makes an entry immutable, independent of any fiscal-year cascade.
func (s *Service) Lock(id string) error {
	return s.setLocked(id, true)
}

// Unlock clears an entry's lock. This is an explicit override: it also
// applies to entries locked by a fiscal-year close.
func (s *Service) Unlock(id string) error {
	return s.setLocked(id, false)
}

func (s *Service) setLocked(id string, locked bool) error {
	ok, err := s.store.SetEntryLocked(id, locked)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "entry %s", id)
	}
	return nil
}

// Delete removes an unlocked entry. Entries whose date falls inside a
// submitted declaration's period are protected: the filed figures may rest
// on them.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok, err := s.store.GetEntry(id)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "entry %s", id)
	}
	if e.Locked {
		return model.Errf(model.KindEntryLocked, "entry %s is locked", id)
	}

	covered, err := s.decls.SubmittedCovering(e.Date)
	if err != nil {
		return err
	}
	if covered {
		return model.Errf(model.KindReferencedByDeclaration,
			"entry %s is inside a submitted declaration period", id)
	}

	if _, err := s.store.DeleteEntry(id); err != nil {
		return err
	}
	return nil
}

// Find returns an entry with its lines.
func (s *Service) Find(id string) (model.Entry, error) {
	e, ok, err := s.store.GetEntry(id)
	if err != nil {
		return model.Entry{}, err
	}
	if !ok {
		return model.Entry{}, model.Errf(model.KindNotFound, "entry %s", id)
	}
	return e, nil
}

// List returns entry headers matching the filter.
func (s *Service) List(f store.EntryFilter) ([]model.Entry, error) {
	return s.store.ListEntries(f)
}

// Totals sums the debit and credit sides of a line set.
func Totals(lines []model.EntryLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// validate runs the full pre-write pipeline: journal, period, lines, balance.
func (s *Service) validate(p PostParams) error {
	j, err := s.journals.Find(p.JournalID)
	if err != nil {
		return model.Errf(model.KindInvalidJournal, "unknown journal %s", p.JournalID)
	}
	if !j.Active {
		return model.Errf(model.KindInvalidJournal, "journal %s is inactive", j.Code)
	}

	fy, err := s.years.Covering(p.Date)
	if err != nil {
		return err
	}
	if fy.Closed {
		return model.Errf(model.KindFiscalYearClosed,
			"fiscal year %s..%s is closed", fy.Start.Format("2006-01-02"), fy.End.Format("2006-01-02"))
	}

	if err := checkLines(p.Lines, s.accounts); err != nil {
		return err
	}
	return checkBalance(p.Lines)
}

func (s *Service) buildEntry(id string, p PostParams, locked bool) model.Entry {
	e := model.Entry{
		ID:          id,
		JournalID:   p.JournalID,
		Date:        model.DateOnly(p.Date),
		Reference:   p.Reference,
		Description: p.Description,
		Locked:      locked,
	}
	for _, l := range p.Lines {
		e.Lines = append(e.Lines, model.EntryLine{
			ID:          uuid.NewString(),
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		})
	}
	return e
}
