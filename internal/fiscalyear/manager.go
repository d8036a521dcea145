// Package fiscalyear owns accounting-period boundaries and the
// open/current/closed state machine that gates the ledger.
package fiscalyear

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// Store is the persistence surface the manager needs. CloseFiscalYear must
// flip the closed flag and lock every entry in range in one transaction.
type Store interface {
	InsertFiscalYear(model.FiscalYear) error
	GetFiscalYear(id string) (model.FiscalYear, bool, error)
	ListFiscalYears() ([]model.FiscalYear, error)
	SetCurrentFiscalYear(id string) error
	CloseFiscalYear(model.FiscalYear) error
	ReopenFiscalYear(id string) error
}

// Manager owns fiscal-year state. Close holds mu, the ledger-write mutex
// shared with the entry ledger, so no posting can slip into a period after
// its close cascade has begun.
type Manager struct {
	store Store
	mu    *sync.Mutex
}

// NewManager creates a fiscal year manager. mu is the shared ledger-write
// mutex.
func NewManager(store Store, mu *sync.Mutex) *Manager {
	return &Manager{store: store, mu: mu}
}

// Create adds a fiscal year. The period must not overlap any existing one.
func (m *Manager) Create(start, end time.Time) (model.FiscalYear, error) {
	start, end = model.DateOnly(start), model.DateOnly(end)
	if end.Before(start) {
		return model.FiscalYear{}, fmt.Errorf("fiscal year start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.store.ListFiscalYears()
	if err != nil {
		return model.FiscalYear{}, err
	}
	for _, fy := range existing {
		if fy.Overlaps(start, end) {
			return model.FiscalYear{}, model.Errf(model.KindOverlappingPeriod,
				"period %s..%s overlaps fiscal year %s..%s",
				start.Format("2006-01-02"), end.Format("2006-01-02"),
				fy.Start.Format("2006-01-02"), fy.End.Format("2006-01-02"))
		}
	}

	fy := model.FiscalYear{ID: uuid.NewString(), Start: start, End: end}
	if err := m.store.InsertFiscalYear(fy); err != nil {
		return model.FiscalYear{}, err
	}
	return fy, nil
}

// SetCurrent promotes a fiscal year to current, demoting any previous
// current year to open. A closed year cannot become current.
func (m *Manager) SetCurrent(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fy, ok, err := m.store.GetFiscalYear(id)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "fiscal year %s", id)
	}
	if fy.Closed {
		return model.Errf(model.KindFiscalYearClosed, "fiscal year %s is closed", id)
	}
	return m.store.SetCurrentFiscalYear(id)
}

// Close marks the year closed and locks every entry dated inside its range.
// The mutex guarantees the cascade sees a consistent set of entries and
// admits no new posting into the period while it runs. Closing an already
// closed year is a no-op.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	fy, ok, err := m.store.GetFiscalYear(id)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "fiscal year %s", id)
	}
	if fy.Closed {
		return nil
	}
	return m.store.CloseFiscalYear(fy)
}

// Reopen clears the closed flag. Entries locked by the preceding close stay
// locked; unlocking them is a deliberate per-entry action on the ledger.
func (m *Manager) Reopen(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok, err := m.store.GetFiscalYear(id)
	if err != nil {
		return err
	}
	if !ok {
		return model.Errf(model.KindNotFound, "fiscal year %s", id)
	}
	return m.store.ReopenFiscalYear(id)
}

// Find returns the fiscal year with the given id.
func (m *Manager) Find(id string) (model.FiscalYear, error) {
	fy, ok, err := m.store.GetFiscalYear(id)
	if err != nil {
		return model.FiscalYear{}, err
	}
	if !ok {
		return model.FiscalYear{}, model.Errf(model.KindNotFound, "fiscal year %s", id)
	}
	return fy, nil
}

// List returns all fiscal years ordered by start date.
func (m *Manager) List() ([]model.FiscalYear, error) {
	return m.store.ListFiscalYears()
}

// Covering returns the fiscal year whose period contains date.
func (m *Manager) Covering(date time.Time) (model.FiscalYear, error) {
	years, err := m.store.ListFiscalYears()
	if err != nil {
		return model.FiscalYear{}, err
	}
	for _, fy := range years {
		if fy.Covers(date) {
			return fy, nil
		}
	}
	return model.FiscalYear{}, model.Errf(model.KindNoFiscalYear,
		"no fiscal year covers %s", date.Format("2006-01-02"))
}

// Current returns the current fiscal year, if one is set.
func (m *Manager) Current() (model.FiscalYear, bool, error) {
	years, err := m.store.ListFiscalYears()
	if err != nil {
		return model.FiscalYear{}, false, err
	}
	for _, fy := range years {
		if fy.Current {
			return fy, true, nil
		}
	}
	return model.FiscalYear{}, false, nil
}
