// Package engine wires the ledger components over one store. It is the
// single seam a CLI, API, or UI consumes.
package engine

import (
	"sync"

	"github.com/grandlivre-dev/grandlivre/internal/accounts"
	"github.com/grandlivre-dev/grandlivre/internal/fiscalyear"
	"github.com/grandlivre-dev/grandlivre/internal/journals"
	"github.com/grandlivre-dev/grandlivre/internal/ledger"
	"github.com/grandlivre-dev/grandlivre/internal/statements"
	"github.com/grandlivre-dev/grandlivre/internal/store"
	"github.com/grandlivre-dev/grandlivre/internal/tax"
)

// Engine bundles every ledger component over a shared store.
type Engine struct {
	Store      *store.Store
	Accounts   *accounts.Service
	Journals   *journals.Service
	Years      *fiscalyear.Manager
	Ledger     *ledger.Service
	Statements *statements.Generator
	Tax        *tax.Service
}

// Open opens the ledger database at path and wires all components. The
// entry ledger and the fiscal year manager share one write mutex so a
// period close excludes in-flight postings.
func Open(path string) (*Engine, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return New(st), nil
}

// New wires an engine over an already open store.
func New(st *store.Store) *Engine {
	var writeMu sync.Mutex

	accountsSvc := accounts.NewService(st)
	journalsSvc := journals.NewService(st)
	years := fiscalyear.NewManager(st, &writeMu)
	taxSvc := tax.NewService(st)
	ledgerSvc := ledger.NewService(st, accountsSvc, journalsSvc, years, taxSvc, &writeMu)
	gen := statements.NewGenerator(st, st, years)

	return &Engine{
		Store:      st,
		Accounts:   accountsSvc,
		Journals:   journalsSvc,
		Years:      years,
		Ledger:     ledgerSvc,
		Statements: gen,
		Tax:        taxSvc,
	}
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.Store.Close()
}
