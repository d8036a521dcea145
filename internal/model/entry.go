package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryLine is one debit or credit amount against one account within an
// entry. Exactly one of Debit/Credit is non-zero on a valid line.
type EntryLine struct {
	ID          string
	AccountID   string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Description string
}

// Entry is one balanced posting: two or more lines whose debits equal
// credits exactly. Created unlocked; locking (manual or via fiscal-year
// close) makes it immutable.
type Entry struct {
	ID          string
	JournalID   string
	Date        time.Time
	Reference   string
	Description string
	Lines       []EntryLine
	Locked      bool
}

// PostedLine is the read-side projection used by statement aggregation:
// one committed line with its parent entry already resolved away.
type PostedLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}
