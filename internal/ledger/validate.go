package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// LineInput is one debit or credit side of a posting being validated.
type LineInput struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// AccountResolver resolves account references during validation.
type AccountResolver interface {
	Find(id string) (model.Account, error)
}

// JournalResolver resolves journal references during validation.
type JournalResolver interface {
	Find(id string) (model.Journal, error)
}

// PeriodResolver resolves the fiscal year covering a posting date.
type PeriodResolver interface {
	Covering(date time.Time) (model.FiscalYear, error)
}

var hundred = decimal.NewFromInt(100)

// checkLines enforces the structural line invariants: a non-empty line set,
// every account resolvable and active, exactly one of debit/credit non-zero
// per line, no negatives, and at most 2 decimal places.
func checkLines(lines []LineInput, accounts AccountResolver) error {
	if len(lines) == 0 {
		return model.Errf(model.KindEmptyEntry, "entry has no lines")
	}

	for i, l := range lines {
		a, err := accounts.Find(l.AccountID)
		if err != nil {
			return model.Errf(model.KindInvalidAccountReference, "line %d: unknown account %s", i+1, l.AccountID)
		}
		if !a.Active {
			return model.Errf(model.KindInvalidAccountReference, "line %d: account %s is inactive", i+1, a.Code)
		}

		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return model.Errf(model.KindMalformedLine, "line %d: negative amount", i+1)
		}
		hasDebit := !l.Debit.IsZero()
		hasCredit := !l.Credit.IsZero()
		if hasDebit == hasCredit {
			return model.Errf(model.KindMalformedLine, "line %d: exactly one of debit or credit must be set", i+1)
		}
		if !exactCents(l.Debit) || !exactCents(l.Credit) {
			return model.Errf(model.KindMalformedLine, "line %d: amount has more than 2 decimal places", i+1)
		}
	}
	return nil
}

// checkBalance enforces the double-entry identity: debits equal credits
// exactly, no rounding drift.
func checkBalance(lines []LineInput) error {
	totalDebit, totalCredit := totals(lines)
	if !totalDebit.Equal(totalCredit) {
		return model.Errf(model.KindUnbalancedEntry,
			"debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return nil
}

func totals(lines []LineInput) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

func exactCents(d decimal.Decimal) bool {
	cents := d.Mul(hundred)
	return cents.Equal(cents.Floor())
}
