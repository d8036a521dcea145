package model

import "fmt"

// ErrorKind identifies one failure class of the ledger engine. Every
// validation failure is detected before any write, so no kind ever implies a
// partially committed state.
type ErrorKind string

const (
	KindDuplicateCode           ErrorKind = "duplicate_code"
	KindNotFound                ErrorKind = "not_found"
	KindInvalidJournal          ErrorKind = "invalid_journal"
	KindInvalidAccountReference ErrorKind = "invalid_account_reference"
	KindEmptyEntry              ErrorKind = "empty_entry"
	KindMalformedLine           ErrorKind = "malformed_line"
	KindUnbalancedEntry         ErrorKind = "unbalanced_entry"
	KindNoFiscalYear            ErrorKind = "no_fiscal_year"
	KindFiscalYearClosed        ErrorKind = "fiscal_year_closed"
	KindEntryLocked             ErrorKind = "entry_locked"
	KindOverlappingPeriod       ErrorKind = "overlapping_period"
	KindDeclarationStatus       ErrorKind = "declaration_status"
	KindPaymentStatus           ErrorKind = "payment_status"
	KindInvalidDeclarationRef   ErrorKind = "invalid_declaration_reference"
	KindReferencedByDeclaration ErrorKind = "referenced_by_declaration"
	KindReconciliation          ErrorKind = "reconciliation"
)

// Error is a classified engine error. Match on kind with errors.Is against
// the exported sentinels below.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is matches any *Error with the same kind, so sentinel comparison ignores
// the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errf builds a classified error with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Kind sentinels for errors.Is matching.
var (
	ErrDuplicateCode           = &Error{Kind: KindDuplicateCode}
	ErrNotFound                = &Error{Kind: KindNotFound}
	ErrInvalidJournal          = &Error{Kind: KindInvalidJournal}
	ErrInvalidAccountReference = &Error{Kind: KindInvalidAccountReference}
	ErrEmptyEntry              = &Error{Kind: KindEmptyEntry}
	ErrMalformedLine           = &Error{Kind: KindMalformedLine}
	ErrUnbalancedEntry         = &Error{Kind: KindUnbalancedEntry}
	ErrNoFiscalYear            = &Error{Kind: KindNoFiscalYear}
	ErrFiscalYearClosed        = &Error{Kind: KindFiscalYearClosed}
	ErrEntryLocked             = &Error{Kind: KindEntryLocked}
	ErrOverlappingPeriod       = &Error{Kind: KindOverlappingPeriod}
	ErrDeclarationStatus       = &Error{Kind: KindDeclarationStatus}
	ErrPaymentStatus           = &Error{Kind: KindPaymentStatus}
	ErrInvalidDeclarationRef   = &Error{Kind: KindInvalidDeclarationRef}
	ErrReferencedByDeclaration = &Error{Kind: KindReferencedByDeclaration}
	ErrReconciliation          = &Error{Kind: KindReconciliation}
)
