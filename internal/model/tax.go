package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeclarationType classifies tax declarations.
type DeclarationType string

const (
	DeclarationTypeVAT    DeclarationType = "vat"
	DeclarationTypeIncome DeclarationType = "income"
	DeclarationTypeOther  DeclarationType = "other"
)

// Valid reports whether t is a known declaration type.
func (t DeclarationType) Valid() bool {
	switch t {
	case DeclarationTypeVAT, DeclarationTypeIncome, DeclarationTypeOther:
		return true
	}
	return false
}

// DeclarationStatus is the lifecycle state of a declaration. Transitions are
// linear and forward-only: draft -> validated -> submitted.
type DeclarationStatus string

const (
	DeclarationDraft     DeclarationStatus = "draft"
	DeclarationValidated DeclarationStatus = "validated"
	DeclarationSubmitted DeclarationStatus = "submitted"
)

// CanAdvanceTo reports whether to is the single legal next status.
func (s DeclarationStatus) CanAdvanceTo(to DeclarationStatus) bool {
	switch s {
	case DeclarationDraft:
		return to == DeclarationValidated
	case DeclarationValidated:
		return to == DeclarationSubmitted
	}
	return false
}

// PaymentMethod is how a tax payment was made.
type PaymentMethod string

const (
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCheck PaymentMethod = "check"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBank, PaymentMethodCash, PaymentMethodCheck:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a tax payment. Completed and
// cancelled are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// TaxDeclaration tracks a declared amount for a tax period. The engine does
// not compute the amount, only its declaration lifecycle.
type TaxDeclaration struct {
	ID      string
	Type    DeclarationType
	Period  string // "2024", "2024-03" or "2024-Q1"
	Amount  decimal.Decimal
	Status  DeclarationStatus
	DueDate time.Time
}

// TaxPayment is a payment against a declaration.
type TaxPayment struct {
	ID            string
	DeclarationID string
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Method        PaymentMethod
	Reference     string
	Status        PaymentStatus
}

// PeriodRange resolves a declaration period string into its inclusive date
// range. Accepted forms: "2024" (calendar year), "2024-03" (month),
// "2024-Q1" (quarter).
func PeriodRange(period string) (start, end time.Time, err error) {
	parts := strings.SplitN(period, "-", 2)
	year, convErr := strconv.Atoi(parts[0])
	if convErr != nil || year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}

	if len(parts) == 1 {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, -1), nil
	}

	sub := parts[1]
	if len(sub) == 2 && (sub[0] == 'Q' || sub[0] == 'q') {
		q := int(sub[1] - '0')
		if q < 1 || q > 4 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
		}
		start = time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, -1), nil
	}

	month, convErr := strconv.Atoi(sub)
	if convErr != nil || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1), nil
}
