// Package tax tracks tax declarations and their payments. The engine only
// records declared amounts and lifecycle states; it never computes tax.
// Payments may partially cover a declaration: no check forces the payment
// sum to match the declared amount.
package tax

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// Store is the persistence surface the tracker needs.
type Store interface {
	InsertDeclaration(model.TaxDeclaration) error
	GetDeclaration(id string) (model.TaxDeclaration, bool, error)
	ListDeclarations(status model.DeclarationStatus) ([]model.TaxDeclaration, error)
	SetDeclarationStatus(id string, status model.DeclarationStatus) error
	InsertPayment(model.TaxPayment) error
	GetPayment(id string) (model.TaxPayment, bool, error)
	ListPayments(declarationID string) ([]model.TaxPayment, error)
	SetPaymentStatus(id string, status model.PaymentStatus) error
}

// Service provides declaration and payment operations.
type Service struct {
	store Store
}

// NewService creates a tax obligation tracker.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateDeclaration records a declared amount for a period, starting in
// draft.
func (s *Service) CreateDeclaration(typ model.DeclarationType, period string, amount decimal.Decimal, dueDate time.Time) (model.TaxDeclaration, error) {
	if !typ.Valid() {
		return model.TaxDeclaration{}, fmt.Errorf("unknown declaration type %q", typ)
	}
	if _, _, err := model.PeriodRange(period); err != nil {
		return model.TaxDeclaration{}, err
	}
	if amount.IsNegative() {
		return model.TaxDeclaration{}, fmt.Errorf("declaration amount must not be negative")
	}

	d := model.TaxDeclaration{
		ID:      uuid.NewString(),
		Type:    typ,
		Period:  period,
		Amount:  amount,
		Status:  model.DeclarationDraft,
		DueDate: model.DateOnly(dueDate),
	}
	if err := s.store.InsertDeclaration(d); err != nil {
		return model.TaxDeclaration{}, err
	}
	return d, nil
}

// AdvanceDeclaration moves a declaration one step forward:
// draft -> validated -> submitted. Any other target is rejected.
func (s *Service) AdvanceDeclaration(id string, to model.DeclarationStatus) (model.TaxDeclaration, error) {
	d, ok, err := s.store.GetDeclaration(id)
	if err != nil {
		return model.TaxDeclaration{}, err
	}
	if !ok {
		return model.TaxDeclaration{}, model.Errf(model.KindNotFound, "declaration %s", id)
	}
	if !d.Status.CanAdvanceTo(to) {
		return model.TaxDeclaration{}, model.Errf(model.KindDeclarationStatus,
			"cannot advance declaration from %s to %s", d.Status, to)
	}
	if err := s.store.SetDeclarationStatus(id, to); err != nil {
		return model.TaxDeclaration{}, err
	}
	d.Status = to
	return d, nil
}

// FindDeclaration returns the declaration with the given id.
func (s *Service) FindDeclaration(id string) (model.TaxDeclaration, error) {
	d, ok, err := s.store.GetDeclaration(id)
	if err != nil {
		return model.TaxDeclaration{}, err
	}
	if !ok {
		return model.TaxDeclaration{}, model.Errf(model.KindNotFound, "declaration %s", id)
	}
	return d, nil
}

// ListDeclarations returns declarations, optionally narrowed to one status.
func (s *Service) ListDeclarations(status model.DeclarationStatus) ([]model.TaxDeclaration, error) {
	return s.store.ListDeclarations(status)
}

// CreatePayment records a payment against a declaration, starting pending.
func (s *Service) CreatePayment(declarationID string, amount decimal.Decimal, date time.Time, method model.PaymentMethod, reference string) (model.TaxPayment, error) {
	if !method.Valid() {
		return model.TaxPayment{}, fmt.Errorf("unknown payment method %q", method)
	}
	if amount.IsNegative() {
		return model.TaxPayment{}, fmt.Errorf("payment amount must not be negative")
	}

	_, ok, err := s.store.GetDeclaration(declarationID)
	if err != nil {
		return model.TaxPayment{}, err
	}
	if !ok {
		return model.TaxPayment{}, model.Errf(model.KindInvalidDeclarationRef,
			"declaration %s does not exist", declarationID)
	}

	p := model.TaxPayment{
		ID:            uuid.NewString(),
		DeclarationID: declarationID,
		Amount:        amount,
		PaymentDate:   model.DateOnly(date),
		Method:        method,
		Reference:     reference,
		Status:        model.PaymentPending,
	}
	if err := s.store.InsertPayment(p); err != nil {
		return model.TaxPayment{}, err
	}
	return p, nil
}

// SettlePayment moves a pending payment to completed.
func (s *Service) SettlePayment(id string) (model.TaxPayment, error) {
	return s.finishPayment(id, model.PaymentCompleted)
}

// CancelPayment moves a pending payment to cancelled.
func (s *Service) CancelPayment(id string) (model.TaxPayment, error) {
	return s.finishPayment(id, model.PaymentCancelled)
}

func (s *Service) finishPayment(id string, to model.PaymentStatus) (model.TaxPayment, error) {
	p, ok, err := s.store.GetPayment(id)
	if err != nil {
		return model.TaxPayment{}, err
	}
	if !ok {
		return model.TaxPayment{}, model.Errf(model.KindNotFound, "payment %s", id)
	}
	if p.Status != model.PaymentPending {
		return model.TaxPayment{}, model.Errf(model.KindPaymentStatus,
			"payment %s is %s, a terminal state", id, p.Status)
	}
	if err := s.store.SetPaymentStatus(id, to); err != nil {
		return model.TaxPayment{}, err
	}
	p.Status = to
	return p, nil
}

// ListPayments returns payments recorded against a declaration.
func (s *Service) ListPayments(declarationID string) ([]model.TaxPayment, error) {
	return s.store.ListPayments(declarationID)
}

// SubmittedCovering reports whether any submitted declaration's period
// covers date. The ledger uses it to protect entries a filed declaration
// may rest on.
func (s *Service) SubmittedCovering(date time.Time) (bool, error) {
	decls, err := s.store.ListDeclarations(model.DeclarationSubmitted)
	if err != nil {
		return false, err
	}
	day := model.DateOnly(date)
	for _, d := range decls {
		start, end, err := model.PeriodRange(d.Period)
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return true, nil
		}
	}
	return false, nil
}
