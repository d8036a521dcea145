package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// InsertDeclaration persists a new tax declaration.
func (s *Store) InsertDeclaration(d model.TaxDeclaration) error {
	_, err := s.db.Exec(
		`INSERT INTO tax_declarations (id, type, period, amount, status, due_date) VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, string(d.Type), d.Period, d.Amount.String(), string(d.Status), encodeDate(d.DueDate),
	)
	if err != nil {
		return fmt.Errorf("inserting declaration: %w", err)
	}
	return nil
}

// GetDeclaration returns the declaration with the given id.
func (s *Store) GetDeclaration(id string) (model.TaxDeclaration, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, type, period, amount, status, due_date FROM tax_declarations WHERE id = ?`, id)
	d, err := scanDeclaration(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaxDeclaration{}, false, nil
	}
	if err != nil {
		return model.TaxDeclaration{}, false, err
	}
	return d, true, nil
}

// ListDeclarations returns declarations, optionally filtered by status,
// ordered by due date.
func (s *Store) ListDeclarations(status model.DeclarationStatus) ([]model.TaxDeclaration, error) {
	query := `SELECT id, type, period, amount, status, due_date FROM tax_declarations`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY due_date`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing declarations: %w", err)
	}
	defer rows.Close()

	var decls []model.TaxDeclaration
	for rows.Next() {
		d, err := scanDeclaration(rows.Scan)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

// SetDeclarationStatus updates a declaration's status.
func (s *Store) SetDeclarationStatus(id string, status model.DeclarationStatus) error {
	_, err := s.db.Exec(`UPDATE tax_declarations SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating declaration status: %w", err)
	}
	return nil
}

// InsertPayment persists a new tax payment.
func (s *Store) InsertPayment(p model.TaxPayment) error {
	_, err := s.db.Exec(
		`INSERT INTO tax_payments (id, declaration_id, amount, payment_date, method, reference, status) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.DeclarationID, p.Amount.String(), encodeDate(p.PaymentDate), string(p.Method), p.Reference, string(p.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

// GetPayment returns the payment with the given id.
func (s *Store) GetPayment(id string) (model.TaxPayment, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, declaration_id, amount, payment_date, method, reference, status FROM tax_payments WHERE id = ?`, id)
	p, err := scanPayment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaxPayment{}, false, nil
	}
	if err != nil {
		return model.TaxPayment{}, false, err
	}
	return p, true, nil
}

// ListPayments returns payments for a declaration ordered by payment date.
func (s *Store) ListPayments(declarationID string) ([]model.TaxPayment, error) {
	rows, err := s.db.Query(
		`SELECT id, declaration_id, amount, payment_date, method, reference, status FROM tax_payments WHERE declaration_id = ? ORDER BY payment_date`,
		declarationID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []model.TaxPayment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SetPaymentStatus updates a payment's status.
func (s *Store) SetPaymentStatus(id string, status model.PaymentStatus) error {
	_, err := s.db.Exec(`UPDATE tax_payments SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	return nil
}

func scanDeclaration(scan func(...any) error) (model.TaxDeclaration, error) {
	var d model.TaxDeclaration
	var typ, amount, status, due string
	if err := scan(&d.ID, &typ, &d.Period, &amount, &status, &due); err != nil {
		return model.TaxDeclaration{}, err
	}
	d.Type = model.DeclarationType(typ)
	d.Status = model.DeclarationStatus(status)
	var err error
	if d.Amount, err = decodeAmount(amount); err != nil {
		return model.TaxDeclaration{}, err
	}
	if d.DueDate, err = decodeDate(due); err != nil {
		return model.TaxDeclaration{}, err
	}
	return d, nil
}

func scanPayment(scan func(...any) error) (model.TaxPayment, error) {
	var p model.TaxPayment
	var amount, date, method, status string
	if err := scan(&p.ID, &p.DeclarationID, &amount, &date, &method, &p.Reference, &status); err != nil {
		return model.TaxPayment{}, err
	}
	p.Method = model.PaymentMethod(method)
	p.Status = model.PaymentStatus(status)
	var err error
	if p.Amount, err = decodeAmount(amount); err != nil {
		return model.TaxPayment{}, err
	}
	if p.PaymentDate, err = decodeDate(date); err != nil {
		return model.TaxPayment{}, err
	}
	return p, nil
}
