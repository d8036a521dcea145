package tax

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlivre-dev/grandlivre/internal/model"
	"github.com/grandlivre-dev/grandlivre/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateDeclaration(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-Q1", dec("1500"), date(2024, 4, 30))
	require.NoError(t, err)
	assert.Equal(t, model.DeclarationDraft, d.Status)

	got, err := svc.FindDeclaration(d.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("1500")))
}

func TestCreateDeclarationInvalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateDeclaration(model.DeclarationType("payroll"), "2024", dec("10"), date(2024, 12, 31))
	assert.Error(t, err, "unknown type")

	_, err = svc.CreateDeclaration(model.DeclarationTypeVAT, "whenever", dec("10"), date(2024, 12, 31))
	assert.Error(t, err, "unparseable period")

	_, err = svc.CreateDeclaration(model.DeclarationTypeVAT, "2024", dec("-10"), date(2024, 12, 31))
	assert.Error(t, err, "negative amount")
}

func TestAdvanceDeclaration(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-Q1", dec("1500"), date(2024, 4, 30))
	require.NoError(t, err)

	d, err = svc.AdvanceDeclaration(d.ID, model.DeclarationValidated)
	require.NoError(t, err)
	assert.Equal(t, model.DeclarationValidated, d.Status)

	d, err = svc.AdvanceDeclaration(d.ID, model.DeclarationSubmitted)
	require.NoError(t, err)
	assert.Equal(t, model.DeclarationSubmitted, d.Status)
}

func TestAdvanceDeclarationSkipsStep(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeIncome, "2024", dec("8000"), date(2025, 5, 31))
	require.NoError(t, err)

	_, err = svc.AdvanceDeclaration(d.ID, model.DeclarationSubmitted)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDeclarationStatus), "draft cannot skip to submitted")
}

func TestAdvanceDeclarationBackwards(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-03", dec("400"), date(2024, 4, 30))
	require.NoError(t, err)
	_, err = svc.AdvanceDeclaration(d.ID, model.DeclarationValidated)
	require.NoError(t, err)

	_, err = svc.AdvanceDeclaration(d.ID, model.DeclarationDraft)
	assert.True(t, errors.Is(err, model.ErrDeclarationStatus))

	_, err = svc.AdvanceDeclaration("missing", model.DeclarationValidated)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestCreatePayment(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-Q1", dec("1500"), date(2024, 4, 30))
	require.NoError(t, err)

	p, err := svc.CreatePayment(d.ID, dec("1500"), date(2024, 4, 15), model.PaymentMethodBank, "VIR-7")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, p.Status)

	payments, err := svc.ListPayments(d.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestCreatePaymentUnknownDeclaration(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreatePayment("missing", dec("10"), date(2024, 1, 1), model.PaymentMethodCash, "")
	assert.True(t, errors.Is(err, model.ErrInvalidDeclarationRef))
}

func TestPartialPaymentsAccepted(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-Q2", dec("1000"), date(2024, 7, 31))
	require.NoError(t, err)

	// The tracker records payments as given; nothing forces them to sum to
	// the declared amount.
	_, err = svc.CreatePayment(d.ID, dec("400"), date(2024, 7, 1), model.PaymentMethodBank, "")
	require.NoError(t, err)
	_, err = svc.CreatePayment(d.ID, dec("300"), date(2024, 7, 15), model.PaymentMethodCheck, "")
	require.NoError(t, err)

	payments, err := svc.ListPayments(d.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestSettleAndCancelPayment(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeOther, "2024", dec("100"), date(2024, 12, 31))
	require.NoError(t, err)

	p1, err := svc.CreatePayment(d.ID, dec("60"), date(2024, 6, 1), model.PaymentMethodBank, "")
	require.NoError(t, err)
	p2, err := svc.CreatePayment(d.ID, dec("40"), date(2024, 6, 2), model.PaymentMethodCash, "")
	require.NoError(t, err)

	p1, err = svc.SettlePayment(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, p1.Status)

	p2, err = svc.CancelPayment(p2.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCancelled, p2.Status)

	// Terminal states reject further transitions.
	_, err = svc.SettlePayment(p1.ID)
	assert.True(t, errors.Is(err, model.ErrPaymentStatus))
	_, err = svc.CancelPayment(p1.ID)
	assert.True(t, errors.Is(err, model.ErrPaymentStatus))
	_, err = svc.SettlePayment(p2.ID)
	assert.True(t, errors.Is(err, model.ErrPaymentStatus))
}

func TestSubmittedCovering(t *testing.T) {
	svc := newTestService(t)

	d, err := svc.CreateDeclaration(model.DeclarationTypeVAT, "2024-Q1", dec("200"), date(2024, 4, 30))
	require.NoError(t, err)

	covered, err := svc.SubmittedCovering(date(2024, 2, 10))
	require.NoError(t, err)
	assert.False(t, covered, "draft declarations do not protect entries")

	_, err = svc.AdvanceDeclaration(d.ID, model.DeclarationValidated)
	require.NoError(t, err)
	_, err = svc.AdvanceDeclaration(d.ID, model.DeclarationSubmitted)
	require.NoError(t, err)

	covered, err = svc.SubmittedCovering(date(2024, 2, 10))
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = svc.SubmittedCovering(date(2024, 5, 10))
	require.NoError(t, err)
	assert.False(t, covered, "outside the declared period")
}
