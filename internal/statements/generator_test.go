package statements

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlivre-dev/grandlivre/internal/accounts"
	"github.com/grandlivre-dev/grandlivre/internal/fiscalyear"
	"github.com/grandlivre-dev/grandlivre/internal/journals"
	"github.com/grandlivre-dev/grandlivre/internal/ledger"
	"github.com/grandlivre-dev/grandlivre/internal/model"
	"github.com/grandlivre-dev/grandlivre/internal/store"
	"github.com/grandlivre-dev/grandlivre/internal/tax"
)

type fixture struct {
	gen      *Generator
	ledger   *ledger.Service
	accounts map[string]model.Account // by code
	journal  model.Journal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	var mu sync.Mutex
	acctSvc := accounts.NewService(st)
	jnlSvc := journals.NewService(st)
	years := fiscalyear.NewManager(st, &mu)
	taxSvc := tax.NewService(st)
	led := ledger.NewService(st, acctSvc, jnlSvc, years, taxSvc, &mu)

	f := &fixture{
		gen:      NewGenerator(st, st, years),
		ledger:   led,
		accounts: map[string]model.Account{},
	}

	require.NoError(t, accounts.SeedDefaultChart(acctSvc))
	all, err := acctSvc.List(accounts.Filter{})
	require.NoError(t, err)
	for _, a := range all {
		f.accounts[a.Code] = a
	}

	f.journal, err = jnlSvc.Create("OD", "Opérations diverses", model.JournalTypeMisc)
	require.NoError(t, err)

	fy, err := years.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	require.NoError(t, years.SetCurrent(fy.ID))

	return f
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

func (f *fixture) post(t *testing.T, day time.Time, sides map[string]string) {
	t.Helper()
	var lines []ledger.LineInput
	for code, amount := range sides {
		a := f.accounts[code]
		require.NotEmpty(t, a.ID, "unknown fixture account %s", code)
		d := dec(amount)
		l := ledger.LineInput{AccountID: a.ID}
		if d.IsNegative() {
			l.Credit = d.Neg()
		} else {
			l.Debit = d
		}
		lines = append(lines, l)
	}
	_, err := f.ledger.Post(ledger.PostParams{JournalID: f.journal.ID, Date: day, Lines: lines})
	require.NoError(t, err)
}

func (f *fixture) row(tb TrialBalance, code string) TrialBalanceRow {
	for _, r := range tb.Rows {
		if r.Account.Code == code {
			return r
		}
	}
	return TrialBalanceRow{}
}

func TestTrialBalance(t *testing.T) {
	f := newFixture(t)

	// Canonical VAT sale: debit 411 for 1200, credit 707 for 1000 and
	// 44571 for 200.
	f.post(t, date(2024, 1, 15), map[string]string{
		"411": "1200", "707": "-1000", "44571": "-200",
	})

	tb, err := f.gen.TrialBalance(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	assert.True(t, f.row(tb, "411").Balance.Equal(dec("1200")))
	assert.True(t, f.row(tb, "707").Balance.Equal(dec("-1000")))
	assert.True(t, f.row(tb, "44571").Balance.Equal(dec("-200")))

	sum := decimal.Zero
	for _, r := range tb.Rows {
		sum = sum.Add(r.Balance)
	}
	assert.True(t, sum.IsZero(), "balances sum to zero for any period")
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestTrialBalancePeriodFilter(t *testing.T) {
	f := newFixture(t)

	f.post(t, date(2024, 1, 15), map[string]string{"411": "100", "707": "-100"})
	f.post(t, date(2024, 6, 15), map[string]string{"411": "50", "707": "-50"})

	tb, err := f.gen.TrialBalance(date(2024, 1, 1), date(2024, 3, 31))
	require.NoError(t, err)
	assert.True(t, f.row(tb, "411").Debit.Equal(dec("100")), "June entry excluded")
}

func TestIncomeStatement(t *testing.T) {
	f := newFixture(t)

	f.post(t, date(2024, 1, 15), map[string]string{"411": "1200", "707": "-1000", "44571": "-200"})
	f.post(t, date(2024, 2, 10), map[string]string{"606": "300", "512": "-300"})

	is, err := f.gen.IncomeStatement(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	assert.True(t, is.TotalRevenue.Equal(dec("1000")), "revenue is reported as magnitude")
	assert.True(t, is.TotalExpenses.Equal(dec("300")))
	assert.True(t, is.NetResult.Equal(dec("700")))
	require.Len(t, is.Revenue, 1)
	assert.Equal(t, "707", is.Revenue[0].Account.Code)
	require.Len(t, is.Expenses, 1)
	assert.Equal(t, "606", is.Expenses[0].Account.Code)
}

func TestBalanceSheet(t *testing.T) {
	f := newFixture(t)

	// Capital contribution, a sale on credit with VAT, and an expense paid
	// from the bank.
	f.post(t, date(2024, 1, 2), map[string]string{"512": "5000", "101": "-5000"})
	f.post(t, date(2024, 1, 15), map[string]string{"411": "1200", "707": "-1000", "44571": "-200"})
	f.post(t, date(2024, 2, 10), map[string]string{"606": "300", "512": "-300"})

	bs, err := f.gen.BalanceSheet(date(2024, 12, 31))
	require.NoError(t, err)

	// Assets: bank 4700 + clients 1200.
	assert.True(t, bs.TotalAssets.Equal(dec("5900")))
	// Liabilities 200 (VAT) + equity 5000 + net result 700.
	assert.True(t, bs.TotalLiabilitiesAndEquity.Equal(dec("5900")))
	assert.True(t, bs.NetResult.Equal(dec("700")))
	assert.True(t, bs.TotalAssets.Equal(bs.TotalLiabilitiesAndEquity),
		"fundamental reconciliation identity")

	require.Len(t, bs.Liabilities, 1)
	assert.Equal(t, "44571", bs.Liabilities[0].Account.Code)
	assert.True(t, bs.Liabilities[0].Amount.Equal(dec("200")), "liabilities show positive magnitudes")
}

func TestBalanceSheetEmptyLedger(t *testing.T) {
	f := newFixture(t)

	bs, err := f.gen.BalanceSheet(date(2024, 12, 31))
	require.NoError(t, err)
	assert.True(t, bs.TotalAssets.IsZero())
	assert.True(t, bs.TotalLiabilitiesAndEquity.IsZero())
	assert.Empty(t, bs.Assets)
}
