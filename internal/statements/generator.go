// Package statements derives financial reports from committed ledger state:
// trial balance, balance sheet, income statement. It is read-only and runs
// without the ledger-write mutex.
package statements

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// LineSource streams committed entry lines for a date range. A zero bound
// is open-ended.
type LineSource interface {
	PostedLines(from, to time.Time) ([]model.PostedLine, error)
}

// AccountSource lists the chart of accounts.
type AccountSource interface {
	ListAccounts() ([]model.Account, error)
}

// YearSource locates the fiscal year anchoring the balance-sheet net result.
type YearSource interface {
	Covering(date time.Time) (model.FiscalYear, error)
	Current() (model.FiscalYear, bool, error)
}

// Generator produces derived statements.
type Generator struct {
	lines    LineSource
	accounts AccountSource
	years    YearSource
}

// NewGenerator creates a statement generator.
func NewGenerator(lines LineSource, accounts AccountSource, years YearSource) *Generator {
	return &Generator{lines: lines, accounts: accounts, years: years}
}

// TrialBalanceRow is one account's movement over a period. Balance is
// debit minus credit, so credit-natured accounts carry negative balances.
type TrialBalanceRow struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Balance decimal.Decimal
}

// TrialBalance is the per-account debit/credit totals for a period. The sum
// of all balances is zero for any period of a valid ledger.
type TrialBalance struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// TrialBalance sums debits and credits per account across every entry dated
// in [from, to]. Every account appears, including those without movement;
// rows are ordered by account code.
func (g *Generator) TrialBalance(from, to time.Time) (TrialBalance, error) {
	accounts, err := g.accounts.ListAccounts()
	if err != nil {
		return TrialBalance{}, err
	}
	lines, err := g.lines.PostedLines(from, to)
	if err != nil {
		return TrialBalance{}, err
	}

	type sums struct{ debit, credit decimal.Decimal }
	byAccount := make(map[string]*sums, len(accounts))
	for _, a := range accounts {
		byAccount[a.ID] = &sums{debit: decimal.Zero, credit: decimal.Zero}
	}
	for _, l := range lines {
		s, ok := byAccount[l.AccountID]
		if !ok {
			// A line against an account missing from the chart means the
			// referential-integrity guarantee broke upstream.
			return TrialBalance{}, model.Errf(model.KindReconciliation,
				"posted line references unknown account %s", l.AccountID)
		}
		s.debit = s.debit.Add(l.Debit)
		s.credit = s.credit.Add(l.Credit)
	}

	tb := TrialBalance{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, a := range accounts {
		s := byAccount[a.ID]
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			Account: a,
			Debit:   s.debit,
			Credit:  s.credit,
			Balance: s.debit.Sub(s.credit),
		})
		tb.TotalDebit = tb.TotalDebit.Add(s.debit)
		tb.TotalCredit = tb.TotalCredit.Add(s.credit)
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].Account.Code < tb.Rows[j].Account.Code })
	return tb, nil
}

// BalanceLine is one account's contribution to a balance-sheet section,
// presented with its natural sign (liability and equity magnitudes are
// positive).
type BalanceLine struct {
	Account model.Account
	Amount  decimal.Decimal
}

// BalanceSheet is the assets vs. liabilities+equity snapshot as of a date.
// NetResult is the current period's income folded into equity as a plug
// line.
type BalanceSheet struct {
	AsOf                      time.Time
	Assets                    []BalanceLine
	Liabilities               []BalanceLine
	Equity                    []BalanceLine
	NetResult                 decimal.Decimal
	TotalAssets               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
}

// BalanceSheet aggregates all entries through asOf and partitions balances
// by account type. The net result since the start of the governing fiscal
// year is added to equity. A mismatch between the two totals is a ledger
// integrity defect, reported as a reconciliation error.
func (g *Generator) BalanceSheet(asOf time.Time) (BalanceSheet, error) {
	tb, err := g.TrialBalance(time.Time{}, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}

	periodStart, err := g.resultPeriodStart(asOf)
	if err != nil {
		return BalanceSheet{}, err
	}
	is, err := g.IncomeStatement(periodStart, asOf)
	if err != nil {
		return BalanceSheet{}, err
	}

	bs := BalanceSheet{
		AsOf:                      model.DateOnly(asOf),
		NetResult:                 is.NetResult,
		TotalAssets:               decimal.Zero,
		TotalLiabilitiesAndEquity: decimal.Zero,
	}
	for _, row := range tb.Rows {
		if row.Balance.IsZero() {
			continue
		}
		switch row.Account.Type {
		case model.AccountTypeAsset:
			bs.Assets = append(bs.Assets, BalanceLine{Account: row.Account, Amount: row.Balance})
			bs.TotalAssets = bs.TotalAssets.Add(row.Balance)
		case model.AccountTypeLiability:
			bs.Liabilities = append(bs.Liabilities, BalanceLine{Account: row.Account, Amount: row.Balance.Neg()})
			bs.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity.Add(row.Balance.Neg())
		case model.AccountTypeEquity:
			bs.Equity = append(bs.Equity, BalanceLine{Account: row.Account, Amount: row.Balance.Neg()})
			bs.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity.Add(row.Balance.Neg())
		}
	}
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilitiesAndEquity.Add(bs.NetResult)

	if !bs.TotalAssets.Equal(bs.TotalLiabilitiesAndEquity) {
		return BalanceSheet{}, model.Errf(model.KindReconciliation,
			"assets (%s) != liabilities+equity (%s)",
			bs.TotalAssets.StringFixed(2), bs.TotalLiabilitiesAndEquity.StringFixed(2))
	}
	return bs, nil
}

// IncomeStatement is revenue vs. expense over a period. Amounts are
// magnitudes; NetResult is total revenue minus total expenses.
type IncomeStatement struct {
	From          time.Time
	To            time.Time
	Revenue       []BalanceLine
	Expenses      []BalanceLine
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	NetResult     decimal.Decimal
}

// IncomeStatement partitions the period's trial balance into revenue and
// expense accounts. Revenue accounts carry natural credit balances, so their
// debit-minus-credit balance is negated to a magnitude.
func (g *Generator) IncomeStatement(from, to time.Time) (IncomeStatement, error) {
	tb, err := g.TrialBalance(from, to)
	if err != nil {
		return IncomeStatement{}, err
	}

	is := IncomeStatement{
		From:          model.DateOnly(from),
		To:            model.DateOnly(to),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range tb.Rows {
		if row.Balance.IsZero() {
			continue
		}
		switch row.Account.Type {
		case model.AccountTypeRevenue:
			is.Revenue = append(is.Revenue, BalanceLine{Account: row.Account, Amount: row.Balance.Neg()})
			is.TotalRevenue = is.TotalRevenue.Add(row.Balance.Neg())
		case model.AccountTypeExpense:
			is.Expenses = append(is.Expenses, BalanceLine{Account: row.Account, Amount: row.Balance})
			is.TotalExpenses = is.TotalExpenses.Add(row.Balance)
		}
	}
	is.NetResult = is.TotalRevenue.Sub(is.TotalExpenses)
	return is, nil
}

// resultPeriodStart picks the start of the period whose net result plugs
// into the balance sheet: the fiscal year covering asOf, falling back to the
// current fiscal year, then to January 1 of asOf's year.
func (g *Generator) resultPeriodStart(asOf time.Time) (time.Time, error) {
	fy, err := g.years.Covering(asOf)
	if err == nil {
		return fy.Start, nil
	}
	if !errors.Is(err, model.ErrNoFiscalYear) {
		return time.Time{}, err
	}
	fy, ok, err := g.years.Current()
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return fy.Start, nil
	}
	return time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
}
