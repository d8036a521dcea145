package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account is one row in the chart of accounts. Code is unique across all
// accounts, active or not. Accounts are never physically deleted once an
// entry line references them; deactivation is the only retirement path.
type Account struct {
	ID       string
	Code     string
	Label    string
	Type     AccountType
	Category string
	Active   bool
}
