package model

// JournalType classifies posting channels.
type JournalType string

const (
	JournalTypeSales     JournalType = "sales"
	JournalTypePurchases JournalType = "purchases"
	JournalTypeTreasury  JournalType = "treasury"
	JournalTypeMisc      JournalType = "misc"
)

// Valid reports whether t is one of the four journal types.
func (t JournalType) Valid() bool {
	switch t {
	case JournalTypeSales, JournalTypePurchases, JournalTypeTreasury, JournalTypeMisc:
		return true
	}
	return false
}

// Journal is a named posting channel. Same uniqueness and soft-delete rules
// as Account.
type Journal struct {
	ID     string
	Code   string
	Label  string
	Type   JournalType
	Active bool
}
