package accounts

import (
	"errors"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

// Seed describes one account in a starter chart.
type Seed struct {
	Code     string
	Label    string
	Type     model.AccountType
	Category string
}

// DefaultChart is a starter chart of accounts using French PCG codes (411
// clients, 707 ventes, 44571 TVA collectée, ...).
func DefaultChart() []Seed {
	return []Seed{
		{"101", "Capital", model.AccountTypeEquity, "capital"},
		{"401", "Fournisseurs", model.AccountTypeLiability, "dettes"},
		{"411", "Clients", model.AccountTypeAsset, "créances"},
		{"44566", "TVA déductible", model.AccountTypeAsset, "taxes"},
		{"44571", "TVA collectée", model.AccountTypeLiability, "taxes"},
		{"512", "Banque", model.AccountTypeAsset, "trésorerie"},
		{"530", "Caisse", model.AccountTypeAsset, "trésorerie"},
		{"606", "Achats non stockés", model.AccountTypeExpense, "achats"},
		{"641", "Rémunérations du personnel", model.AccountTypeExpense, "personnel"},
		{"706", "Prestations de services", model.AccountTypeRevenue, "ventes"},
		{"707", "Ventes de marchandises", model.AccountTypeRevenue, "ventes"},
	}
}

// SeedDefaultChart creates the default chart through the registry, skipping
// codes that already exist.
func SeedDefaultChart(s *Service) error {
	for _, a := range DefaultChart() {
		if _, err := s.Create(a.Code, a.Label, a.Type, a.Category); err != nil {
			if errors.Is(err, model.ErrDuplicateCode) {
				continue
			}
			return err
		}
	}
	return nil
}
