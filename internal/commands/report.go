package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derive financial statements",
	}
	cmd.AddCommand(newTrialBalanceCommand(configPath))
	cmd.AddCommand(newBalanceSheetCommand(configPath))
	cmd.AddCommand(newIncomeStatementCommand(configPath))
	return cmd
}

func parseDateFlag(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", value, err)
	}
	return t, nil
}

func newTrialBalanceCommand(configPath *string) *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Per-account debit/credit totals for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			from, err := parseDateFlag(fromStr)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toStr)
			if err != nil {
				return err
			}

			tb, err := eng.Statements.TrialBalance(from, to)
			if err != nil {
				return err
			}
			cur := cfg.Ledger.Currency
			for _, row := range tb.Rows {
				if row.Debit.IsZero() && row.Credit.IsZero() {
					continue
				}
				fmt.Printf("%-8s %-35s %15s %15s %15s\n", row.Account.Code, row.Account.Label,
					formatAmount(row.Debit, cur), formatAmount(row.Credit, cur), formatAmount(row.Balance, cur))
			}
			fmt.Printf("%-44s %15s %15s\n", "TOTAL",
				formatAmount(tb.TotalDebit, cur), formatAmount(tb.TotalCredit, cur))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "period start YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&toStr, "to", "", "period end YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newBalanceSheetCommand(configPath *string) *cobra.Command {
	var asOfStr string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Assets vs. liabilities+equity as of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			asOf, err := parseDateFlag(asOfStr)
			if err != nil {
				return err
			}
			bs, err := eng.Statements.BalanceSheet(asOf)
			if err != nil {
				return err
			}

			cur := cfg.Ledger.Currency
			fmt.Println("ASSETS")
			for _, l := range bs.Assets {
				fmt.Printf("  %-8s %-35s %15s\n", l.Account.Code, l.Account.Label, formatAmount(l.Amount, cur))
			}
			fmt.Printf("  %-44s %15s\n", "Total assets", formatAmount(bs.TotalAssets, cur))

			fmt.Println("LIABILITIES")
			for _, l := range bs.Liabilities {
				fmt.Printf("  %-8s %-35s %15s\n", l.Account.Code, l.Account.Label, formatAmount(l.Amount, cur))
			}
			fmt.Println("EQUITY")
			for _, l := range bs.Equity {
				fmt.Printf("  %-8s %-35s %15s\n", l.Account.Code, l.Account.Label, formatAmount(l.Amount, cur))
			}
			fmt.Printf("  %-44s %15s\n", "Net result", formatAmount(bs.NetResult, cur))
			fmt.Printf("  %-44s %15s\n", "Total liabilities and equity",
				formatAmount(bs.TotalLiabilitiesAndEquity, cur))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfStr, "as-of", "", "snapshot date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

func newIncomeStatementCommand(configPath *string) *cobra.Command {
	var fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Revenue vs. expense for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			from, err := parseDateFlag(fromStr)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toStr)
			if err != nil {
				return err
			}
			is, err := eng.Statements.IncomeStatement(from, to)
			if err != nil {
				return err
			}

			cur := cfg.Ledger.Currency
			fmt.Println("REVENUE")
			for _, l := range is.Revenue {
				fmt.Printf("  %-8s %-35s %15s\n", l.Account.Code, l.Account.Label, formatAmount(l.Amount, cur))
			}
			fmt.Printf("  %-44s %15s\n", "Total revenue", formatAmount(is.TotalRevenue, cur))
			fmt.Println("EXPENSES")
			for _, l := range is.Expenses {
				fmt.Printf("  %-8s %-35s %15s\n", l.Account.Code, l.Account.Label, formatAmount(l.Amount, cur))
			}
			fmt.Printf("  %-44s %15s\n", "Total expenses", formatAmount(is.TotalExpenses, cur))
			fmt.Printf("  %-44s %15s\n", "Net result", formatAmount(is.NetResult, cur))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "period start YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&toStr, "to", "", "period end YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
