package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/model"
)

func newTaxCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Track tax declarations and payments",
	}
	cmd.AddCommand(newTaxDeclareCommand(configPath))
	cmd.AddCommand(newTaxAdvanceCommand(configPath))
	cmd.AddCommand(newTaxListCommand(configPath))
	cmd.AddCommand(newTaxPayCommand(configPath))
	cmd.AddCommand(newTaxPaymentStateCommand(configPath, "settle", "Mark a pending payment completed"))
	cmd.AddCommand(newTaxPaymentStateCommand(configPath, "cancel-payment", "Cancel a pending payment"))
	return cmd
}

func newTaxDeclareCommand(configPath *string) *cobra.Command {
	var typ, period, amountStr, dueStr string

	cmd := &cobra.Command{
		Use:   "declare",
		Short: "Create a draft declaration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}
			due, err := parseDateFlag(dueStr)
			if err != nil {
				return err
			}

			d, err := eng.Tax.CreateDeclaration(model.DeclarationType(typ), period, amount, due)
			if err != nil {
				return err
			}
			fmt.Printf("Created declaration %s (%s %s, due %s)\n", d.ID, d.Type, d.Period,
				d.DueDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "vat|income|other (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&period, "period", "", `tax period, e.g. "2024", "2024-03", "2024-Q1" (required)`)
	_ = cmd.MarkFlagRequired("period")
	cmd.Flags().StringVar(&amountStr, "amount", "", "declared amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dueStr, "due", "", "due date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

func newTaxAdvanceCommand(configPath *string) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "advance <declaration-id>",
		Short: "Advance a declaration (draft -> validated -> submitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			d, err := eng.Tax.AdvanceDeclaration(args[0], model.DeclarationStatus(to))
			if err != nil {
				return err
			}
			fmt.Printf("Declaration %s is now %s\n", d.ID, d.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target status: validated|submitted (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newTaxListCommand(configPath *string) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			decls, err := eng.Tax.ListDeclarations(model.DeclarationStatus(status))
			if err != nil {
				return err
			}
			for _, d := range decls {
				fmt.Printf("%s  %-6s %-8s %-10s due %s  %s\n", d.ID, d.Type, d.Period, d.Status,
					d.DueDate.Format("2006-01-02"), formatAmount(d.Amount, cfg.Ledger.Currency))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func newTaxPayCommand(configPath *string) *cobra.Command {
	var amountStr, dateStr, method, reference string

	cmd := &cobra.Command{
		Use:   "pay <declaration-id>",
		Short: "Record a pending payment against a declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}
			date, err := parseDateFlag(dateStr)
			if err != nil {
				return err
			}

			p, err := eng.Tax.CreatePayment(args[0], amount, date, model.PaymentMethod(method), reference)
			if err != nil {
				return err
			}
			fmt.Printf("Recorded payment %s (%s)\n", p.ID, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&amountStr, "amount", "", "payment amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateStr, "date", "", "payment date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&method, "method", "", "bank|cash|check (required)")
	_ = cmd.MarkFlagRequired("method")
	cmd.Flags().StringVar(&reference, "ref", "", "payment reference")

	return cmd
}

func newTaxPaymentStateCommand(configPath *string, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <payment-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			if use == "settle" {
				_, err = eng.Tax.SettlePayment(args[0])
			} else {
				_, err = eng.Tax.CancelPayment(args[0])
			}
			return err
		},
	}
}
