package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/accounts"
	"github.com/grandlivre-dev/grandlivre/internal/model"
)

func newAccountCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	cmd.AddCommand(newAccountAddCommand(configPath))
	cmd.AddCommand(newAccountListCommand(configPath))
	cmd.AddCommand(newAccountActiveCommand(configPath, "activate", true))
	cmd.AddCommand(newAccountActiveCommand(configPath, "deactivate", false))
	return cmd
}

func newAccountAddCommand(configPath *string) *cobra.Command {
	var label, typ, category string

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add an account to the chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			a, err := eng.Accounts.Create(args[0], label, model.AccountType(typ), category)
			if err != nil {
				return err
			}
			fmt.Printf("Created account %s %q (%s)\n", a.Code, a.Label, a.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "account label (required)")
	_ = cmd.MarkFlagRequired("label")
	cmd.Flags().StringVar(&typ, "type", "", "asset|liability|equity|revenue|expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&category, "category", "", "free-text grouping")

	return cmd
}

func newAccountListCommand(configPath *string) *cobra.Command {
	var typ, search string
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			list, err := eng.Accounts.List(accounts.Filter{
				Type:       model.AccountType(typ),
				ActiveOnly: activeOnly,
				Search:     search,
			})
			if err != nil {
				return err
			}
			for _, a := range list {
				status := ""
				if !a.Active {
					status = " (inactive)"
				}
				fmt.Printf("%-8s %-35s %-10s %s%s\n", a.Code, a.Label, a.Type, a.ID, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "filter by account type")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active accounts")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive match over code and label")

	return cmd
}

func newAccountActiveCommand(configPath *string, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()
			return eng.Accounts.SetActive(args[0], active)
		},
	}
}
