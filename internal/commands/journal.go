package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/journals"
	"github.com/grandlivre-dev/grandlivre/internal/model"
)

func newJournalCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Manage posting journals",
	}
	cmd.AddCommand(newJournalAddCommand(configPath))
	cmd.AddCommand(newJournalListCommand(configPath))
	return cmd
}

func newJournalAddCommand(configPath *string) *cobra.Command {
	var label, typ string

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add a journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			j, err := eng.Journals.Create(args[0], label, model.JournalType(typ))
			if err != nil {
				return err
			}
			fmt.Printf("Created journal %s %q (%s)\n", j.Code, j.Label, j.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "journal label (required)")
	_ = cmd.MarkFlagRequired("label")
	cmd.Flags().StringVar(&typ, "type", "", "sales|purchases|treasury|misc (required)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newJournalListCommand(configPath *string) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			list, err := eng.Journals.List(journals.Filter{ActiveOnly: activeOnly})
			if err != nil {
				return err
			}
			for _, j := range list {
				status := ""
				if !j.Active {
					status = " (inactive)"
				}
				fmt.Printf("%-4s %-30s %-10s %s%s\n", j.Code, j.Label, j.Type, j.ID, status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active journals")
	return cmd
}
