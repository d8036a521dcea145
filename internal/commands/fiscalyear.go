package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newFiscalYearCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fy",
		Short: "Manage fiscal years",
	}
	cmd.AddCommand(newFYCreateCommand(configPath))
	cmd.AddCommand(newFYListCommand(configPath))
	cmd.AddCommand(newFYSimpleCommand(configPath, "set-current", "Make a fiscal year current"))
	cmd.AddCommand(newFYSimpleCommand(configPath, "close", "Close a fiscal year, locking its entries"))
	cmd.AddCommand(newFYSimpleCommand(configPath, "reopen", "Reopen a closed fiscal year (entries stay locked)"))
	return cmd
}

func newFYCreateCommand(configPath *string) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			start, err := time.ParseInLocation("2006-01-02", startStr, time.UTC)
			if err != nil {
				return fmt.Errorf("parsing start: %w", err)
			}
			end, err := time.ParseInLocation("2006-01-02", endStr, time.UTC)
			if err != nil {
				return fmt.Errorf("parsing end: %w", err)
			}

			fy, err := eng.Years.Create(start, end)
			if err != nil {
				return err
			}
			fmt.Printf("Created fiscal year %s (%s..%s)\n", fy.ID,
				fy.Start.Format("2006-01-02"), fy.End.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "start date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&endStr, "end", "", "end date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newFYListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List fiscal years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			years, err := eng.Years.List()
			if err != nil {
				return err
			}
			for _, fy := range years {
				state := "open"
				if fy.Closed {
					state = "closed"
				} else if fy.Current {
					state = "current"
				}
				fmt.Printf("%s  %s..%s  %s\n", fy.ID,
					fy.Start.Format("2006-01-02"), fy.End.Format("2006-01-02"), state)
			}
			return nil
		},
	}
}

func newFYSimpleCommand(configPath *string, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			switch use {
			case "set-current":
				return eng.Years.SetCurrent(args[0])
			case "close":
				return eng.Years.Close(args[0])
			default:
				return eng.Years.Reopen(args[0])
			}
		},
	}
}
