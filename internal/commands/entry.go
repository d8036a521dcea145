package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/engine"
	"github.com/grandlivre-dev/grandlivre/internal/ledger"
	"github.com/grandlivre-dev/grandlivre/internal/store"
)

func newEntryCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Post and manage ledger entries",
	}
	cmd.AddCommand(newEntryPostCommand(configPath))
	cmd.AddCommand(newEntryUpdateCommand(configPath))
	cmd.AddCommand(newEntryListCommand(configPath))
	cmd.AddCommand(newEntryShowCommand(configPath))
	cmd.AddCommand(newEntryLockCommand(configPath, "lock"))
	cmd.AddCommand(newEntryLockCommand(configPath, "unlock"))
	cmd.AddCommand(newEntryDeleteCommand(configPath))
	return cmd
}

func newEntryPostCommand(configPath *string) *cobra.Command {
	var journalCode, dateStr, reference, description string
	var debits, credits []string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced entry",
		Long: `Post a balanced entry. Sides are given as repeated flags in the form
CODE=AMOUNT, e.g.:

  grandlivre entry post --journal VE --date 2024-01-15 \
      --debit 411=1200 --credit 707=1000 --credit 44571=200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			j, err := eng.Journals.FindByCode(journalCode)
			if err != nil {
				return err
			}

			var lines []ledger.LineInput
			for _, side := range debits {
				l, err := parseSide(eng, side, true)
				if err != nil {
					return err
				}
				lines = append(lines, l)
			}
			for _, side := range credits {
				l, err := parseSide(eng, side, false)
				if err != nil {
					return err
				}
				lines = append(lines, l)
			}

			e, err := eng.Ledger.Post(ledger.PostParams{
				JournalID:   j.ID,
				Date:        date,
				Reference:   reference,
				Description: description,
				Lines:       lines,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Posted entry %s (%d lines)\n", e.ID, len(e.Lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&journalCode, "journal", "", "journal code (required)")
	_ = cmd.MarkFlagRequired("journal")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&reference, "ref", "", "free-text reference")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit side CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit side CODE=AMOUNT (repeatable)")

	return cmd
}

// parseSide resolves "CODE=AMOUNT" into a line input against the account
// with that code.
func parseSide(eng *engine.Engine, side string, isDebit bool) (ledger.LineInput, error) {
	code, amountStr, ok := strings.Cut(side, "=")
	if !ok {
		return ledger.LineInput{}, fmt.Errorf("invalid side %q, want CODE=AMOUNT", side)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return ledger.LineInput{}, fmt.Errorf("invalid amount in %q: %w", side, err)
	}
	a, err := eng.Accounts.FindByCode(code)
	if err != nil {
		return ledger.LineInput{}, err
	}
	l := ledger.LineInput{AccountID: a.ID}
	if isDebit {
		l.Debit = amount
	} else {
		l.Credit = amount
	}
	return l, nil
}

func newEntryUpdateCommand(configPath *string) *cobra.Command {
	var journalCode, dateStr, reference, description string
	var debits, credits []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an unlocked entry's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
			if err != nil {
				return fmt.Errorf("parsing date: %w", err)
			}
			j, err := eng.Journals.FindByCode(journalCode)
			if err != nil {
				return err
			}

			var lines []ledger.LineInput
			for _, side := range debits {
				l, err := parseSide(eng, side, true)
				if err != nil {
					return err
				}
				lines = append(lines, l)
			}
			for _, side := range credits {
				l, err := parseSide(eng, side, false)
				if err != nil {
					return err
				}
				lines = append(lines, l)
			}

			e, err := eng.Ledger.Update(args[0], ledger.PostParams{
				JournalID:   j.ID,
				Date:        date,
				Reference:   reference,
				Description: description,
				Lines:       lines,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated entry %s (%d lines)\n", e.ID, len(e.Lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&journalCode, "journal", "", "journal code (required)")
	_ = cmd.MarkFlagRequired("journal")
	cmd.Flags().StringVar(&dateStr, "date", "", "entry date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&reference, "ref", "", "free-text reference")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit side CODE=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit side CODE=AMOUNT (repeatable)")

	return cmd
}

func newEntryListCommand(configPath *string) *cobra.Command {
	var journalCode, fromStr, toStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			var f store.EntryFilter
			if journalCode != "" {
				j, err := eng.Journals.FindByCode(journalCode)
				if err != nil {
					return err
				}
				f.JournalID = j.ID
			}
			if fromStr != "" {
				if f.From, err = time.ParseInLocation("2006-01-02", fromStr, time.UTC); err != nil {
					return fmt.Errorf("parsing from: %w", err)
				}
			}
			if toStr != "" {
				if f.To, err = time.ParseInLocation("2006-01-02", toStr, time.UTC); err != nil {
					return fmt.Errorf("parsing to: %w", err)
				}
			}

			entries, err := eng.Ledger.List(f)
			if err != nil {
				return err
			}
			for _, e := range entries {
				lock := ""
				if e.Locked {
					lock = " [locked]"
				}
				fmt.Printf("%s  %s  %-12s %s%s\n", e.ID, e.Date.Format("2006-01-02"), e.Reference, e.Description, lock)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalCode, "journal", "", "filter by journal code")
	cmd.Flags().StringVar(&fromStr, "from", "", "filter from date YYYY-MM-DD")
	cmd.Flags().StringVar(&toStr, "to", "", "filter to date YYYY-MM-DD")

	return cmd
}

func newEntryShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, cfg, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()

			e, err := eng.Ledger.Find(args[0])
			if err != nil {
				return err
			}
			lock := ""
			if e.Locked {
				lock = " [locked]"
			}
			fmt.Printf("%s  %s  %s%s\n", e.ID, e.Date.Format("2006-01-02"), e.Description, lock)
			for _, l := range e.Lines {
				a, err := eng.Accounts.Find(l.AccountID)
				if err != nil {
					return err
				}
				if !l.Debit.IsZero() {
					fmt.Printf("  %-8s %-35s D %s\n", a.Code, a.Label, formatAmount(l.Debit, cfg.Ledger.Currency))
				} else {
					fmt.Printf("  %-8s %-35s C %s\n", a.Code, a.Label, formatAmount(l.Credit, cfg.Ledger.Currency))
				}
			}
			return nil
		},
	}
}

func newEntryLockCommand(configPath *string, use string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()
			if use == "lock" {
				return eng.Ledger.Lock(args[0])
			}
			return eng.Ledger.Unlock(args[0])
		},
	}
}

func newEntryDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an unlocked entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(*configPath)
			if err != nil {
				return err
			}
			defer eng.Close()
			return eng.Ledger.Delete(args[0])
		},
	}
}
