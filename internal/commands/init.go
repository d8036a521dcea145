package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/accounts"
	"github.com/grandlivre-dev/grandlivre/internal/config"
	"github.com/grandlivre-dev/grandlivre/internal/engine"
	"github.com/grandlivre-dev/grandlivre/internal/journals"
)

func newInitCommand() *cobra.Command {
	var name string
	var skipDefaults bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, name, skipDefaults)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&skipDefaults, "no-defaults", false, "skip seeding the default chart of accounts and journals")

	return cmd
}

func runInit(dir, name string, skipDefaults bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name, dir)
	if err := config.Save(filepath.Join(dir, "grandlivre.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	eng, err := engine.Open(cfg.Ledger.DBPath)
	if err != nil {
		return fmt.Errorf("creating ledger database: %w", err)
	}
	defer eng.Close()

	if !skipDefaults {
		if err := accounts.SeedDefaultChart(eng.Accounts); err != nil {
			return fmt.Errorf("seeding chart of accounts: %w", err)
		}
		if err := journals.SeedDefaultJournals(eng.Journals); err != nil {
			return fmt.Errorf("seeding journals: %w", err)
		}
	}

	fmt.Printf("Initialized ledger for %s at %s\n", name, dir)
	return nil
}
