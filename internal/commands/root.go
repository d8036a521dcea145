// Package commands is the cobra CLI over the ledger engine.
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/grandlivre-dev/grandlivre/internal/buildinfo"
	"github.com/grandlivre-dev/grandlivre/internal/config"
	"github.com/grandlivre-dev/grandlivre/internal/engine"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "grandlivre",
		Short:   "Double-entry ledger for small businesses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "grandlivre.yaml", "path to grandlivre.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand(&configPath))
	rootCmd.AddCommand(newJournalCommand(&configPath))
	rootCmd.AddCommand(newEntryCommand(&configPath))
	rootCmd.AddCommand(newFiscalYearCommand(&configPath))
	rootCmd.AddCommand(newReportCommand(&configPath))
	rootCmd.AddCommand(newTaxCommand(&configPath))

	return rootCmd
}

// openEngine loads configuration (with .env overrides) and opens the ledger
// database.
func openEngine(configPath string) (*engine.Engine, *config.Config, error) {
	// A missing .env is fine; explicit environment still applies.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.Open(cfg.ResolveDBPath())
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}
