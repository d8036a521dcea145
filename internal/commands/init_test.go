package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlivre-dev/grandlivre/internal/accounts"
	"github.com/grandlivre-dev/grandlivre/internal/config"
	"github.com/grandlivre-dev/grandlivre/internal/engine"
	"github.com/grandlivre-dev/grandlivre/internal/journals"
)

func TestInit_CreatesConfigAndDatabase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Boulangerie Dupont", false))

	data, err := os.ReadFile(filepath.Join(dir, "grandlivre.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Boulangerie Dupont")
	assert.Contains(t, string(data), "currency: EUR")

	_, err = os.Stat(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err, "database file should exist")
}

func TestInit_SeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Test", false))

	cfg, err := config.Load(filepath.Join(dir, "grandlivre.yaml"))
	require.NoError(t, err)
	eng, err := engine.Open(cfg.Ledger.DBPath)
	require.NoError(t, err)
	defer eng.Close()

	accts, err := eng.Accounts.List(accounts.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, accts)

	jnls, err := eng.Journals.List(journals.Filter{})
	require.NoError(t, err)
	assert.Len(t, jnls, 4)
}

func TestInit_NoDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "Test", true))

	cfg, err := config.Load(filepath.Join(dir, "grandlivre.yaml"))
	require.NoError(t, err)
	eng, err := engine.Open(cfg.Ledger.DBPath)
	require.NoError(t, err)
	defer eng.Close()

	accts, err := eng.Accounts.List(accounts.Filter{})
	require.NoError(t, err)
	assert.Empty(t, accts)
}
