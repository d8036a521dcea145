package accounts

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlivre-dev/grandlivre/internal/model"
	"github.com/grandlivre-dev/grandlivre/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Create("411", "Clients", model.AccountTypeAsset, "créances")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.True(t, a.Active)

	got, err := svc.Find(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create("411", "Clients", model.AccountTypeAsset, "")
	require.NoError(t, err)

	_, err = svc.Create("411", "Other clients", model.AccountTypeAsset, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDuplicateCode))
}

func TestCreateDuplicateCodeOfInactive(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Create("512", "Banque", model.AccountTypeAsset, "")
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(a.ID, false))

	_, err = svc.Create("512", "Banque bis", model.AccountTypeAsset, "")
	assert.True(t, errors.Is(err, model.ErrDuplicateCode), "deactivated accounts keep their code")
}

func TestCreateInvalidType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create("999", "Weird", model.AccountType("actif"), "")
	assert.Error(t, err)
}

func TestSetActiveUnknown(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetActive("missing", false)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestList(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, SeedDefaultChart(svc))

	all, err := svc.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultChart()))

	assets, err := svc.List(Filter{Type: model.AccountTypeAsset})
	require.NoError(t, err)
	for _, a := range assets {
		assert.Equal(t, model.AccountTypeAsset, a.Type)
	}

	// Search is case-insensitive over code and label.
	byLabel, err := svc.List(Filter{Search: "clients"})
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	assert.Equal(t, "411", byLabel[0].Code)

	byCode, err := svc.List(Filter{Search: "4457"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "44571", byCode[0].Code)
}

func TestListActiveOnly(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Create("606", "Achats", model.AccountTypeExpense, "")
	require.NoError(t, err)
	_, err = svc.Create("607", "Achats de marchandises", model.AccountTypeExpense, "")
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(a.ID, false))

	active, err := svc.List(Filter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "607", active[0].Code)
}

func TestSeedDefaultChartIdempotent(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, SeedDefaultChart(svc))
	require.NoError(t, SeedDefaultChart(svc), "re-seeding skips existing codes")

	all, err := svc.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultChart()))
}
