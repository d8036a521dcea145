package journals

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

func TestCreateAndFind(t *testing.T) {
	svc := newTestService(t)

	j, err := svc.Create("VE", "Ventes", model.JournalTypeSales)
	require.NoError(t, err)
	assert.True(t, j.Active)

	got, err := svc.FindByCode("VE")
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)
}

func TestCreateDuplicateCode(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create("BQ", "Banque", model.JournalTypeTreasury)
	require.NoError(t, err)

	_, err = svc.Create("BQ", "Banque 2", model.JournalTypeTreasury)
	assert.True(t, errors.Is(err, model.ErrDuplicateCode))
}

func TestCreateInvalidType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create("XX", "Unknown", model.JournalType("bank"))
	assert.Error(t, err)
}

func TestSetActiveUnknown(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetActive("missing", false)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, SeedDefaultJournals(svc))

	all, err := svc.List(Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	sales, err := svc.List(Filter{Type: model.JournalTypeSales})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "VE", sales[0].Code)

	byLabel, err := svc.List(Filter{Search: "achats"})
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	assert.Equal(t, "AC", byLabel[0].Code)
}
