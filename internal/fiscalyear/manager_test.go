package fiscalyear

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandlivre-dev/grandlivre/internal/model"
	"github.com/grandlivre-dev/grandlivre/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	var mu sync.Mutex
	return NewManager(st, &mu), st
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	m, _ := newTestManager(t)

	fy, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	assert.False(t, fy.Closed)
	assert.False(t, fy.Current)

	got, err := m.Find(fy.ID)
	require.NoError(t, err)
	assert.Equal(t, fy, got)
}

func TestCreateStartAfterEnd(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create(date(2024, 12, 31), date(2024, 1, 1))
	assert.Error(t, err)
}

func TestCreateOverlapping(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	_, err = m.Create(date(2024, 6, 1), date(2025, 1, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrOverlappingPeriod))

	// Adjacent periods are fine.
	_, err = m.Create(date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)
}

func TestSetCurrent(t *testing.T) {
	m, _ := newTestManager(t)

	fy1, err := m.Create(date(2023, 1, 1), date(2023, 12, 31))
	require.NoError(t, err)
	fy2, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	require.NoError(t, m.SetCurrent(fy1.ID))
	require.NoError(t, m.SetCurrent(fy2.ID))

	current, ok, err := m.Current()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fy2.ID, current.ID)

	years, err := m.List()
	require.NoError(t, err)
	count := 0
	for _, fy := range years {
		if fy.Current {
			count++
		}
	}
	assert.Equal(t, 1, count, "previous current is demoted to open")
}

func TestSetCurrentClosed(t *testing.T) {
	m, _ := newTestManager(t)

	fy, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	require.NoError(t, m.Close(fy.ID))

	err = m.SetCurrent(fy.ID)
	assert.True(t, errors.Is(err, model.ErrFiscalYearClosed))
}

func TestSetCurrentUnknown(t *testing.T) {
	m, _ := newTestManager(t)
	assert.True(t, errors.Is(m.SetCurrent("missing"), model.ErrNotFound))
}

func TestCloseCascadeLocksEntries(t *testing.T) {
	m, st := newTestManager(t)

	fy, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	j := model.Journal{ID: uuid.NewString(), Code: "OD", Label: "Divers", Type: model.JournalTypeMisc, Active: true}
	require.NoError(t, st.InsertJournal(j))
	a := model.Account{ID: uuid.NewString(), Code: "512", Label: "Banque", Type: model.AccountTypeAsset, Active: true}
	b := model.Account{ID: uuid.NewString(), Code: "101", Label: "Capital", Type: model.AccountTypeEquity, Active: true}
	require.NoError(t, st.InsertAccount(a))
	require.NoError(t, st.InsertAccount(b))

	amount := decimal.NewFromInt(5000)
	inside := model.Entry{ID: uuid.NewString(), JournalID: j.ID, Date: date(2024, 3, 15),
		Lines: []model.EntryLine{
			{ID: uuid.NewString(), AccountID: a.ID, Debit: amount},
			{ID: uuid.NewString(), AccountID: b.ID, Credit: amount},
		}}
	require.NoError(t, st.InsertEntry(inside))

	fy2025, err := m.Create(date(2025, 1, 1), date(2025, 12, 31))
	require.NoError(t, err)
	outside := model.Entry{ID: uuid.NewString(), JournalID: j.ID, Date: date(2025, 2, 1),
		Lines: []model.EntryLine{
			{ID: uuid.NewString(), AccountID: a.ID, Debit: amount},
			{ID: uuid.NewString(), AccountID: b.ID, Credit: amount},
		}}
	require.NoError(t, st.InsertEntry(outside))
	_ = fy2025

	require.NoError(t, m.Close(fy.ID))

	got, _, err := st.GetEntry(inside.ID)
	require.NoError(t, err)
	assert.True(t, got.Locked)

	got, _, err = st.GetEntry(outside.ID)
	require.NoError(t, err)
	assert.False(t, got.Locked, "entries outside the period stay unlocked")

	// Closing again is a no-op.
	require.NoError(t, m.Close(fy.ID))
}

func TestReopenKeepsEntriesLocked(t *testing.T) {
	m, st := newTestManager(t)

	fy, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	j := model.Journal{ID: uuid.NewString(), Code: "OD", Label: "Divers", Type: model.JournalTypeMisc, Active: true}
	require.NoError(t, st.InsertJournal(j))
	a := model.Account{ID: uuid.NewString(), Code: "512", Label: "Banque", Type: model.AccountTypeAsset, Active: true}
	b := model.Account{ID: uuid.NewString(), Code: "101", Label: "Capital", Type: model.AccountTypeEquity, Active: true}
	require.NoError(t, st.InsertAccount(a))
	require.NoError(t, st.InsertAccount(b))

	amount := decimal.NewFromInt(100)
	e := model.Entry{ID: uuid.NewString(), JournalID: j.ID, Date: date(2024, 6, 1),
		Lines: []model.EntryLine{
			{ID: uuid.NewString(), AccountID: a.ID, Debit: amount},
			{ID: uuid.NewString(), AccountID: b.ID, Credit: amount},
		}}
	require.NoError(t, st.InsertEntry(e))

	require.NoError(t, m.Close(fy.ID))
	require.NoError(t, m.Reopen(fy.ID))

	got, err := m.Find(fy.ID)
	require.NoError(t, err)
	assert.False(t, got.Closed)

	entry, _, err := st.GetEntry(e.ID)
	require.NoError(t, err)
	assert.True(t, entry.Locked, "reopen never bulk-unlocks")
}

func TestCovering(t *testing.T) {
	m, _ := newTestManager(t)

	fy, err := m.Create(date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)

	got, err := m.Covering(date(2024, 7, 14))
	require.NoError(t, err)
	assert.Equal(t, fy.ID, got.ID)

	_, err = m.Covering(date(2023, 7, 14))
	assert.True(t, errors.Is(err, model.ErrNoFiscalYear))
}

func TestCurrentNone(t *testing.T) {
	m, _ := newTestManager(t)

	_, ok, err := m.Current()
	require.NoError(t, err)
	assert.False(t, ok)
}
