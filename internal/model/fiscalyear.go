package model

import "time"

// FiscalYear is an accounting period. Periods never overlap, at most one is
// current at a time, and closing a period locks every entry dated inside it.
type FiscalYear struct {
	ID      string
	Start   time.Time
	End     time.Time
	Closed  bool
	Current bool
}

// Covers reports whether d falls inside [Start, End], at date granularity.
func (fy FiscalYear) Covers(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(fy.Start)) && !day.After(DateOnly(fy.End))
}

// Overlaps reports whether [start, end] intersects this period.
func (fy FiscalYear) Overlaps(start, end time.Time) bool {
	return !DateOnly(end).Before(DateOnly(fy.Start)) && !DateOnly(start).After(DateOnly(fy.End))
}

// DateOnly truncates t to its calendar date in UTC. All period comparisons
// in the ledger are date-granular.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
