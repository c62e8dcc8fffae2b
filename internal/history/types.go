// Package history implements the supplemental SQLite snapshot/trend
// store: a side-channel record of each tick's and weekly report's
// metrics, independent of the JSON idempotency/cooldown State Store.
// Nothing in the scheduler or jobs depends on this package being
// available — a failure to open or write it is never fatal.
package history

import "time"

// SnapshotKind distinguishes a per-tick snapshot from a weekly-report one.
type SnapshotKind string

const (
	KindTick   SnapshotKind = "tick"
	KindWeekly SnapshotKind = "weekly"
)

// Snapshot is one row in the snapshots table: a point in time at which a
// set of MetricPoints was captured.
type Snapshot struct {
	ID      int64
	TakenAt time.Time
	Kind    SnapshotKind
	Version string
}

// MetricPoint is one scalar metric captured at snapshot time.
type MetricPoint struct {
	ID         int64
	SnapshotID int64
	Name       string
	Value      float64
	Detail     string
}

// WeeklySummary carries the scalar fields of a weekly report worth
// recording as trend points.
type WeeklySummary struct {
	TotalWorkSeconds float64
	AvgPerDaySeconds float64
	AvgWakeMinutes   *float64
	AvgSleepMinutes  *float64
}
