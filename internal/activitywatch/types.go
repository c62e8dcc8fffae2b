// Package activitywatch is the Activity Provider: it discovers the
// upstream event buckets, composes server-side queries, and decodes the
// responses into the fixed, normalized result shapes the rest of the
// system consumes. Provider calls are independent and self-contained —
// getMetrics/getAfkMetrics/getAfkEvents/getEditorProjectMetrics never
// share state across calls.
package activitywatch

import "time"

// TimeRange is an inclusive-start, end-of-day-end window. All provider
// queries are derived from one.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// AppUsage is one entry in DailyMetrics.TopApps: a single app and the
// total seconds of not-afk window-focus time attributed to it.
type AppUsage struct {
	App     string
	Seconds float64
}

// DailyMetrics is the canonical, fixed-shape daily metrics DTO — the
// only shape jobs see for app-usage data.
type DailyMetrics struct {
	WorkSeconds           float64
	AfkSeconds            float64
	NightWorkSeconds      float64
	MaxContinuousSeconds  float64
	TopApps               []AppUsage
}

// AfkMetrics is the aggregate AFK/not-AFK seconds for a window.
type AfkMetrics struct {
	AfkSeconds    float64
	NotAfkSeconds float64
}

// AfkStatus is the recognized status of an AfkEvent. Unrecognized values
// are represented as StatusOther and are ignored by the binner and the
// sleep analyzer.
type AfkStatus string

const (
	StatusAfk    AfkStatus = "afk"
	StatusNotAfk AfkStatus = "not-afk"
	StatusOther  AfkStatus = "other"
)

// ParseAfkStatus maps a raw server status string onto the recognized
// AfkStatus set, defaulting unknown values to StatusOther.
func ParseAfkStatus(raw string) AfkStatus {
	switch raw {
	case string(StatusAfk):
		return StatusAfk
	case string(StatusNotAfk):
		return StatusNotAfk
	default:
		return StatusOther
	}
}

// AfkEvent is a single recorded span describing whether the user was
// present at the machine.
type AfkEvent struct {
	Timestamp time.Time
	Duration  float64 // seconds
	Status    AfkStatus
}

// ProjectUsage is one entry in EditorProjectMetrics.Projects.
type ProjectUsage struct {
	Project string
	Seconds float64
}

// EditorProjectMetrics is the normalized editor-activity-by-project DTO.
type EditorProjectMetrics struct {
	Projects []ProjectUsage
}

// unknownAppLabel is the bucket name used for window events with no
// recognizable app label.
const unknownAppLabel = "Unknown"
