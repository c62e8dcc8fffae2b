package binning

import (
	"testing"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/stretchr/testify/require"
)

const jstOffsetMinutes = 9 * 60

func TestBinAfkEvents_SplitsAcrossHourBoundary(t *testing.T) {
	// 2025-12-31T15:30:00Z + 9h = 2026-01-01T00:30:00 JST, duration 1h.
	ts, err := time.Parse(time.RFC3339, "2025-12-31T15:30:00Z")
	require.NoError(t, err)

	events := []activitywatch.AfkEvent{
		{Timestamp: ts, Duration: 3600, Status: activitywatch.StatusNotAfk},
	}

	buckets := BinAfkEvents(events, []string{"2026-01-01"}, jstOffsetMinutes)
	require.Len(t, buckets, 1)
	require.Equal(t, "2026-01-01", buckets[0].Date)
	require.Equal(t, 1800.0, buckets[0].Hours[0].ActiveSeconds)
	require.Equal(t, 1800.0, buckets[0].Hours[1].ActiveSeconds)
}

func TestBinAfkEvents_DiscardsUnrecognizedStatus(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	events := []activitywatch.AfkEvent{
		{Timestamp: ts, Duration: 3600, Status: activitywatch.StatusOther},
	}
	buckets := BinAfkEvents(events, []string{"2026-01-01"}, 0)
	require.Len(t, buckets, 1)
	for _, h := range buckets[0].Hours {
		require.Zero(t, h.ActiveSeconds)
		require.Zero(t, h.AfkSeconds)
	}
}

func TestBinAfkEvents_DatesNotListedGetNoContribution(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2026-01-05T12:00:00Z")
	events := []activitywatch.AfkEvent{
		{Timestamp: ts, Duration: 3600, Status: activitywatch.StatusAfk},
	}
	buckets := BinAfkEvents(events, []string{"2026-01-01"}, 0)
	require.Len(t, buckets, 1)
	for _, h := range buckets[0].Hours {
		require.Zero(t, h.AfkSeconds)
	}
}

func TestBinAfkEvents_OutputOrderMatchesInput(t *testing.T) {
	buckets := BinAfkEvents(nil, []string{"2026-01-03", "2026-01-01", "2026-01-02"}, 0)
	require.Equal(t, []string{"2026-01-03", "2026-01-01", "2026-01-02"}, []string{
		buckets[0].Date, buckets[1].Date, buckets[2].Date,
	})
}

func TestBinAfkEvents_Conservation(t *testing.T) {
	ts1, _ := time.Parse(time.RFC3339, "2026-01-01T01:00:00Z")
	ts2, _ := time.Parse(time.RFC3339, "2026-01-01T05:00:00Z")
	events := []activitywatch.AfkEvent{
		{Timestamp: ts1, Duration: 1800, Status: activitywatch.StatusNotAfk},
		{Timestamp: ts2, Duration: 7200, Status: activitywatch.StatusAfk},
	}
	buckets := BinAfkEvents(events, []string{"2026-01-01"}, 0)

	var totalActive, totalAfk float64
	for _, h := range buckets[0].Hours {
		totalActive += h.ActiveSeconds
		totalAfk += h.AfkSeconds
	}
	require.Equal(t, 1800.0, totalActive)
	require.Equal(t, 7200.0, totalAfk)
}

func TestBuildDateKeys_ExcludesToday_OldestFirst(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	keys := BuildDateKeys(now, 3, 0)
	require.Equal(t, []string{"2026-01-07", "2026-01-08", "2026-01-09"}, keys)
}

func TestBuildDateKeys_ClampsRange(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	require.Len(t, BuildDateKeys(now, 0, 0), 1)
	require.Len(t, BuildDateKeys(now, 1000, 0), 31)
}

func TestSummarizeActiveSeconds_CountsOnlyDaysWithNonZeroActivity(t *testing.T) {
	days := []DailyHourlyBuckets{
		{Date: "2026-01-01"}, // all-zero: no contribution
		{Date: "2026-01-02"},
		{Date: "2026-01-03"},
	}
	days[1].Hours[9].ActiveSeconds = 7200
	days[2].Hours[14].ActiveSeconds = 5400

	total, count := SummarizeActiveSeconds(days)
	require.Equal(t, 12600.0, total)
	require.Equal(t, 2, count)
}

func TestSummarizeActiveSeconds_NoDataReturnsZero(t *testing.T) {
	days := []DailyHourlyBuckets{{Date: "2026-01-01"}, {Date: "2026-01-02"}}
	total, count := SummarizeActiveSeconds(days)
	require.Zero(t, total)
	require.Zero(t, count)
}
