package history

import (
	"testing"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestRecordTick_InsertsSnapshotAndMetricPoints(t *testing.T) {
	h := openTestHistory(t)
	metrics := activitywatch.DailyMetrics{
		WorkSeconds:          28800,
		MaxContinuousSeconds: 7200,
		TopApps:              []activitywatch.AppUsage{{App: "VS Code", Seconds: 14400}},
	}

	id, err := h.RecordTick(time.Now(), metrics)
	require.NoError(t, err)
	require.NotZero(t, id)

	points, err := h.Trend("workSeconds", 10)
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 28800.0, points[0].Value)
}

func TestRecordWeekly_OmitsNilAverages(t *testing.T) {
	h := openTestHistory(t)
	_, err := h.RecordWeekly(time.Now(), WeeklySummary{TotalWorkSeconds: 100000, AvgPerDaySeconds: 14285})
	require.NoError(t, err)

	points, err := h.Trend("avgWakeMinutes", 10)
	require.NoError(t, err)
	require.Empty(t, points)

	points, err = h.Trend("totalWorkSeconds", 10)
	require.NoError(t, err)
	require.Len(t, points, 1)
}

func TestTrend_ReturnsOldestFirstUpToLimit(t *testing.T) {
	h := openTestHistory(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		metrics := activitywatch.DailyMetrics{WorkSeconds: float64(i) * 1000}
		_, err := h.RecordTick(base.AddDate(0, 0, i), metrics)
		require.NoError(t, err)
	}

	points, err := h.Trend("workSeconds", 3)
	require.NoError(t, err)
	require.Len(t, points, 3)
	require.Equal(t, 2000.0, points[0].Value)
	require.Equal(t, 3000.0, points[1].Value)
	require.Equal(t, 4000.0, points[2].Value)
}

func TestTrend_UnknownMetricReturnsEmpty(t *testing.T) {
	h := openTestHistory(t)
	points, err := h.Trend("nonexistent", 10)
	require.NoError(t, err)
	require.Empty(t, points)
}
