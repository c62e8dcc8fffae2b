package jobs

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
	"github.com/blackwell-systems/aw-analyzer/internal/notifier"
	"github.com/blackwell-systems/aw-analyzer/internal/scheduler"
	"github.com/blackwell-systems/aw-analyzer/internal/state"
	"github.com/stretchr/testify/require"
)

type fakeAWClient struct {
	bucketsBody []byte
	queryBody   []byte
}

func (f *fakeAWClient) Get(ctx context.Context, url string) ([]byte, int, error) {
	return f.bucketsBody, 200, nil
}

func (f *fakeAWClient) PostJSON(ctx context.Context, url string, body any) ([]byte, int, error) {
	return f.queryBody, 200, nil
}

func bucketsJSON(ids ...string) []byte {
	m := map[string]any{}
	for _, id := range ids {
		m[id] = map[string]any{"id": id}
	}
	data, _ := json.Marshal(m)
	return data
}

func queryResultJSON(events []map[string]any) []byte {
	data, _ := json.Marshal([]any{events})
	return data
}

func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	store, err := state.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return store
}

func newSchedulerContext(t *testing.T, now time.Time) *scheduler.Context {
	return &scheduler.Context{
		Context:  context.Background(),
		Now:      now,
		State:    newTestStore(t),
		Notifier: &notifier.Fake{},
	}
}

func TestDailySummaryJob_ShouldRun_BeforeTargetHour(t *testing.T) {
	job := &DailySummaryJob{OffsetMinutes: 0, TargetHour: 21, TargetMinute: 0}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	sc := newSchedulerContext(t, now)
	require.False(t, job.ShouldRun(sc))
}

func TestDailySummaryJob_ShouldRun_AtOrAfterTargetHourWithNoMarker(t *testing.T) {
	job := &DailySummaryJob{OffsetMinutes: 0, TargetHour: 9, TargetMinute: 0}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	sc := newSchedulerContext(t, now)
	require.True(t, job.ShouldRun(sc))
}

func TestDailySummaryJob_ShouldRun_FalseAfterMarkerWritten(t *testing.T) {
	job := &DailySummaryJob{OffsetMinutes: 0, TargetHour: 9, TargetMinute: 0}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	sc := newSchedulerContext(t, now)
	require.NoError(t, sc.State.Set("daily:daily-summary:2026-01-02", "2026-01-02"))
	require.False(t, job.ShouldRun(sc))
}

func TestDailySummaryJob_Run_WritesMarkerAndNotifies(t *testing.T) {
	client := &fakeAWClient{
		bucketsBody: bucketsJSON("aw-watcher-window_host", "aw-watcher-afk_host"),
		queryBody: queryResultJSON([]map[string]any{
			{"timestamp": "2026-01-01T00:00:00Z", "duration": 3600.0, "data": map[string]any{"app": "VS Code"}},
		}),
	}
	provider := activitywatch.New(client, "http://localhost:5600")
	job := &DailySummaryJob{Provider: provider, OffsetMinutes: 0, TargetHour: 9, TargetMinute: 0}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	sc := newSchedulerContext(t, now)

	result, err := job.Run(sc)
	require.NoError(t, err)
	require.Equal(t, scheduler.KindNotify, result.Kind)
	require.Empty(t, result.CooldownKey)

	marker, ok := sc.State.GetString("daily:daily-summary:2026-01-02")
	require.True(t, ok)
	require.Equal(t, "2026-01-02", marker)
}

func TestContinuousWorkAlertJob_ShouldRun_AlwaysTrue(t *testing.T) {
	job := &ContinuousWorkAlertJob{}
	sc := newSchedulerContext(t, time.Now())
	require.True(t, job.ShouldRun(sc))
}

func TestContinuousWorkAlertJob_Run_BelowThreshold_NoNotify(t *testing.T) {
	client := &fakeAWClient{
		bucketsBody: bucketsJSON("aw-watcher-window_host", "aw-watcher-afk_host"),
		queryBody: queryResultJSON([]map[string]any{
			{"timestamp": "2026-01-01T00:00:00Z", "duration": 1800.0, "data": map[string]any{"app": "VS Code"}},
		}),
	}
	provider := activitywatch.New(client, "http://localhost:5600")
	job := &ContinuousWorkAlertJob{Provider: provider, ThresholdSeconds: 3600, CooldownMs: 3600000}
	sc := newSchedulerContext(t, time.Now())

	result, err := job.Run(sc)
	require.NoError(t, err)
	require.Equal(t, scheduler.KindNoNotify, result.Kind)
}

func TestContinuousWorkAlertJob_Run_AboveThreshold_NotifiesWithCooldown(t *testing.T) {
	client := &fakeAWClient{
		bucketsBody: bucketsJSON("aw-watcher-window_host", "aw-watcher-afk_host"),
		queryBody: queryResultJSON([]map[string]any{
			{"timestamp": "2026-01-01T00:00:00Z", "duration": 7200.0, "data": map[string]any{"app": "VS Code"}},
		}),
	}
	provider := activitywatch.New(client, "http://localhost:5600")
	job := &ContinuousWorkAlertJob{Provider: provider, ThresholdSeconds: 3600, CooldownMs: 3600000}
	sc := newSchedulerContext(t, time.Now())

	result, err := job.Run(sc)
	require.NoError(t, err)
	require.Equal(t, scheduler.KindNotify, result.Kind)
	require.Equal(t, "cooldown:continuous-work-alert", result.CooldownKey)
	require.Equal(t, int64(3600000), result.CooldownMs)
}

func TestDailyReportJob_Run_FallsBackWhenNoAPIKeyAndStillNotifies(t *testing.T) {
	client := &fakeAWClient{
		bucketsBody: bucketsJSON("aw-watcher-window_host", "aw-watcher-afk_host"),
		queryBody: queryResultJSON([]map[string]any{
			{"timestamp": "2026-01-01T00:00:00Z", "duration": 28800.0, "data": map[string]any{"app": "VS Code"}},
		}),
	}
	provider := activitywatch.New(client, "http://localhost:5600")
	job := &DailyReportJob{
		Provider:       provider,
		HTTPClient:     nil,
		AnalyzerConfig: analyzer.Config{},
		WebhookURL:     "",
		OffsetMinutes:  0,
		TargetHour:     9,
		TargetMinute:   0,
	}
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	sc := newSchedulerContext(t, now)

	result, err := job.Run(sc)
	require.NoError(t, err)
	require.Equal(t, scheduler.KindNotify, result.Kind)

	marker, ok := sc.State.GetString("daily:daily-report:2026-01-02")
	require.True(t, ok)
	require.Equal(t, "2026-01-02", marker)
}
