package activitywatch

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	prefixWindow = "aw-watcher-window_"
	prefixAfk    = "aw-watcher-afk_"
	prefixVSCode = "aw-watcher-vscode_"
	prefixVim    = "aw-watcher-vim_"
)

// Provider is the Activity Provider: given a time range, it discovers the
// required event buckets, issues server-side queries, and returns the
// normalized result types. Provider holds no state across calls — every
// method is self-contained.
type Provider struct {
	client  HTTPClient
	baseURL string
}

// New creates a Provider against the given ActivityWatch-style server
// base URL using the given HTTPClient.
func New(client HTTPClient, baseURL string) *Provider {
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// bucketsResponse is the shape of GET /api/0/buckets/: a map whose keys
// are bucket IDs.
type bucketsResponse map[string]json.RawMessage

func (p *Provider) discoverBuckets(ctx context.Context) (bucketsResponse, error) {
	url := p.baseURL + "/api/0/buckets/"
	data, status, err := p.client.Get(ctx, url)
	if err != nil {
		return nil, connectionError("cannot reach ActivityWatch server", err)
	}
	if status < 200 || status >= 300 {
		return nil, connectionError(fmt.Sprintf("unexpected status %d listing buckets", status), nil)
	}

	var buckets bucketsResponse
	if err := json.Unmarshal(data, &buckets); err != nil {
		return nil, parseError("decoding bucket list", err)
	}
	return buckets, nil
}

// firstBucketWithPrefix returns the first bucket ID (by sorted order, for
// determinism) whose name begins with one of the given prefixes.
func firstBucketWithPrefix(buckets bucketsResponse, prefixes ...string) (string, bool) {
	ids := make([]string, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, prefix := range prefixes {
			if strings.HasPrefix(id, prefix) {
				return id, true
			}
		}
	}
	return "", false
}

func (p *Provider) query(ctx context.Context, statements []string, tr TimeRange) ([]json.RawMessage, error) {
	url := p.baseURL + "/api/0/query/"
	body := map[string]any{
		"query":       statements,
		"timeperiods": []string{period(tr)},
	}

	data, status, err := p.client.PostJSON(ctx, url, body)
	if err != nil {
		return nil, connectionError("cannot reach ActivityWatch query endpoint", err)
	}
	if status < 200 || status >= 300 {
		return nil, queryError("query endpoint returned a non-2xx status", status, string(data))
	}

	var results []json.RawMessage
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, parseError("decoding query response", err)
	}
	if len(results) == 0 {
		return nil, parseError("query response had no results for the requested period", nil)
	}
	return results, nil
}

// rawEvent is one merged or raw event as returned by the query endpoint.
type rawEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Duration  float64        `json:"duration"`
	Data      map[string]any `json:"data"`
}

func decodeEvents(raw json.RawMessage) ([]rawEvent, error) {
	var events []rawEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, parseError("decoding event list", err)
	}
	return events, nil
}

func stringField(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetMetrics returns the canonical DailyMetrics for the window. afkSeconds
// and nightWorkSeconds are returned as 0 here — they are not computed
// upstream by this query, per spec.md §4.3; callers needing them use
// GetAfkMetrics or compute from hourly bins.
func (p *Provider) GetMetrics(ctx context.Context, tr TimeRange) (DailyMetrics, error) {
	buckets, err := p.discoverBuckets(ctx)
	if err != nil {
		return DailyMetrics{}, err
	}

	windowBucket, ok := firstBucketWithPrefix(buckets, prefixWindow)
	if !ok {
		return DailyMetrics{}, connectionError("Required buckets not found", nil)
	}
	afkBucket, ok := firstBucketWithPrefix(buckets, prefixAfk)
	if !ok {
		return DailyMetrics{}, connectionError("Required buckets not found", nil)
	}

	results, err := p.query(ctx, workQuery(windowBucket, afkBucket), tr)
	if err != nil {
		return DailyMetrics{}, err
	}

	events, err := decodeEvents(results[0])
	if err != nil {
		return DailyMetrics{}, err
	}

	return metricsFromEvents(events), nil
}

// metricsFromEvents reduces a merged-by-app event stream into DailyMetrics.
// maxContinuousSeconds is computed as max(event.duration) across the
// merged stream — an approximation of "longest continuous session," not
// a true session-boundary computation, but exactly the formula spec.md
// requires for reproducibility.
func metricsFromEvents(events []rawEvent) DailyMetrics {
	perApp := make(map[string]float64)
	var total, maxDuration float64

	for _, e := range events {
		app, ok := stringField(e.Data, "app")
		if !ok || app == "" {
			app = unknownAppLabel
		}
		perApp[app] += e.Duration
		total += e.Duration
		if e.Duration > maxDuration {
			maxDuration = e.Duration
		}
	}

	return DailyMetrics{
		WorkSeconds:          total,
		AfkSeconds:           0,
		NightWorkSeconds:     0,
		MaxContinuousSeconds: maxDuration,
		TopApps:              topApps(perApp, 5),
	}
}

// topApps returns the top-n apps by seconds, sorted descending, ties
// broken by lexicographic app name.
func topApps(perApp map[string]float64, n int) []AppUsage {
	usages := make([]AppUsage, 0, len(perApp))
	for app, seconds := range perApp {
		usages = append(usages, AppUsage{App: app, Seconds: seconds})
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Seconds != usages[j].Seconds {
			return usages[i].Seconds > usages[j].Seconds
		}
		return usages[i].App < usages[j].App
	})
	if len(usages) > n {
		usages = usages[:n]
	}
	return usages
}

// GetAfkMetrics returns aggregate AFK/not-AFK seconds for the window.
func (p *Provider) GetAfkMetrics(ctx context.Context, tr TimeRange) (AfkMetrics, error) {
	buckets, err := p.discoverBuckets(ctx)
	if err != nil {
		return AfkMetrics{}, err
	}

	afkBucket, ok := firstBucketWithPrefix(buckets, prefixAfk)
	if !ok {
		return AfkMetrics{}, connectionError("Required buckets not found", nil)
	}

	results, err := p.query(ctx, afkMetricsQuery(afkBucket), tr)
	if err != nil {
		return AfkMetrics{}, err
	}

	events, err := decodeEvents(results[0])
	if err != nil {
		return AfkMetrics{}, err
	}

	var m AfkMetrics
	for _, e := range events {
		status, _ := stringField(e.Data, "status")
		switch ParseAfkStatus(status) {
		case StatusAfk:
			m.AfkSeconds += e.Duration
		case StatusNotAfk:
			m.NotAfkSeconds += e.Duration
		}
	}
	return m, nil
}

// GetAfkEvents returns the raw, timestamp-ordered AFK event stream used
// for binning and sleep/wake inference.
func (p *Provider) GetAfkEvents(ctx context.Context, tr TimeRange) ([]AfkEvent, error) {
	buckets, err := p.discoverBuckets(ctx)
	if err != nil {
		return nil, err
	}

	afkBucket, ok := firstBucketWithPrefix(buckets, prefixAfk)
	if !ok {
		return nil, connectionError("Required buckets not found", nil)
	}

	results, err := p.query(ctx, afkEventsQuery(afkBucket), tr)
	if err != nil {
		return nil, err
	}

	raw, err := decodeEvents(results[0])
	if err != nil {
		return nil, err
	}

	events := make([]AfkEvent, 0, len(raw))
	for _, e := range raw {
		status, _ := stringField(e.Data, "status")
		events = append(events, AfkEvent{
			Timestamp: e.Timestamp,
			Duration:  e.Duration,
			Status:    ParseAfkStatus(status),
		})
	}
	return events, nil
}

// GetEditorProjectMetrics returns editor-activity-by-project metrics. A
// missing editor bucket is not an error — it returns an empty result, per
// spec.md §4.3.
func (p *Provider) GetEditorProjectMetrics(ctx context.Context, tr TimeRange) (EditorProjectMetrics, error) {
	buckets, err := p.discoverBuckets(ctx)
	if err != nil {
		return EditorProjectMetrics{}, err
	}

	editorBucket, ok := firstBucketWithPrefix(buckets, prefixVSCode, prefixVim)
	if !ok {
		return EditorProjectMetrics{}, nil
	}
	afkBucket, ok := firstBucketWithPrefix(buckets, prefixAfk)
	if !ok {
		return EditorProjectMetrics{}, connectionError("Required buckets not found", nil)
	}

	results, err := p.query(ctx, editorProjectsQuery(editorBucket, afkBucket), tr)
	if err != nil {
		return EditorProjectMetrics{}, err
	}

	events, err := decodeEvents(results[0])
	if err != nil {
		return EditorProjectMetrics{}, err
	}

	perProject := make(map[string]float64)
	for _, e := range events {
		raw, ok := stringField(e.Data, "project")
		if !ok || raw == "" {
			continue
		}
		name := filepath.Base(filepath.Clean(raw))
		perProject[name] += e.Duration
	}

	projects := make([]ProjectUsage, 0, len(perProject))
	for name, seconds := range perProject {
		projects = append(projects, ProjectUsage{Project: name, Seconds: seconds})
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Seconds != projects[j].Seconds {
			return projects[i].Seconds > projects[j].Seconds
		}
		return projects[i].Project < projects[j].Project
	})

	return EditorProjectMetrics{Projects: projects}, nil
}
