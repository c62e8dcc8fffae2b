package formatter

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
	"github.com/stretchr/testify/require"
)

func TestBuildDailyReport_FixedLayoutOrder(t *testing.T) {
	metrics := activitywatch.DailyMetrics{
		WorkSeconds:          28800,
		MaxContinuousSeconds: 5400,
		NightWorkSeconds:     0,
		TopApps: []activitywatch.AppUsage{
			{App: "VS Code", Seconds: 14400},
			{App: "Chrome", Seconds: 7200},
		},
	}
	analysis := &analyzer.AnalysisResult{
		Summary:  "Good day.",
		Insights: []string{"Stayed focused."},
		Tip:      "Keep it up.",
	}

	blocks := BuildDailyReport("2026-01-01", metrics, analysis, "https://dash.example.com")

	require.Equal(t, "header", blocks[0].Type)
	require.Equal(t, "section", blocks[1].Type) // summary
	require.Equal(t, "divider", blocks[2].Type)
	require.Equal(t, "section", blocks[3].Type) // fields
	require.Len(t, blocks[3].Fields, 4)

	require.Empty(t, Fatal(Validate(blocks)))
}

func TestBuildDailyReport_OmitsOptionalSectionsWhenAbsent(t *testing.T) {
	metrics := activitywatch.DailyMetrics{WorkSeconds: 3600}
	blocks := BuildDailyReport("2026-01-01", metrics, nil, "")

	for _, b := range blocks {
		require.NotEqual(t, "image", b.Type)
	}
	require.Empty(t, Fatal(Validate(blocks)))
}

func TestBuildDailyReport_TopAppsUseMedalsThenBullets(t *testing.T) {
	apps := make([]activitywatch.AppUsage, 5)
	for i := range apps {
		apps[i] = activitywatch.AppUsage{App: "App", Seconds: float64(100 - i)}
	}
	metrics := activitywatch.DailyMetrics{WorkSeconds: 500, TopApps: apps}
	blocks := BuildDailyReport("2026-01-01", metrics, nil, "")

	var topAppsText string
	for _, b := range blocks {
		if b.Text != nil && strings.Contains(b.Text.Text, "Top Applications") {
			topAppsText = b.Text.Text
		}
	}
	require.Contains(t, topAppsText, "\U0001F947")
	require.Contains(t, topAppsText, "•")
}
