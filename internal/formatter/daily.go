package formatter

import (
	"fmt"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
)

// BuildDailyReport composes the fixed daily-report layout: header with
// date, optional summary, a fields block of four key metrics, a top-apps
// section, an optional insights list, an optional tip, and an optional
// dashboard-links section.
//
// analysis may be nil (no AI/fallback analysis was produced). dashboardBaseURL
// may be empty, in which case the links section is omitted.
func BuildDailyReport(date string, metrics activitywatch.DailyMetrics, analysis *analyzer.AnalysisResult, dashboardBaseURL string) []Block {
	blocks := []Block{Header(fmt.Sprintf("Daily Report — %s", date))}

	if analysis != nil && analysis.Summary != "" {
		blocks = append(blocks, Section(analysis.Summary))
	}

	blocks = append(blocks, Divider())
	blocks = append(blocks, SectionFields(
		fmt.Sprintf("*Work:*\n%s", formatDuration(metrics.WorkSeconds)),
		fmt.Sprintf("*Longest stretch:*\n%s", formatDuration(metrics.MaxContinuousSeconds)),
		fmt.Sprintf("*Night work:*\n%s", formatDuration(metrics.NightWorkSeconds)),
		fmt.Sprintf("*Date:*\n%s", date),
	))

	blocks = append(blocks, Divider())
	if len(metrics.TopApps) > 0 {
		var lines string
		for i, app := range metrics.TopApps {
			lines += fmt.Sprintf("%s %s — %s\n", medalOrBullet(i+1), app.App, formatDuration(app.Seconds))
		}
		blocks = append(blocks, Section(fmt.Sprintf("*Top Applications*\n%s", lines)))
	}

	if analysis != nil && len(analysis.Insights) > 0 {
		blocks = append(blocks, Divider())
		var lines string
		for _, insight := range analysis.Insights {
			lines += fmt.Sprintf("• %s\n", insight)
		}
		blocks = append(blocks, Section(fmt.Sprintf("*Insights*\n%s", lines)))
	}

	if analysis != nil && analysis.Tip != "" {
		blocks = append(blocks, Divider())
		blocks = append(blocks, Context(fmt.Sprintf("💡 %s", analysis.Tip)))
	}

	if dashboardBaseURL != "" {
		blocks = append(blocks, Divider())
		blocks = append(blocks, Section(fmt.Sprintf("<%s|View dashboard>", dashboardBaseURL)))
	}

	return blocks
}
