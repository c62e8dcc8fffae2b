package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
)

const maxMrkdwnChars = 3500

const ellipsis = "…"

// truncateMrkdwn cuts s to at most limit bytes, leaving room for a
// trailing ellipsis and never splitting a multibyte rune.
func truncateMrkdwn(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len(ellipsis)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

// WeeklyReportInput carries everything the weekly layout needs to render,
// independent of how the caller obtained it.
type WeeklyReportInput struct {
	StartDate        string
	EndDate          string
	TotalWorkSeconds float64
	AvgPerDaySeconds float64
	AvgWakeMinutes   *float64
	AvgSleepMinutes  *float64
	TopProjects      []activitywatch.ProjectUsage
	HeatmapImageURL  string
	HeatmapSlackFile *SlackFileRef
	Analysis         *analyzer.WeeklyAnalysisResult
}

// BuildWeeklyReport composes the fixed weekly-report layout: header with
// date range, fields block, project ranking, an optional heatmap image
// (preferring slack_file.id, then slack_file.url, then a bare image_url),
// AI analysis sections, and a context footer carrying the next action.
func BuildWeeklyReport(input WeeklyReportInput) []Block {
	blocks := []Block{Header(fmt.Sprintf("Weekly Report — %s to %s", input.StartDate, input.EndDate))}
	blocks = append(blocks, Divider())

	wake := "—"
	if input.AvgWakeMinutes != nil {
		wake = formatMinuteOfDay(*input.AvgWakeMinutes)
	}
	sleep := "—"
	if input.AvgSleepMinutes != nil {
		sleep = formatMinuteOfDay(*input.AvgSleepMinutes)
	}

	blocks = append(blocks, SectionFields(
		fmt.Sprintf("*Total work:*\n%s", formatDuration(input.TotalWorkSeconds)),
		fmt.Sprintf("*Avg/day:*\n%s", formatDuration(input.AvgPerDaySeconds)),
		fmt.Sprintf("*Avg wake:*\n%s", wake),
		fmt.Sprintf("*Avg sleep:*\n%s", sleep),
	))

	if len(input.TopProjects) > 0 {
		var lines string
		for i, p := range input.TopProjects {
			lines += fmt.Sprintf("%s %s — %s\n", medalOrBullet(i+1), p.Project, formatDuration(p.Seconds))
		}
		blocks = append(blocks, Section(fmt.Sprintf("*Top Projects*\n%s", lines)))
	}

	if img := weeklyImageBlock(input); img != nil {
		blocks = append(blocks, *img)
	}

	if input.Analysis != nil {
		blocks = append(blocks, Section(fmt.Sprintf("*%s*\n%s", input.Analysis.Title, input.Analysis.Summary)))
		if len(input.Analysis.Insights) > 0 {
			var lines string
			for _, insight := range input.Analysis.Insights {
				lines += fmt.Sprintf("• %s\n", insight)
			}
			blocks = append(blocks, Section(fmt.Sprintf("*Insights*\n%s", lines)))
		}
		blocks = append(blocks, Context(fmt.Sprintf("➡ %s", input.Analysis.NextAction)))
	}

	return blocks
}

// weeklyImageBlock picks the preferred image source: slack_file.id, then
// slack_file.url, then a bare image_url. Returns nil if none are set.
func weeklyImageBlock(input WeeklyReportInput) *Block {
	if input.HeatmapSlackFile != nil && input.HeatmapSlackFile.ID != "" {
		b := ImageFromSlackFile("Weekly activity heatmap", SlackFileRef{ID: input.HeatmapSlackFile.ID})
		return &b
	}
	if input.HeatmapSlackFile != nil && input.HeatmapSlackFile.URL != "" {
		b := ImageFromSlackFile("Weekly activity heatmap", SlackFileRef{URL: input.HeatmapSlackFile.URL})
		return &b
	}
	if input.HeatmapImageURL != "" {
		b := Image("Weekly activity heatmap", input.HeatmapImageURL)
		return &b
	}
	return nil
}

// CreateWeeklyReportMrkdwn produces a single plain-text-equivalent
// rendering of the weekly layout, for delivery channels that accept only
// text plus a caption. Truncated with an ellipsis past maxMrkdwnChars.
func CreateWeeklyReportMrkdwn(input WeeklyReportInput) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Weekly Report — %s to %s\n\n", input.StartDate, input.EndDate))

	wake := "—"
	if input.AvgWakeMinutes != nil {
		wake = formatMinuteOfDay(*input.AvgWakeMinutes)
	}
	sleep := "—"
	if input.AvgSleepMinutes != nil {
		sleep = formatMinuteOfDay(*input.AvgSleepMinutes)
	}
	sb.WriteString(fmt.Sprintf("Total work: %s\n", formatDuration(input.TotalWorkSeconds)))
	sb.WriteString(fmt.Sprintf("Avg/day: %s\n", formatDuration(input.AvgPerDaySeconds)))
	sb.WriteString(fmt.Sprintf("Avg wake: %s\n", wake))
	sb.WriteString(fmt.Sprintf("Avg sleep: %s\n\n", sleep))

	if len(input.TopProjects) > 0 {
		sb.WriteString("Top Projects:\n")
		for i, p := range input.TopProjects {
			sb.WriteString(fmt.Sprintf("%s %s — %s\n", medalOrBullet(i+1), p.Project, formatDuration(p.Seconds)))
		}
		sb.WriteString("\n")
	}

	if input.Analysis != nil {
		sb.WriteString(fmt.Sprintf("%s\n%s\n\n", input.Analysis.Title, input.Analysis.Summary))
		for _, insight := range input.Analysis.Insights {
			sb.WriteString(fmt.Sprintf("• %s\n", insight))
		}
		sb.WriteString(fmt.Sprintf("\nNext action: %s\n", input.Analysis.NextAction))
	}

	return truncateMrkdwn(sb.String(), maxMrkdwnChars)
}
