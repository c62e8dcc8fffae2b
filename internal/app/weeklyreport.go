package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
	"github.com/blackwell-systems/aw-analyzer/internal/binning"
	"github.com/blackwell-systems/aw-analyzer/internal/chat"
	"github.com/blackwell-systems/aw-analyzer/internal/formatter"
	"github.com/blackwell-systems/aw-analyzer/internal/history"
	"github.com/blackwell-systems/aw-analyzer/internal/logging"
	"github.com/blackwell-systems/aw-analyzer/internal/sleep"
)

const maxTopProjects = 5

var flagWeeklyDays int

var weeklyReportCmd = &cobra.Command{
	Use:   "weekly-report",
	Short: "Run the multi-day report pipeline",
	RunE:  runWeeklyReport,
}

func init() {
	weeklyReportCmd.Flags().IntVar(&flagWeeklyDays, "days", 7, "Number of completed local days to cover (clamped 1-31)")
	rootCmd.AddCommand(weeklyReportCmd)
}

// runWeeklyReport assembles the full window → analyze → format → deliver
// → record pipeline. A config_error (no webhook configured to deliver
// to) aborts with no side effects, per spec.md §4.10; every other
// failure in the optional image-upload leg is logged and the pipeline
// continues without an image, per the fail-open policy in spec.md §7.
func runWeeklyReport(cmd *cobra.Command, args []string) error {
	log := logging.L().With("weekly-report")

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.closeHistory()

	if d.cfg.Chat.WebhookURL == "" {
		err := fmt.Errorf("chat webhook_url is not configured")
		log.Error("%v", err)
		return err
	}

	ctx := context.Background()
	now := realClock.Now()
	tz := d.cfg.Timezone.OffsetMinutes

	dateKeys := binning.BuildDateKeys(now, flagWeeklyDays, tz)
	startDate, endDate := dateKeys[0], dateKeys[len(dateKeys)-1]

	loc := time.FixedZone("target", tz*60)
	firstDay, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return err
	}
	lastDay, err := time.ParseInLocation("2006-01-02", endDate, loc)
	if err != nil {
		return err
	}
	tr := activitywatch.TimeRange{Start: firstDay, End: lastDay}

	metrics, err := d.provider.GetMetrics(ctx, tr)
	if err != nil {
		log.Error("fetching metrics: %v", err)
		return err
	}

	projectMetrics, err := d.provider.GetEditorProjectMetrics(ctx, tr)
	if err != nil {
		log.Error("fetching editor project metrics: %v", err)
		return err
	}
	topProjects := projectMetrics.Projects
	if len(topProjects) > maxTopProjects {
		topProjects = topProjects[:maxTopProjects]
	}

	afkEvents, err := d.provider.GetAfkEvents(ctx, tr)
	if err != nil {
		log.Error("fetching afk events: %v", err)
		return err
	}

	sleepResult := sleep.Analyze(afkEvents, dateKeys, tz, float64(d.cfg.Schedule.SleepMinSeconds))

	dailyBuckets := binning.BinAfkEvents(afkEvents, dateKeys, tz)
	activeSeconds, daysWithData := binning.SummarizeActiveSeconds(dailyBuckets)
	avgNotAfkSecondsPerDay := 0.0
	if daysWithData > 0 {
		avgNotAfkSecondsPerDay = activeSeconds / float64(daysWithData)
	}

	analysisInput := analyzer.WeeklyAnalysisInput{
		StartDate:              startDate,
		EndDate:                endDate,
		TotalWorkSeconds:       metrics.WorkSeconds,
		AvgNotAfkSecondsPerDay: avgNotAfkSecondsPerDay,
		AvgWakeMinutes:         sleepResult.AvgWakeMin,
		AvgSleepMinutes:        sleepResult.AvgSleepMin,
		DaysWithData:           daysWithData,
		TopProjects:            topProjects,
	}

	analysis, err := analyzer.GenerateWeekly(ctx, analyzer.Config{APIKey: d.cfg.LLM.APIKey, Model: d.cfg.LLM.Model}, analysisInput)
	if err != nil {
		log.Warn("weekly analyzer failed, using fallback: %v", err)
		analysis = analyzer.GetFallbackWeeklyAnalysis(analysisInput)
	}

	reportInput := formatter.WeeklyReportInput{
		StartDate:        startDate,
		EndDate:          endDate,
		TotalWorkSeconds: metrics.WorkSeconds,
		AvgPerDaySeconds: metrics.WorkSeconds / float64(len(dateKeys)),
		AvgWakeMinutes:   sleepResult.AvgWakeMin,
		AvgSleepMinutes:  sleepResult.AvgSleepMin,
		TopProjects:      topProjects,
		Analysis:         &analysis,
	}

	if ref := uploadHeatmap(ctx, d, dailyBuckets); ref != nil {
		reportInput.HeatmapSlackFile = ref
	}

	blocks := formatter.BuildWeeklyReport(reportInput)
	fallbackText := formatter.CreateWeeklyReportMrkdwn(reportInput)

	if err := chat.PostMessage(ctx, d.chatClient, d.cfg.Chat.WebhookURL, fallbackText, blocks); err != nil {
		log.Error("chat delivery failed: %v", err)
	}

	if d.history != nil {
		summary := history.WeeklySummary{
			TotalWorkSeconds: metrics.WorkSeconds,
			AvgPerDaySeconds: reportInput.AvgPerDaySeconds,
			AvgWakeMinutes:   sleepResult.AvgWakeMin,
			AvgSleepMinutes:  sleepResult.AvgSleepMin,
		}
		if _, err := d.history.RecordWeekly(now, summary); err != nil {
			log.Warn("recording weekly snapshot: %v", err)
		}
	} else if d.historyErr != nil {
		log.Warn("history store unavailable: %v", d.historyErr)
	}

	return nil
}

// uploadHeatmap renders the SVG heatmap and attempts the three-leg file
// upload plus the best-effort public-share flow. Any failure — including
// an unconfigured bot token — is logged and treated as "no image",
// never as a weekly-report failure.
func uploadHeatmap(ctx context.Context, d *deps, days []binning.DailyHourlyBuckets) *formatter.SlackFileRef {
	if d.cfg.Chat.BotToken == "" {
		return nil
	}

	svg := formatter.RenderHeatmapSVG(days)

	uploaderCfg := chat.UploaderConfig{
		APIBaseURL: d.cfg.Chat.APIBaseURL,
		BotToken:   d.cfg.Chat.BotToken,
		ChannelID:  d.cfg.Chat.ChannelID,
	}

	result, err := chat.UploadFile(ctx, d.chatClient, uploaderCfg, "heatmap.svg", []byte(svg), "Weekly activity heatmap", "")
	if err != nil {
		logging.L().With("weekly-report").Warn("heatmap upload failed: %v", err)
		return nil
	}

	if publicURL := chat.SharePublic(ctx, d.chatClient, uploaderCfg, result.FileID); publicURL != "" {
		return &formatter.SlackFileRef{URL: publicURL}
	}
	return &formatter.SlackFileRef{ID: result.FileID}
}
