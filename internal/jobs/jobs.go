// Package jobs implements the three reference jobs evaluated by the
// scheduler: daily summary, continuous-work alert, and daily report. Each
// is a small value holding exactly the collaborators it needs, satisfying
// scheduler.Job.
package jobs

import (
	"fmt"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
	"github.com/blackwell-systems/aw-analyzer/internal/chat"
	"github.com/blackwell-systems/aw-analyzer/internal/formatter"
	"github.com/blackwell-systems/aw-analyzer/internal/logging"
	"github.com/blackwell-systems/aw-analyzer/internal/scheduler"
)

// log returns the current process-wide logger scoped to this package.
// Looked up fresh on each call rather than cached at init time, since
// logging.Configure may run after package variables are initialized.
func log() *logging.Logger {
	return logging.L().With("jobs")
}

// localDate returns t's date, in the timezone described by offsetMinutes,
// as a YYYY-MM-DD string.
func localDate(t time.Time, offsetMinutes int) string {
	loc := time.FixedZone("target", offsetMinutes*60)
	return t.In(loc).Format("2006-01-02")
}

// dailyMarkerKey is the state key jobs use for the daily-idempotency
// pattern described in spec.md §4.1: a job writes today's date to this
// key on successful emission, and shouldRun checks the marker has not
// already been written for today.
func dailyMarkerKey(jobID, dateKey string) string {
	return fmt.Sprintf("daily:%s:%s", jobID, dateKey)
}

// startOfLocalDay returns midnight of t's local date in the timezone
// described by offsetMinutes.
func startOfLocalDay(t time.Time, offsetMinutes int) time.Time {
	loc := time.FixedZone("target", offsetMinutes*60)
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DailySummaryJob fires once per local day, at or after TargetHour:
// TargetMinute, summarizing yesterday's activity as a desktop toast.
type DailySummaryJob struct {
	Provider      *activitywatch.Provider
	OffsetMinutes int
	TargetHour    int
	TargetMinute  int
}

func (j *DailySummaryJob) ID() string { return "daily-summary" }

func (j *DailySummaryJob) ShouldRun(sc *scheduler.Context) bool {
	loc := time.FixedZone("target", j.OffsetMinutes*60)
	local := sc.Now.In(loc)
	atOrAfterTarget := local.Hour() > j.TargetHour ||
		(local.Hour() == j.TargetHour && local.Minute() >= j.TargetMinute)
	if !atOrAfterTarget {
		return false
	}

	today := localDate(sc.Now, j.OffsetMinutes)
	marker, ok := sc.State.GetString(dailyMarkerKey(j.ID(), today))
	return !ok || marker != today
}

func (j *DailySummaryJob) Run(sc *scheduler.Context) (scheduler.JobResult, error) {
	today := localDate(sc.Now, j.OffsetMinutes)
	startOfToday := startOfLocalDay(sc.Now, j.OffsetMinutes)
	yesterday := startOfToday.AddDate(0, 0, -1)

	metrics, err := j.Provider.GetMetrics(sc.Context, activitywatch.TimeRange{Start: yesterday, End: yesterday})
	if err != nil {
		return scheduler.JobResult{}, err
	}

	title := "Yesterday's Activity"
	body := fmt.Sprintf("Worked %s, longest stretch %s, top app %s",
		formatDuration(metrics.WorkSeconds),
		formatDuration(metrics.MaxContinuousSeconds),
		topAppName(metrics),
	)

	if err := sc.State.Set(dailyMarkerKey(j.ID(), today), today); err != nil {
		return scheduler.JobResult{}, err
	}

	return scheduler.Notify(title, body), nil
}

// ContinuousWorkAlertJob fires on every tick, and notifies (subject to
// cooldown) when the current day's longest continuous stretch reaches or
// exceeds a threshold.
type ContinuousWorkAlertJob struct {
	Provider         *activitywatch.Provider
	OffsetMinutes    int
	ThresholdSeconds float64
	CooldownMs       int64
}

func (j *ContinuousWorkAlertJob) ID() string { return "continuous-work-alert" }

func (j *ContinuousWorkAlertJob) ShouldRun(sc *scheduler.Context) bool { return true }

func (j *ContinuousWorkAlertJob) Run(sc *scheduler.Context) (scheduler.JobResult, error) {
	startOfToday := startOfLocalDay(sc.Now, j.OffsetMinutes)

	metrics, err := j.Provider.GetMetrics(sc.Context, activitywatch.TimeRange{Start: startOfToday, End: sc.Now})
	if err != nil {
		return scheduler.JobResult{}, err
	}

	if metrics.MaxContinuousSeconds < j.ThresholdSeconds {
		return scheduler.NoNotify("max continuous stretch below threshold"), nil
	}

	body := fmt.Sprintf("You've been at it for %s without a break.", formatDuration(metrics.MaxContinuousSeconds))
	return scheduler.NotifyWithCooldown("Take a Break?", body, "cooldown:continuous-work-alert", j.CooldownMs), nil
}

// DailyReportJob fires once per local day, composing a rich block message
// from yesterday's metrics plus AI (or fallback) analysis, delivering it
// to chat, and confirming via a local toast regardless of chat outcome.
type DailyReportJob struct {
	Provider         *activitywatch.Provider
	HTTPClient       chat.HTTPClient
	AnalyzerConfig   analyzer.Config
	WebhookURL       string
	DashboardBaseURL string
	OffsetMinutes    int
	TargetHour       int
	TargetMinute     int
}

func (j *DailyReportJob) ID() string { return "daily-report" }

func (j *DailyReportJob) ShouldRun(sc *scheduler.Context) bool {
	loc := time.FixedZone("target", j.OffsetMinutes*60)
	local := sc.Now.In(loc)
	atOrAfterTarget := local.Hour() > j.TargetHour ||
		(local.Hour() == j.TargetHour && local.Minute() >= j.TargetMinute)
	if !atOrAfterTarget {
		return false
	}

	today := localDate(sc.Now, j.OffsetMinutes)
	marker, ok := sc.State.GetString(dailyMarkerKey(j.ID(), today))
	return !ok || marker != today
}

func (j *DailyReportJob) Run(sc *scheduler.Context) (scheduler.JobResult, error) {
	today := localDate(sc.Now, j.OffsetMinutes)
	startOfToday := startOfLocalDay(sc.Now, j.OffsetMinutes)
	yesterday := startOfToday.AddDate(0, 0, -1)

	metrics, err := j.Provider.GetMetrics(sc.Context, activitywatch.TimeRange{Start: yesterday, End: yesterday})
	if err != nil {
		return scheduler.JobResult{}, err
	}

	yesterdayKey := localDate(yesterday, j.OffsetMinutes)
	input := analyzer.DailyAnalysisInput{Date: yesterdayKey, Metrics: metrics}

	result, err := analyzer.Generate(sc.Context, j.AnalyzerConfig, input)
	if err != nil {
		log().Warn("daily-report: analyzer failed, using fallback: %v", err)
		result = analyzer.GetFallbackAnalysis(input)
	}

	blocks := formatter.BuildDailyReport(yesterdayKey, metrics, &result, j.DashboardBaseURL)
	if err := chat.PostMessage(sc.Context, j.HTTPClient, j.WebhookURL, result.Summary, blocks); err != nil {
		log().Error("daily-report: chat delivery failed: %v", err)
	}

	if err := sc.State.Set(dailyMarkerKey(j.ID(), today), today); err != nil {
		return scheduler.JobResult{}, err
	}

	return scheduler.Notify("Daily Report Generated", fmt.Sprintf("Report for %s is ready.", yesterdayKey)), nil
}

func topAppName(metrics activitywatch.DailyMetrics) string {
	if len(metrics.TopApps) == 0 {
		return "none"
	}
	return metrics.TopApps[0].App
}

func formatDuration(seconds float64) string {
	totalMinutes := int(seconds) / 60
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
