// Package analyzer turns activity metrics into human-readable analysis,
// either via a remote LLM or a deterministic, non-networked fallback that
// produces the same shape from fixed thresholds.
package analyzer

import "github.com/blackwell-systems/aw-analyzer/internal/activitywatch"

// DailyAnalysisInput is the structured input for a daily AnalysisResult.
type DailyAnalysisInput struct {
	Date    string
	Metrics activitywatch.DailyMetrics
}

// WeeklyAnalysisInput is the structured input for a WeeklyAnalysisResult.
type WeeklyAnalysisInput struct {
	StartDate              string
	EndDate                string
	TotalWorkSeconds       float64
	AvgNotAfkSecondsPerDay float64
	AvgWakeMinutes         *float64
	AvgSleepMinutes        *float64
	DaysWithData           int
	TopProjects            []activitywatch.ProjectUsage
}

// AnalysisResult is the daily analysis shape: a non-empty summary, 1..N
// insights, and a non-empty tip.
type AnalysisResult struct {
	Summary  string
	Insights []string
	Tip      string
}

// WeeklyAnalysisResult is the weekly analysis shape; all fields required.
type WeeklyAnalysisResult struct {
	Title      string
	Summary    string
	Insights   []string
	NextAction string
}

// Config carries the subset of application configuration the analyzer
// needs: an optional API key (empty activates the fallback path) and an
// optional model override.
type Config struct {
	APIKey string
	Model  string
}
