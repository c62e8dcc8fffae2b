package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
)

// Generate turns a DailyAnalysisInput into an AnalysisResult by calling the
// configured LLM. A missing API key is a config_error; the caller is
// expected to fall back to GetFallbackAnalysis on any returned error.
func Generate(ctx context.Context, cfg Config, input DailyAnalysisInput) (AnalysisResult, error) {
	if cfg.APIKey == "" {
		return AnalysisResult{}, configError("analyzer API key is not configured")
	}

	userPrompt := buildDailyUserPrompt(input)
	text, err := callLLM(ctx, cfg, dailySystemPrompt, userPrompt)
	if err != nil {
		return AnalysisResult{}, err
	}

	var parsed struct {
		Summary  string   `json:"summary"`
		Insights []string `json:"insights"`
		Tip      string   `json:"tip"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return AnalysisResult{}, parseError("decoding analyzer JSON payload", err)
	}

	if parsed.Summary == "" {
		return AnalysisResult{}, parseError("analyzer response missing non-empty summary", nil)
	}
	if len(parsed.Insights) == 0 {
		return AnalysisResult{}, parseError("analyzer response missing at least one insight", nil)
	}
	if parsed.Tip == "" {
		return AnalysisResult{}, parseError("analyzer response missing non-empty tip", nil)
	}

	return AnalysisResult{Summary: parsed.Summary, Insights: parsed.Insights, Tip: parsed.Tip}, nil
}

// GenerateWeekly is the weekly counterpart of Generate.
func GenerateWeekly(ctx context.Context, cfg Config, input WeeklyAnalysisInput) (WeeklyAnalysisResult, error) {
	if cfg.APIKey == "" {
		return WeeklyAnalysisResult{}, configError("analyzer API key is not configured")
	}

	userPrompt := buildWeeklyUserPrompt(input)
	text, err := callLLM(ctx, cfg, weeklySystemPrompt, userPrompt)
	if err != nil {
		return WeeklyAnalysisResult{}, err
	}

	var parsed struct {
		Title      string   `json:"title"`
		Summary    string   `json:"summary"`
		Insights   []string `json:"insights"`
		NextAction string   `json:"nextAction"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return WeeklyAnalysisResult{}, parseError("decoding weekly analyzer JSON payload", err)
	}

	if parsed.Title == "" || parsed.Summary == "" || parsed.NextAction == "" {
		return WeeklyAnalysisResult{}, parseError("weekly analyzer response missing a required field", nil)
	}
	if len(parsed.Insights) == 0 {
		return WeeklyAnalysisResult{}, parseError("weekly analyzer response missing at least one insight", nil)
	}

	return WeeklyAnalysisResult{
		Title:      parsed.Title,
		Summary:    parsed.Summary,
		Insights:   parsed.Insights,
		NextAction: parsed.NextAction,
	}, nil
}

func buildDailyUserPrompt(input DailyAnalysisInput) string {
	m := input.Metrics
	topAppsStr := ""
	for i, app := range m.TopApps {
		if i > 0 {
			topAppsStr += ", "
		}
		topAppsStr += fmt.Sprintf("%s (%ds)", app.App, int(app.Seconds))
	}

	return fmt.Sprintf(
		"Date: %s\nTotal active seconds: %d\nLongest continuous stretch (seconds): %d\nNight work seconds: %d\nTop applications: %s\n",
		input.Date, int(m.WorkSeconds), int(m.MaxContinuousSeconds), int(m.NightWorkSeconds), topAppsStr,
	)
}

func buildWeeklyUserPrompt(input WeeklyAnalysisInput) string {
	projectsStr := ""
	for i, p := range input.TopProjects {
		if i > 0 {
			projectsStr += ", "
		}
		projectsStr += fmt.Sprintf("%s (%ds)", p.Project, int(p.Seconds))
	}

	wake := "unknown"
	if input.AvgWakeMinutes != nil {
		wake = fmt.Sprintf("%.0f", *input.AvgWakeMinutes)
	}
	sleep := "unknown"
	if input.AvgSleepMinutes != nil {
		sleep = fmt.Sprintf("%.0f", *input.AvgSleepMinutes)
	}

	return fmt.Sprintf(
		"Week: %s to %s\nDays with data: %d\nTotal work seconds: %d\nAverage active seconds per day: %.0f\nAverage wake minute-of-day: %s\nAverage sleep minute-of-day: %s\nTop projects: %s\n",
		input.StartDate, input.EndDate, input.DaysWithData, int(input.TotalWorkSeconds),
		input.AvgNotAfkSecondsPerDay, wake, sleep, projectsStr,
	)
}
