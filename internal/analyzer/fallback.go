package analyzer

import (
	"fmt"
	"strings"
)

// continuousBreakThresholdSeconds is the longest-continuous-stretch length
// at or above which the fallback tip suggests a break. Below it, the tip
// encourages more of the same rather than rest.
const continuousBreakThresholdSeconds = 3 * 3600

// formatDuration renders seconds as "8h" when the minute component is
// zero, or "1h 30m" otherwise.
func formatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// GetFallbackAnalysis is the deterministic, non-networked reference
// implementation of the daily Analyzer contract. For a given input it
// always returns the same output.
func GetFallbackAnalysis(input DailyAnalysisInput) AnalysisResult {
	m := input.Metrics

	if m.WorkSeconds == 0 {
		return AnalysisResult{
			Summary:  "No active time was recorded today.",
			Insights: []string{"There is no activity data for this day yet."},
			Tip:      "Once activity is recorded, check back for a personalized summary.",
		}
	}

	summary := fmt.Sprintf(
		"You were active for %s today, with your longest continuous stretch lasting %s.",
		formatDuration(m.WorkSeconds), formatDuration(m.MaxContinuousSeconds),
	)

	var insights []string
	if len(m.TopApps) > 0 {
		insights = append(insights, fmt.Sprintf("Most of your time went to %s.", m.TopApps[0].App))
	}
	if m.MaxContinuousSeconds >= continuousBreakThresholdSeconds {
		insights = append(insights, fmt.Sprintf("Your longest stretch without a break was %s.", formatDuration(m.MaxContinuousSeconds)))
	} else {
		insights = append(insights, "You maintained solid focus in manageable stretches throughout the day.")
	}
	if len(insights) == 0 {
		insights = append(insights, "Activity was recorded, but no dominant application stood out today.")
	}

	var tip string
	if m.MaxContinuousSeconds >= continuousBreakThresholdSeconds {
		tip = "Consider taking a short break during your next long stretch to recharge."
	} else {
		tip = "Keep the momentum going — consider blocking out another focused session tomorrow."
	}

	return AnalysisResult{Summary: summary, Insights: insights, Tip: tip}
}

// GetFallbackWeeklyAnalysis is the deterministic reference implementation
// of the weekly Analyzer contract.
func GetFallbackWeeklyAnalysis(input WeeklyAnalysisInput) WeeklyAnalysisResult {
	title := fmt.Sprintf("Week of %s to %s", input.StartDate, input.EndDate)

	if input.DaysWithData == 0 {
		return WeeklyAnalysisResult{
			Title:      title,
			Summary:    "No activity data was recorded this week.",
			Insights:   []string{"There is nothing to analyze yet for this period."},
			NextAction: "Check back once activity has been recorded for a few days.",
		}
	}

	avgPerDay := formatDuration(input.AvgNotAfkSecondsPerDay)
	summary := fmt.Sprintf(
		"Across %d day(s) with recorded activity, you averaged %s of active time per day, totaling %s for the week.",
		input.DaysWithData, avgPerDay, formatDuration(input.TotalWorkSeconds),
	)

	var insights []string
	if len(input.TopProjects) > 0 {
		names := make([]string, 0, 3)
		for i, p := range input.TopProjects {
			if i >= 3 {
				break
			}
			names = append(names, p.Project)
		}
		insights = append(insights, fmt.Sprintf("Your top project(s) this week: %s.", strings.Join(names, ", ")))
	}
	if input.AvgSleepMinutes != nil && input.AvgWakeMinutes != nil {
		insights = append(insights, fmt.Sprintf(
			"On average you went idle around %s and resumed around %s local time.",
			minutesOfDayToClock(*input.AvgSleepMinutes), minutesOfDayToClock(*input.AvgWakeMinutes),
		))
	}
	if len(insights) == 0 {
		insights = append(insights, "Activity was steady without a single standout pattern this week.")
	}

	return WeeklyAnalysisResult{
		Title:      title,
		Summary:    summary,
		Insights:   insights,
		NextAction: "Pick one project from this week to carry forward with a focused session next week.",
	}
}

func minutesOfDayToClock(minutes float64) string {
	total := int(minutes)
	hours := (total / 60) % 24
	mins := total % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
