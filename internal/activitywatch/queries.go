package activitywatch

import "fmt"

// period encodes a TimeRange as the half-open "[startOfDay(start),
// startOfDay(end)+1day)" period string the query API expects. The end
// date is exclusive, so implementers must add one day to the supplied
// end date — this function does that once, here, so no caller has to
// remember it.
func period(r TimeRange) string {
	start := r.Start.Format("2006-01-02")
	end := r.End.AddDate(0, 0, 1).Format("2006-01-02")
	return fmt.Sprintf("%s/%s", start, end)
}

// workQuery composes the multi-statement query for work metrics: window
// events intersected with AFK=not-afk, merged by app, sorted by duration
// descending.
func workQuery(windowBucket, afkBucket string) []string {
	return []string{fmt.Sprintf(
		`events = query_bucket("%s");`+
			`afk_events = query_bucket("%s");`+
			`not_afk = filter_keyvals(afk_events, "status", ["not-afk"]);`+
			`events = filter_period_intersect(events, not_afk);`+
			`events = merge_events_by_keys(events, ["app"]);`+
			`events = sort_by_duration(events);`+
			`RETURN = events;`,
		windowBucket, afkBucket,
	)}
}

// afkMetricsQuery composes the multi-statement query for AFK metrics:
// AFK events filtered to status in {afk, not-afk}, merged by status,
// sorted by duration descending.
func afkMetricsQuery(afkBucket string) []string {
	return []string{fmt.Sprintf(
		`events = query_bucket("%s");`+
			`events = filter_keyvals(events, "status", ["afk", "not-afk"]);`+
			`events = merge_events_by_keys(events, ["status"]);`+
			`events = sort_by_duration(events);`+
			`RETURN = events;`,
		afkBucket,
	)}
}

// afkEventsQuery composes the multi-statement query for raw AFK events
// (used for binning and sleep inference): same status filter, sorted by
// timestamp ascending.
func afkEventsQuery(afkBucket string) []string {
	return []string{fmt.Sprintf(
		`events = query_bucket("%s");`+
			`events = filter_keyvals(events, "status", ["afk", "not-afk"]);`+
			`events = sort_by_timestamp(events);`+
			`RETURN = events;`,
		afkBucket,
	)}
}

// editorProjectsQuery composes the multi-statement query for
// editor-by-project metrics: editor events intersected with AFK=not-afk,
// merged by project, sorted by duration descending.
func editorProjectsQuery(editorBucket, afkBucket string) []string {
	return []string{fmt.Sprintf(
		`events = query_bucket("%s");`+
			`afk_events = query_bucket("%s");`+
			`not_afk = filter_keyvals(afk_events, "status", ["not-afk"]);`+
			`events = filter_period_intersect(events, not_afk);`+
			`events = merge_events_by_keys(events, ["project"]);`+
			`events = sort_by_duration(events);`+
			`RETURN = events;`,
		editorBucket, afkBucket,
	)}
}
