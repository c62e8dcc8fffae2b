// Package binning implements the pure Timezone Binner: it converts raw
// AFK events into per-day, per-hour active/AFK-second buckets in a target
// timezone. The binner never depends on a process-wide local timezone —
// the offset is always passed in by the caller.
package binning

import (
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
)

// HourBucket holds the active/AFK seconds attributed to one local hour.
type HourBucket struct {
	ActiveSeconds float64
	AfkSeconds    float64
}

// DailyHourlyBuckets is the 24-slot array of HourBucket for one local date.
type DailyHourlyBuckets struct {
	Date  string // YYYY-MM-DD in the target timezone
	Hours [24]HourBucket
}

// BinAfkEvents bins events into per-(date,hour) active/AFK seconds in the
// timezone described by offsetMinutes (e.g. +540 for JST). Events with a
// status outside {afk, not-afk} are discarded. Output order matches
// targetDateKeys order exactly; dates not listed receive no
// contributions, and listed dates with no contributing events yield 24
// zero buckets.
func BinAfkEvents(events []activitywatch.AfkEvent, targetDateKeys []string, offsetMinutes int) []DailyHourlyBuckets {
	loc := time.FixedZone("target", offsetMinutes*60)

	result := make([]DailyHourlyBuckets, len(targetDateKeys))
	index := make(map[string]int, len(targetDateKeys))
	for i, key := range targetDateKeys {
		result[i] = DailyHourlyBuckets{Date: key}
		index[key] = i
	}

	for _, e := range events {
		if e.Status != activitywatch.StatusAfk && e.Status != activitywatch.StatusNotAfk {
			continue
		}
		if e.Duration < 0 {
			continue
		}

		start := e.Timestamp.In(loc)
		end := e.Timestamp.Add(time.Duration(e.Duration * float64(time.Second))).In(loc)

		cursor := start
		for cursor.Before(end) {
			hourEnd := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cursor.Hour(), 0, 0, 0, loc).Add(time.Hour)
			segmentEnd := hourEnd
			if end.Before(segmentEnd) {
				segmentEnd = end
			}

			overlap := segmentEnd.Sub(cursor).Seconds()
			dateKey := cursor.Format("2006-01-02")
			if idx, ok := index[dateKey]; ok {
				hour := cursor.Hour()
				if e.Status == activitywatch.StatusNotAfk {
					result[idx].Hours[hour].ActiveSeconds += overlap
				} else {
					result[idx].Hours[hour].AfkSeconds += overlap
				}
			}

			cursor = segmentEnd
		}
	}

	return result
}

// BuildDateKeys returns the last `days` local dates ending yesterday
// (now is excluded — weekly reports cover completed days only), oldest
// first. days is clamped to [1, 31].
func BuildDateKeys(now time.Time, days int, offsetMinutes int) []string {
	if days < 1 {
		days = 1
	}
	if days > 31 {
		days = 31
	}

	loc := time.FixedZone("target", offsetMinutes*60)
	today := now.In(loc)
	todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	keys := make([]string, days)
	for i := 0; i < days; i++ {
		// i=0 is the oldest date: days back from today.
		offset := days - i
		d := todayMidnight.AddDate(0, 0, -offset)
		keys[i] = d.Format("2006-01-02")
	}
	return keys
}

// SummarizeActiveSeconds reduces per-day buckets to the total active
// seconds across days that actually recorded activity, and the count of
// those days. A day with no active seconds in any hour (including a day
// that recorded AFK time only) does not count toward either the total or the day count, so
// callers can compute a true "seconds per day with data" average instead
// of diluting it by the full window length.
func SummarizeActiveSeconds(days []DailyHourlyBuckets) (totalSeconds float64, daysWithData int) {
	for _, day := range days {
		var dayTotal float64
		for _, h := range day.Hours {
			dayTotal += h.ActiveSeconds
		}
		if dayTotal > 0 {
			totalSeconds += dayTotal
			daysWithData++
		}
	}
	return totalSeconds, daysWithData
}
