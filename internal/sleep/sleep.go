// Package sleep implements the pure Sleep/Wake Analyzer: it derives mean
// wake/sleep minute-of-day from long AFK runs.
package sleep

import (
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
)

// DailySleepWake is one row of the analyzer's output: a local date and
// its inferred wake/sleep minute-of-day, either of which may be absent.
type DailySleepWake struct {
	Date         string
	WakeMinutes  *int
	SleepMinutes *int
}

// Result is the full output of Analyze.
type Result struct {
	AvgWakeMin  *float64
	AvgSleepMin *float64
	Records     []DailySleepWake
}

// Analyze considers only AFK events with status == afk and
// duration >= sleepMinSeconds ("long AFK runs"). For each such event,
// span [ts, ts+d) projected to the target timezone, the local date of ts
// records a sleep-minute (minute-of-day of ts, earliest wins per date),
// and the local date of ts+d records a wake-minute (minute-of-day of
// ts+d, earliest wins per date). Averages are computed across days that
// have a value; days without one are omitted from the divisor. Output
// preserves one row per targetDateKey, in input order.
func Analyze(events []activitywatch.AfkEvent, targetDateKeys []string, offsetMinutes int, sleepMinSeconds float64) Result {
	loc := time.FixedZone("target", offsetMinutes*60)

	sleepByDate := make(map[string]int)
	wakeByDate := make(map[string]int)

	for _, e := range events {
		if e.Status != activitywatch.StatusAfk {
			continue
		}
		if e.Duration < sleepMinSeconds {
			continue
		}

		start := e.Timestamp.In(loc)
		end := e.Timestamp.Add(time.Duration(e.Duration * float64(time.Second))).In(loc)

		sleepDate := start.Format("2006-01-02")
		sleepMinute := start.Hour()*60 + start.Minute()
		if existing, ok := sleepByDate[sleepDate]; !ok || sleepMinute < existing {
			sleepByDate[sleepDate] = sleepMinute
		}

		wakeDate := end.Format("2006-01-02")
		wakeMinute := end.Hour()*60 + end.Minute()
		if existing, ok := wakeByDate[wakeDate]; !ok || wakeMinute < existing {
			wakeByDate[wakeDate] = wakeMinute
		}
	}

	records := make([]DailySleepWake, len(targetDateKeys))
	var sleepSum, wakeSum float64
	var sleepCount, wakeCount int

	for i, key := range targetDateKeys {
		rec := DailySleepWake{Date: key}
		if m, ok := sleepByDate[key]; ok {
			v := m
			rec.SleepMinutes = &v
			sleepSum += float64(m)
			sleepCount++
		}
		if m, ok := wakeByDate[key]; ok {
			v := m
			rec.WakeMinutes = &v
			wakeSum += float64(m)
			wakeCount++
		}
		records[i] = rec
	}

	result := Result{Records: records}
	if sleepCount > 0 {
		avg := sleepSum / float64(sleepCount)
		result.AvgSleepMin = &avg
	}
	if wakeCount > 0 {
		avg := wakeSum / float64(wakeCount)
		result.AvgWakeMin = &avg
	}
	return result
}
