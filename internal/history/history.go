package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
)

// version is the value recorded alongside every snapshot. It identifies
// the metric_points schema the row was written under, not the binary
// release — only currentSchemaVersion drives migrations.
const version = "1"

// RecordTick snapshots a single tick's daily metrics.
func (h *History) RecordTick(now time.Time, metrics activitywatch.DailyMetrics) (int64, error) {
	snapshotID, err := h.createSnapshot(now, KindTick)
	if err != nil {
		return 0, err
	}

	points := map[string]float64{
		"workSeconds":          metrics.WorkSeconds,
		"afkSeconds":           metrics.AfkSeconds,
		"nightWorkSeconds":     metrics.NightWorkSeconds,
		"maxContinuousSeconds": metrics.MaxContinuousSeconds,
	}
	if len(metrics.TopApps) > 0 {
		points["topAppSeconds"] = metrics.TopApps[0].Seconds
	}

	for name, value := range points {
		detail := ""
		if name == "topAppSeconds" {
			detail = metrics.TopApps[0].App
		}
		if err := h.insertMetricPoint(snapshotID, name, value, detail); err != nil {
			return snapshotID, err
		}
	}
	return snapshotID, nil
}

// RecordWeekly snapshots a weekly report's scalar summary.
func (h *History) RecordWeekly(now time.Time, summary WeeklySummary) (int64, error) {
	snapshotID, err := h.createSnapshot(now, KindWeekly)
	if err != nil {
		return 0, err
	}

	points := map[string]float64{
		"totalWorkSeconds": summary.TotalWorkSeconds,
		"avgPerDaySeconds": summary.AvgPerDaySeconds,
	}
	if summary.AvgWakeMinutes != nil {
		points["avgWakeMinutes"] = *summary.AvgWakeMinutes
	}
	if summary.AvgSleepMinutes != nil {
		points["avgSleepMinutes"] = *summary.AvgSleepMinutes
	}

	for name, value := range points {
		if err := h.insertMetricPoint(snapshotID, name, value, ""); err != nil {
			return snapshotID, err
		}
	}
	return snapshotID, nil
}

func (h *History) createSnapshot(now time.Time, kind SnapshotKind) (int64, error) {
	result, err := h.conn.Exec(
		"INSERT INTO snapshots (taken_at, kind, version) VALUES (?, ?, ?)",
		now.UTC().Format(time.RFC3339), string(kind), version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (h *History) insertMetricPoint(snapshotID int64, name string, value float64, detail string) error {
	_, err := h.conn.Exec(
		"INSERT INTO metric_points (snapshot_id, metric_name, metric_value, detail) VALUES (?, ?, ?, ?)",
		snapshotID, name, value, detail,
	)
	return err
}

// Trend returns the last limit MetricPoints recorded under name, oldest
// first, for the `trend` CLI verb.
func (h *History) Trend(name string, limit int) ([]MetricPoint, error) {
	rows, err := h.conn.Query(`
		SELECT mp.id, mp.snapshot_id, mp.metric_name, mp.metric_value, mp.detail, s.taken_at
		FROM metric_points mp
		JOIN snapshots s ON s.id = mp.snapshot_id
		WHERE mp.metric_name = ?
		ORDER BY s.taken_at DESC
		LIMIT ?
	`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("querying trend for %q: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var descending []MetricPoint
	for rows.Next() {
		var p MetricPoint
		var detail sql.NullString
		var takenAt string
		if err := rows.Scan(&p.ID, &p.SnapshotID, &p.Name, &p.Value, &detail, &takenAt); err != nil {
			return nil, err
		}
		p.Detail = detail.String
		descending = append(descending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := make([]MetricPoint, len(descending))
	for i, p := range descending {
		points[len(descending)-1-i] = p
	}
	return points, nil
}
