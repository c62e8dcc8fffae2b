package formatter

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/aw-analyzer/internal/binning"
)

const (
	heatmapCellSize   = 14
	heatmapCellGap    = 2
	heatmapLabelWidth = 90
	heatmapRowHeight  = heatmapCellSize + heatmapCellGap
)

// RenderHeatmapSVG renders per-day x per-hour active-second buckets as a
// standalone SVG document: one row per day, one cell per hour, shaded by
// the fraction of the hour spent active. Concrete rendering to PNG is an
// external collaborator's responsibility; this produces only the vector
// source.
func RenderHeatmapSVG(days []binning.DailyHourlyBuckets) string {
	var sb strings.Builder

	width := heatmapLabelWidth + 24*heatmapRowHeight
	height := len(days) * heatmapRowHeight
	if height == 0 {
		height = heatmapRowHeight
	}

	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#0d1117"/>` + "\n")

	for row, day := range days {
		y := row * heatmapRowHeight
		fmt.Fprintf(&sb, `<text x="4" y="%d" fill="#c9d1d9" font-size="11" font-family="monospace">%s</text>`+"\n", y+heatmapCellSize-3, day.Date)

		for hour, bucket := range day.Hours {
			x := heatmapLabelWidth + hour*heatmapRowHeight
			fraction := 0.0
			if bucket.ActiveSeconds > 0 {
				fraction = bucket.ActiveSeconds / 3600
				if fraction > 1 {
					fraction = 1
				}
			}
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				x, y, heatmapCellSize, heatmapCellSize, heatmapCellColor(fraction))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// heatmapCellColor maps an active-fraction in [0, 1] to a GitHub-style
// green shade, darkest at 0.
func heatmapCellColor(fraction float64) string {
	switch {
	case fraction <= 0:
		return "#161b22"
	case fraction < 0.25:
		return "#0e4429"
	case fraction < 0.5:
		return "#006d32"
	case fraction < 0.75:
		return "#26a641"
	default:
		return "#39d353"
	}
}
