package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/config"
	"github.com/blackwell-systems/aw-analyzer/internal/history"
	"github.com/blackwell-systems/aw-analyzer/internal/output"
)

var (
	flagTrendMetric string
	flagTrendLimit  int
)

// higherIsBetter gives the direction of the listed history metric names,
// for TrendArrow coloring. A name not listed (afkSeconds,
// nightWorkSeconds, topAppSeconds) reads as false.
var higherIsBetter = map[string]bool{
	"workSeconds":          true,
	"maxContinuousSeconds": false,
	"totalWorkSeconds":     true,
	"avgPerDaySeconds":     true,
	"avgWakeMinutes":       false,
	"avgSleepMinutes":      true,
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show metric trends from the history store",
	RunE:  runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&flagTrendMetric, "metric", "workSeconds", "Metric name to show")
	trendCmd.Flags().IntVar(&flagTrendLimit, "limit", 10, "Number of most recent points to show")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
	h, err := history.Open(config.HistoryDBPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	defer h.Close()

	points, err := h.Trend(flagTrendMetric, flagTrendLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}

	fmt.Println(output.Section(fmt.Sprintf("Trend: %s", flagTrendMetric)))
	if len(points) == 0 {
		fmt.Println(" no data")
		return nil
	}

	better := higherIsBetter[flagTrendMetric]
	deltas := trendDeltas(points)

	tbl := output.NewTable("Snapshot", "Value", "Delta")
	for i, p := range points {
		tbl.AddRow(
			fmt.Sprintf("#%d", p.SnapshotID),
			fmt.Sprintf("%.1f", p.Value),
			output.TrendArrow(deltas[i], better),
		)
	}
	tbl.Print()
	return nil
}

// trendDeltas computes, for each point, the change from the immediately
// preceding point (zero for the first point). points is assumed oldest
// first, matching history.History.Trend's ordering.
func trendDeltas(points []history.MetricPoint) []float64 {
	deltas := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		deltas[i] = points[i].Value - points[i-1].Value
	}
	return deltas
}
