package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/clock"
	"github.com/blackwell-systems/aw-analyzer/internal/logging"
	"github.com/blackwell-systems/aw-analyzer/internal/output"
	"github.com/blackwell-systems/aw-analyzer/internal/scheduler"
)

// realClock is the production Clock injected into every tick. A single
// package-level value is enough: Clock is stateless, and tests exercise
// the scheduler directly, setting scheduler.Context.Now to a literal
// time, rather than through this CLI layer.
var realClock clock.Clock = clock.Real{}

var (
	flagTickVerbose bool
	flagTickQuiet   bool
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run registered jobs once",
	RunE:  runTick,
}

func init() {
	tickCmd.Flags().BoolVar(&flagTickVerbose, "verbose", false, "Print the tick result table")
	tickCmd.Flags().BoolVar(&flagTickQuiet, "quiet", false, "Suppress all non-error output")
	rootCmd.AddCommand(tickCmd)
}

// runTick wires one tick's collaborators, evaluates every registered job
// exactly once, and exits 1 on a fatal scheduler error. A history-store
// failure to open or record is logged and otherwise ignored — it is
// never fatal to the tick (spec.md §4.12).
func runTick(cmd *cobra.Command, args []string) error {
	log := logging.L().With("tick")

	d, err := buildDeps()
	if err != nil {
		return err
	}
	defer d.closeHistory()

	if d.historyErr != nil {
		log.Warn("history store unavailable: %v", d.historyErr)
	}

	now := realClock.Now()
	sc := &scheduler.Context{
		Context:  context.Background(),
		Now:      now,
		State:    d.store,
		Notifier: d.notifier,
	}

	result, err := scheduler.RunTick(sc, d.buildJobs())
	if err != nil {
		log.Error("tick aborted: %v", err)
		return err
	}

	if d.history != nil {
		tz := d.cfg.Timezone.OffsetMinutes
		loc := time.FixedZone("target", tz*60)
		startOfToday := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
		if metrics, err := d.provider.GetMetrics(context.Background(), activitywatch.TimeRange{Start: startOfToday, End: now}); err == nil {
			if _, err := d.history.RecordTick(now, metrics); err != nil {
				log.Warn("recording tick snapshot: %v", err)
			}
		}
	}

	if flagTickVerbose && !flagTickQuiet {
		printTickResult(result)
	}

	return nil
}

func printTickResult(result scheduler.TickResult) {
	notified := make(map[string]bool, len(result.Notified))
	for _, id := range result.Notified {
		notified[id] = true
	}
	skipped := make(map[string]bool, len(result.Skipped))
	for _, id := range result.Skipped {
		skipped[id] = true
	}

	fmt.Println(output.Section("Tick Result"))
	tbl := output.NewTable("Job", "Status")
	for _, id := range result.Executed {
		tbl.AddRow(id, output.JobStatusLabel(notified[id], false))
	}
	for _, id := range result.Skipped {
		tbl.AddRow(id, output.JobStatusLabel(false, skipped[id]))
	}
	tbl.Print()
}
