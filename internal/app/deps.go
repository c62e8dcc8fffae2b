package app

import (
	"time"

	"github.com/blackwell-systems/aw-analyzer/internal/activitywatch"
	"github.com/blackwell-systems/aw-analyzer/internal/analyzer"
	"github.com/blackwell-systems/aw-analyzer/internal/chat"
	"github.com/blackwell-systems/aw-analyzer/internal/config"
	"github.com/blackwell-systems/aw-analyzer/internal/history"
	"github.com/blackwell-systems/aw-analyzer/internal/jobs"
	"github.com/blackwell-systems/aw-analyzer/internal/logging"
	"github.com/blackwell-systems/aw-analyzer/internal/notifier"
	"github.com/blackwell-systems/aw-analyzer/internal/scheduler"
	"github.com/blackwell-systems/aw-analyzer/internal/state"
)

// deps bundles every collaborator a command needs, wired once from a
// loaded Config. The commands in this package read its fields directly
// rather than threading a dozen positional arguments.
type deps struct {
	cfg          *config.Config
	provider     *activitywatch.Provider
	chatClient   chat.HTTPClient
	notifier     notifier.Notifier
	store        *state.Store
	history      *history.History
	historyErr   error
}

// buildDeps loads configuration and constructs every collaborator that
// does not itself require a clock reading. The history store is opened
// best-effort: per spec.md §4.12, a failure to open it is never fatal to
// the tick, so historyErr is recorded rather than returned.
func buildDeps() (*deps, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	logging.Configure(logging.ParseLevel(cfg.LogLevel))

	awClient := activitywatch.NewHTTPClient(time.Duration(cfg.ActivityWatch.QueryTimeoutSecond) * time.Second)
	provider := activitywatch.New(awClient, cfg.ActivityWatch.BaseURL)

	chatClient := chat.NewHTTPClient(time.Duration(cfg.Chat.UploadTimeoutSecond) * time.Second)

	st, err := state.Open(config.StatePath())
	if err != nil {
		return nil, err
	}

	hist, histErr := history.Open(config.HistoryDBPath())

	return &deps{
		cfg:        cfg,
		provider:   provider,
		chatClient: chatClient,
		notifier:   notifier.NewReal("aw-analyzer"),
		store:      st,
		history:    hist,
		historyErr: histErr,
	}, nil
}

// closeHistory closes the history store if it was opened successfully.
func (d *deps) closeHistory() {
	if d.history != nil {
		_ = d.history.Close()
	}
}

// buildJobs constructs the three reference jobs from configuration, in
// the fixed order the scheduler evaluates them.
func (d *deps) buildJobs() []scheduler.Job {
	sched := d.cfg.Schedule
	tz := d.cfg.Timezone.OffsetMinutes

	return []scheduler.Job{
		&jobs.DailySummaryJob{
			Provider:      d.provider,
			OffsetMinutes: tz,
			TargetHour:    sched.DailySummaryHour,
			TargetMinute:  sched.DailySummaryMinute,
		},
		&jobs.ContinuousWorkAlertJob{
			Provider:         d.provider,
			OffsetMinutes:    tz,
			ThresholdSeconds: float64(sched.ContinuousWorkThresholdSeconds),
			CooldownMs:       sched.ContinuousWorkCooldownMs,
		},
		&jobs.DailyReportJob{
			Provider:         d.provider,
			HTTPClient:       d.chatClient,
			AnalyzerConfig:   analyzer.Config{APIKey: d.cfg.LLM.APIKey, Model: d.cfg.LLM.Model},
			WebhookURL:       d.cfg.Chat.WebhookURL,
			DashboardBaseURL: d.cfg.Chat.DashboardBaseURL,
			OffsetMinutes:    tz,
			TargetHour:       sched.DailySummaryHour,
			TargetMinute:     sched.DailySummaryMinute,
		},
	}
}
