// Package config provides configuration loading and defaults for
// aw-analyzer.
package config

// DefaultConfigDir is the default location for aw-analyzer configuration
// and state.
const DefaultConfigDir = "~/.aw-analyzer"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultStateFile is the filename for the persisted JSON state document.
const DefaultStateFile = "state.json"

// DefaultHistoryDBName is the filename for the supplemental SQLite
// snapshot/trend history store.
const DefaultHistoryDBName = "history.db"

// DefaultActivityWatchURL is the default base URL of the local
// ActivityWatch-style server.
const DefaultActivityWatchURL = "http://localhost:5600"

// DefaultQueryTimeoutSeconds is the per-call timeout for ActivityWatch
// queries.
const DefaultQueryTimeoutSeconds = 30

// DefaultUploadTimeoutSeconds is the per-call timeout for chat file
// uploads.
const DefaultUploadTimeoutSeconds = 60

// DefaultChatAPIBaseURL is the default base URL for the chat Web API used
// by the file uploader's getUploadURLExternal/completeUploadExternal/
// sharedPublicURL/files.info legs.
const DefaultChatAPIBaseURL = "https://slack.com/api"

// DefaultLogLevel is the default log level when unset.
const DefaultLogLevel = "INFO"

// DefaultDailySummaryHour/Minute are the default local trigger time for
// the daily-summary job. targetHour/targetMinute are pure parameters on
// the job, never hardcoded in job logic — this is only the default used
// when config omits them.
const (
	DefaultDailySummaryHour   = 21
	DefaultDailySummaryMinute = 0
)

// DefaultContinuousWorkThresholdSeconds is the default maxContinuousSeconds
// threshold for the continuous-work-alert job.
const DefaultContinuousWorkThresholdSeconds = 90 * 60

// DefaultContinuousWorkCooldownMs is the default cooldown for the
// continuous-work-alert job.
const DefaultContinuousWorkCooldownMs = 60 * 60 * 1000

// DefaultSleepMinSeconds is the minimum duration of an AFK run (in
// seconds) to be considered a "long AFK run" for sleep/wake inference.
const DefaultSleepMinSeconds = 3 * 60 * 60

// DefaultTimezoneOffsetMinutes is the default target-timezone offset used
// by the binner and sleep analyzer (JST, +09:00).
const DefaultTimezoneOffsetMinutes = 9 * 60

// DefaultWeeklyReportDays is the default window size for weekly-report.
const DefaultWeeklyReportDays = 7
