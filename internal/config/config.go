package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level aw-analyzer configuration.
type Config struct {
	ActivityWatch ActivityWatchConfig `mapstructure:"activitywatch"`
	Chat          ChatConfig          `mapstructure:"chat"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Timezone      TimezoneConfig      `mapstructure:"timezone"`
	Hostname      string              `mapstructure:"hostname"`
	LogLevel      string              `mapstructure:"log_level"`
}

// ActivityWatchConfig configures the activity provider's upstream server.
type ActivityWatchConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	QueryTimeoutSecond int    `mapstructure:"query_timeout_seconds"`
}

// ChatConfig configures the incoming webhook and file-upload Web API.
type ChatConfig struct {
	WebhookURL          string `mapstructure:"webhook_url"`
	BotToken            string `mapstructure:"bot_token"`
	ChannelID           string `mapstructure:"channel_id"`
	APIBaseURL          string `mapstructure:"api_base_url"`
	UploadTimeoutSecond int    `mapstructure:"upload_timeout_seconds"`
	DashboardBaseURL    string `mapstructure:"dashboard_base_url"`
}

// LLMConfig configures the AI analyzer.
type LLMConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ScheduleConfig configures job trigger parameters.
type ScheduleConfig struct {
	DailySummaryHour               int   `mapstructure:"daily_summary_hour"`
	DailySummaryMinute             int   `mapstructure:"daily_summary_minute"`
	ContinuousWorkThresholdSeconds int   `mapstructure:"continuous_work_threshold_seconds"`
	ContinuousWorkCooldownMs       int64 `mapstructure:"continuous_work_cooldown_ms"`
	WeeklyReportDays               int   `mapstructure:"weekly_report_days"`
	SleepMinSeconds                int   `mapstructure:"sleep_min_seconds"`
}

// TimezoneConfig configures the target timezone used by the binner and
// sleep/wake analyzer. The offset is a parameter, never a hardcoded
// constant — the binner must not depend on a process-wide local timezone.
type TimezoneConfig struct {
	OffsetMinutes int    `mapstructure:"offset_minutes"`
	Name          string `mapstructure:"name"`
}

// DefaultConfig returns a Config populated with every package default.
func DefaultConfig() Config {
	return Config{
		ActivityWatch: ActivityWatchConfig{
			BaseURL:            DefaultActivityWatchURL,
			QueryTimeoutSecond: DefaultQueryTimeoutSeconds,
		},
		Chat: ChatConfig{
			APIBaseURL:          DefaultChatAPIBaseURL,
			UploadTimeoutSecond: DefaultUploadTimeoutSeconds,
		},
		LLM: LLMConfig{
			Model: "claude-sonnet-4-20250514",
		},
		Schedule: ScheduleConfig{
			DailySummaryHour:               DefaultDailySummaryHour,
			DailySummaryMinute:             DefaultDailySummaryMinute,
			ContinuousWorkThresholdSeconds: DefaultContinuousWorkThresholdSeconds,
			ContinuousWorkCooldownMs:       DefaultContinuousWorkCooldownMs,
			WeeklyReportDays:               DefaultWeeklyReportDays,
			SleepMinSeconds:                DefaultSleepMinSeconds,
		},
		Timezone: TimezoneConfig{
			OffsetMinutes: DefaultTimezoneOffsetMinutes,
			Name:          "JST",
		},
		LogLevel: DefaultLogLevel,
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied, then environment
// overrides on top.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("activitywatch.base_url", def.ActivityWatch.BaseURL)
	v.SetDefault("activitywatch.query_timeout_seconds", def.ActivityWatch.QueryTimeoutSecond)
	v.SetDefault("chat.api_base_url", def.Chat.APIBaseURL)
	v.SetDefault("chat.upload_timeout_seconds", def.Chat.UploadTimeoutSecond)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("schedule.daily_summary_hour", def.Schedule.DailySummaryHour)
	v.SetDefault("schedule.daily_summary_minute", def.Schedule.DailySummaryMinute)
	v.SetDefault("schedule.continuous_work_threshold_seconds", def.Schedule.ContinuousWorkThresholdSeconds)
	v.SetDefault("schedule.continuous_work_cooldown_ms", def.Schedule.ContinuousWorkCooldownMs)
	v.SetDefault("schedule.weekly_report_days", def.Schedule.WeeklyReportDays)
	v.SetDefault("schedule.sleep_min_seconds", def.Schedule.SleepMinSeconds)
	v.SetDefault("timezone.offset_minutes", def.Timezone.OffsetMinutes)
	v.SetDefault("timezone.name", def.Timezone.Name)
	v.SetDefault("log_level", def.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			cfg.Hostname = h
		}
	}

	return &cfg, nil
}

// applyEnvOverrides applies the boundary-validated environment inputs
// named in spec.md §6. Components never read these variables directly;
// only this function does.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AW_ANALYZER_ACTIVITYWATCH_URL"); v != "" {
		cfg.ActivityWatch.BaseURL = v
	}
	if v := os.Getenv("AW_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("AW_CHAT_WEBHOOK_URL"); v != "" {
		cfg.Chat.WebhookURL = v
	}
	if v := os.Getenv("AW_CHAT_BOT_TOKEN"); v != "" {
		cfg.Chat.BotToken = v
	}
	if v := os.Getenv("AW_CHAT_CHANNEL_ID"); v != "" {
		cfg.Chat.ChannelID = v
	}
	if v := os.Getenv("AW_HOSTNAME"); v != "" {
		cfg.Hostname = v
	}
	if v := os.Getenv("AW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AW_CHAT_DASHBOARD_BASE_URL"); v != "" {
		cfg.Chat.DashboardBaseURL = v
	}
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

// StatePath returns the full path to the persisted JSON state document.
func StatePath() string {
	return filepath.Join(ConfigDir(), DefaultStateFile)
}

// HistoryDBPath returns the full path to the supplemental SQLite history
// store.
func HistoryDBPath() string {
	return filepath.Join(ConfigDir(), DefaultHistoryDBName)
}

// ParseIntervalMinutes validates the install/uninstall --interval flag:
// clamped to be strictly positive, but intentionally not upper-bounded
// (spec.md §9 notes this looseness is acceptable).
func ParseIntervalMinutes(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		n = 1
	}
	return n, nil
}
