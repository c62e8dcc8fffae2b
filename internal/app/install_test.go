package app

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/aw-analyzer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ActivityWatch: config.ActivityWatchConfig{BaseURL: "http://localhost:5600"},
		Chat: config.ChatConfig{
			WebhookURL: "https://hooks.example.com/abc",
			BotToken:   "xoxb-secret",
			ChannelID:  "C123",
		},
		LLM: config.LLMConfig{APIKey: "sk-secret"},
	}
}

func TestBuildLaunchAgentPlist_EmbedsSecretsWhenNotRedacted(t *testing.T) {
	plist := buildLaunchAgentPlist("/usr/local/bin/aw-analyzer", 300, "/tmp/out.log", "/tmp/err.log", testConfig(), false)

	for _, want := range []string{"xoxb-secret", "sk-secret", "https://hooks.example.com/abc"} {
		if !strings.Contains(plist, want) {
			t.Errorf("expected plist to contain %q, got:\n%s", want, plist)
		}
	}
	if strings.Contains(plist, "REDACTED") {
		t.Errorf("expected no REDACTED placeholder in the on-disk descriptor")
	}
}

func TestBuildLaunchAgentPlist_RedactsSecretsOnDryRun(t *testing.T) {
	plist := buildLaunchAgentPlist("/usr/local/bin/aw-analyzer", 300, "/tmp/out.log", "/tmp/err.log", testConfig(), true)

	for _, secret := range []string{"xoxb-secret", "sk-secret", "https://hooks.example.com/abc"} {
		if strings.Contains(plist, secret) {
			t.Errorf("expected dry-run plist to redact %q, got:\n%s", secret, plist)
		}
	}
	if !strings.Contains(plist, "REDACTED") {
		t.Errorf("expected at least one REDACTED placeholder, got:\n%s", plist)
	}
	// Non-secret fields still appear in plain text even when redacting.
	if !strings.Contains(plist, "http://localhost:5600") || !strings.Contains(plist, "C123") {
		t.Errorf("expected non-secret fields to survive redaction, got:\n%s", plist)
	}
}

func TestBuildLaunchAgentPlist_OmitsEmptySecrets(t *testing.T) {
	cfg := testConfig()
	cfg.Chat.BotToken = ""

	plist := buildLaunchAgentPlist("/usr/local/bin/aw-analyzer", 300, "/tmp/out.log", "/tmp/err.log", cfg, false)
	if strings.Contains(plist, "AW_CHAT_BOT_TOKEN") {
		t.Errorf("expected an empty secret to be omitted entirely, got:\n%s", plist)
	}
}

func TestBuildLaunchAgentPlist_IncludesLabelAndInterval(t *testing.T) {
	plist := buildLaunchAgentPlist("/usr/local/bin/aw-analyzer", 600, "/tmp/out.log", "/tmp/err.log", testConfig(), false)

	if !strings.Contains(plist, "<string>"+launchAgentLabel+"</string>") {
		t.Errorf("expected plist to declare Label %q, got:\n%s", launchAgentLabel, plist)
	}
	if !strings.Contains(plist, "<integer>600</integer>") {
		t.Errorf("expected StartInterval 600, got:\n%s", plist)
	}
	if !strings.Contains(plist, "tick") {
		t.Errorf("expected ProgramArguments to invoke the tick subcommand, got:\n%s", plist)
	}
}
