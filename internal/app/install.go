package app

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aw-analyzer/internal/config"
)

const launchAgentLabel = "com.aw-analyzer.tick"

var (
	flagInstallInterval string
	flagInstallDryRun   bool
	flagInstallVerbose  bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Write an OS-level scheduler descriptor that runs 'tick' on an interval",
	RunE:  runInstall,
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the scheduler descriptor",
	RunE:  runUninstall,
}

func init() {
	installCmd.Flags().StringVar(&flagInstallInterval, "interval", "5", "Tick interval in minutes (clamped >0, not upper-bounded)")
	installCmd.Flags().BoolVar(&flagInstallDryRun, "dry-run", false, "Print the descriptor without touching the filesystem")
	installCmd.Flags().BoolVar(&flagInstallVerbose, "verbose", false, "Print progress detail")
	rootCmd.AddCommand(installCmd)

	uninstallCmd.Flags().BoolVar(&flagInstallDryRun, "dry-run", false, "Print what would be removed without touching the filesystem")
	uninstallCmd.Flags().BoolVar(&flagInstallVerbose, "verbose", false, "Print progress detail")
	rootCmd.AddCommand(uninstallCmd)
}

// launchAgentPaths resolves the label's plist and log paths under the
// current user's LaunchAgents directory.
func launchAgentPaths() (dir, plistPath, outLog, errLog string, err error) {
	usr, err := user.Current()
	if err != nil {
		return "", "", "", "", err
	}
	dir = filepath.Join(usr.HomeDir, "Library", "LaunchAgents")
	plistPath = filepath.Join(dir, launchAgentLabel+".plist")
	outLog = filepath.Join(dir, launchAgentLabel+".out.log")
	errLog = filepath.Join(dir, launchAgentLabel+".err.log")
	return dir, plistPath, outLog, errLog, nil
}

// buildLaunchAgentPlist renders the LaunchAgent descriptor. Secrets
// (LLM API key, chat bot token, chat webhook URL) are embedded in full
// when redactSecrets is false (the file actually written to disk) and
// replaced with a fixed placeholder when true (dry-run stdout output),
// per spec.md §6.
func buildLaunchAgentPlist(execPath string, intervalSeconds int, outLog, errLog string, cfg *config.Config, redactSecrets bool) string {
	redact := func(v string) string {
		if v == "" {
			return ""
		}
		if redactSecrets {
			return "REDACTED"
		}
		return v
	}

	env := map[string]string{
		"AW_ANALYZER_ACTIVITYWATCH_URL": cfg.ActivityWatch.BaseURL,
		"AW_LLM_API_KEY":                redact(cfg.LLM.APIKey),
		"AW_CHAT_WEBHOOK_URL":           redact(cfg.Chat.WebhookURL),
		"AW_CHAT_BOT_TOKEN":             redact(cfg.Chat.BotToken),
		"AW_CHAT_CHANNEL_ID":            cfg.Chat.ChannelID,
	}

	envXML := ""
	for k, v := range env {
		if v == "" {
			continue
		}
		envXML += fmt.Sprintf("    <key>%s</key><string>%s</string>\n", k, v)
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict>
  <key>Label</key><string>%s</string>
  <key>ProgramArguments</key><array><string>%s</string><string>tick</string></array>
  <key>StartInterval</key><integer>%d</integer>
  <key>RunAtLoad</key><true/>
  <key>StandardOutPath</key><string>%s</string>
  <key>StandardErrorPath</key><string>%s</string>
  <key>EnvironmentVariables</key><dict>
%s  </dict>
</dict></plist>`, launchAgentLabel, execPath, intervalSeconds, outLog, errLog, envXML)
}

func runInstall(cmd *cobra.Command, args []string) error {
	intervalMinutes, err := config.ParseIntervalMinutes(flagInstallInterval)
	if err != nil {
		return err
	}
	intervalSeconds := intervalMinutes * 60

	execPath, err := os.Executable()
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	dir, plistPath, outLog, errLog, err := launchAgentPaths()
	if err != nil {
		return err
	}

	if flagInstallDryRun {
		fmt.Println(buildLaunchAgentPlist(execPath, intervalSeconds, outLog, errLog, cfg, true))
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	plist := buildLaunchAgentPlist(execPath, intervalSeconds, outLog, errLog, cfg, false)
	if err := os.WriteFile(plistPath, []byte(plist), 0o644); err != nil {
		return err
	}

	uid := strconv.Itoa(os.Getuid())
	if err := exec.Command("launchctl", "bootstrap", "gui/"+uid, plistPath).Run(); err != nil {
		_ = exec.Command("launchctl", "load", "-w", plistPath).Run()
	}
	_ = exec.Command("launchctl", "enable", "gui/"+uid+"/"+launchAgentLabel).Run()
	_ = exec.Command("launchctl", "kickstart", "-k", "gui/"+uid+"/"+launchAgentLabel).Run()

	if flagInstallVerbose {
		fmt.Println("installed scheduler descriptor:", plistPath)
	}
	return nil
}

func runUninstall(cmd *cobra.Command, args []string) error {
	_, plistPath, _, _, err := launchAgentPaths()
	if err != nil {
		return err
	}

	if flagInstallDryRun {
		fmt.Println("would remove:", plistPath)
		return nil
	}

	uid := strconv.Itoa(os.Getuid())
	_ = exec.Command("launchctl", "bootout", "gui/"+uid+"/"+launchAgentLabel).Run()

	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	if flagInstallVerbose {
		fmt.Println("removed scheduler descriptor:", plistPath)
	}
	return nil
}
