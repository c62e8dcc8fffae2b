package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func newTestLogger(min Level) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := &Logger{mu: &sync.Mutex{}, min: min, out: &out, errOut: &errOut}
	return l, &out, &errOut
}

func TestParseLevel_RecognizesNames(t *testing.T) {
	cases := map[string]Level{
		"debug": DEBUG,
		"INFO":  INFO,
		"Warn":  WARN,
		"ERROR": ERROR,
		"":      INFO,
		"huh":   INFO,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLogger_InfoGoesToStdout(t *testing.T) {
	l, out, errOut := newTestLogger(DEBUG)
	l.Info("hello %s", "world")
	if !strings.Contains(out.String(), "hello world") {
		t.Errorf("expected stdout to contain message, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no stderr output, got %q", errOut.String())
	}
}

func TestLogger_WarnAndErrorGoToStderr(t *testing.T) {
	l, out, errOut := newTestLogger(DEBUG)
	l.Warn("careful")
	l.Error("boom")
	if out.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "careful") || !strings.Contains(errOut.String(), "boom") {
		t.Errorf("expected stderr to contain both messages, got %q", errOut.String())
	}
}

func TestLogger_BelowMinLevelIsSuppressed(t *testing.T) {
	l, out, errOut := newTestLogger(WARN)
	l.Debug("quiet")
	l.Info("also quiet")
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Errorf("expected no output below min level, got out=%q errOut=%q", out.String(), errOut.String())
	}
}

func TestLogger_WithScopesComponentName(t *testing.T) {
	l, out, _ := newTestLogger(DEBUG)
	scoped := l.With("jobs")
	scoped.Info("tick complete")
	if !strings.Contains(out.String(), "jobs: tick complete") {
		t.Errorf("expected component name in output, got %q", out.String())
	}
}

func TestConfigure_ChangesDefaultLoggerLevel(t *testing.T) {
	Configure(ERROR)
	defer Configure(INFO)
	if L() == nil {
		t.Fatal("expected non-nil default logger")
	}
	if L().min != ERROR {
		t.Errorf("expected default logger min level ERROR after Configure(ERROR), got %v", L().min)
	}
}
