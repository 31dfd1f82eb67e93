package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/probekit/speechprobe/internal/config"
	"github.com/probekit/speechprobe/internal/report"
	"github.com/probekit/speechprobe/internal/testutil"
)

func TestCommandsRegistered(t *testing.T) {
	want := []string{"check", "providers", "configure", "serve", "status", "trigger", "stop", "version", "config"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestProbeTargets(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")

	cfg := testutil.TestConfig()
	cfg.Google.CredentialsFile = "" // make google unconfigured

	t.Run("explicit provider", func(t *testing.T) {
		targets, err := probeTargets(cfg, "deepgram", false)
		if err != nil {
			t.Fatalf("probeTargets() error = %v", err)
		}
		if len(targets) != 1 || targets[0] != "deepgram" {
			t.Errorf("probeTargets() = %v, want [deepgram]", targets)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		if _, err := probeTargets(cfg, "whisperx", false); err == nil {
			t.Error("probeTargets() expected error for unknown provider")
		}
	})

	t.Run("default from config", func(t *testing.T) {
		targets, err := probeTargets(cfg, "", false)
		if err != nil {
			t.Fatalf("probeTargets() error = %v", err)
		}
		if len(targets) != 1 || targets[0] != cfg.Probe.Provider {
			t.Errorf("probeTargets() = %v, want [%s]", targets, cfg.Probe.Provider)
		}
	})

	t.Run("all with configured key", func(t *testing.T) {
		targets, err := probeTargets(cfg, "", true)
		if err != nil {
			t.Fatalf("probeTargets() error = %v", err)
		}
		if len(targets) != 1 || targets[0] != "openai" {
			t.Errorf("probeTargets() = %v, want [openai]", targets)
		}
	})

	t.Run("all with nothing configured", func(t *testing.T) {
		empty := config.DefaultConfig()
		if _, err := probeTargets(empty, "", true); err == nil {
			t.Error("probeTargets() expected error with nothing configured")
		}
	})
}

func TestReporterFor(t *testing.T) {
	cfg := testutil.TestConfig()

	cfg.Report.Mode = "log"
	if _, ok := reporterFor(cfg, false).(report.Log); !ok {
		t.Errorf("reporterFor(log) = %T", reporterFor(cfg, false))
	}

	cfg.Report.Mode = "none"
	if _, ok := reporterFor(cfg, false).(report.Nop); !ok {
		t.Errorf("reporterFor(none) = %T", reporterFor(cfg, false))
	}

	cfg.Report.Mode = "console"
	c, ok := reporterFor(cfg, true).(*report.Console)
	if !ok {
		t.Fatalf("reporterFor(console) = %T", reporterFor(cfg, true))
	}
	if !c.ShowProvider {
		t.Error("console reporter should show provider names on multi-target runs")
	}
}

func TestPrintProviders(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")

	cfg := testutil.TestConfig()
	cfg.Google.CredentialsFile = ""

	var buf bytes.Buffer
	printProviders(&buf, cfg)
	got := buf.String()

	for _, name := range []string{"google", "deepgram", "openai", "groq", "elevenlabs"} {
		if !strings.Contains(got, name) {
			t.Errorf("providers output missing %q:\n%s", name, got)
		}
	}
	if !strings.Contains(got, "service-account key file") {
		t.Errorf("providers output missing google auth kind:\n%s", got)
	}
	if !strings.Contains(got, "streaming") {
		t.Errorf("providers output missing streaming marker:\n%s", got)
	}
	// only deepgram exposes a streaming endpoint
	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		if strings.Contains(line, "streaming") && !strings.HasPrefix(line, "deepgram") {
			t.Errorf("streaming marker on a non-streaming provider: %s", line)
		}
	}

	// exactly one line per provider
	if lines := strings.Count(strings.TrimSpace(got), "\n") + 1; lines != 5 {
		t.Errorf("providers output has %d lines, want 5:\n%s", lines, got)
	}
}

// A check against google with no key file anywhere fails before any network
// traffic, so the full command path can run offline.
func TestRunCheckReportsDenialOffline(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	out := testutil.CaptureOutput(t, func() {
		if err := runCheck("google", false, false, "", "", 5*time.Second); err != nil {
			t.Errorf("runCheck() error = %v", err)
		}
	})

	if !strings.Contains(out, "❌ ACCESS DENIED: ") {
		t.Errorf("check output = %q, want an access denied line", out)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("check output should be a single line, got %q", out)
	}
}
