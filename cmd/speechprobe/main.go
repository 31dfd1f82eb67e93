package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/probekit/speechprobe/internal/bus"
	"github.com/probekit/speechprobe/internal/config"
	"github.com/probekit/speechprobe/internal/daemon"
	"github.com/probekit/speechprobe/internal/probe"
	"github.com/probekit/speechprobe/internal/provider"
	"github.com/probekit/speechprobe/internal/report"
	"github.com/probekit/speechprobe/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "speechprobe",
	Short: "Verify credential access to speech-to-text providers",
}

func init() {
	rootCmd.AddCommand(
		checkCmd(),
		providersCmd(),
		configureCmd(),
		serveCmd(),
		statusCmd(),
		triggerCmd(),
		stopCmd(),
		versionCmd(),
		configCmd(),
	)
}

func checkCmd() *cobra.Command {
	var (
		all      bool
		live     bool
		model    string
		language string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check [provider]",
		Short: "Probe a provider and report access",
		Long: `Probe a speech-to-text provider with a single recognition request and
print one line per provider:

  ✅ ACCESS CONFIRMED: <transcript>
  ❌ No speech detected (but access OK)
  ❌ ACCESS DENIED: <reason>

A denied probe still exits 0; the outcome is the line, not the exit code.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runCheck(name, all, live, model, language, timeout)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "probe every configured provider")
	cmd.Flags().BoolVar(&live, "live", false, "probe the streaming endpoint where the provider has one")
	cmd.Flags().StringVar(&model, "model", "", "override the recognition model")
	cmd.Flags().StringVar(&language, "language", "", "override the recognition language")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "override the probe timeout")

	return cmd
}

func runCheck(name string, all, live bool, model, language string, timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if name != "" {
		cfg.Probe.Provider = name
	}
	if live {
		cfg.Probe.Live = true
	}
	if model != "" {
		cfg.Probe.Model = model
	}
	if language != "" {
		cfg.Probe.Language = language
	}
	if timeout > 0 {
		cfg.Probe.Timeout = timeout
	}

	targets, err := probeTargets(cfg, name, all)
	if err != nil {
		return err
	}

	reporter := reporterFor(cfg, len(targets) > 1)
	ctx := context.Background()
	for _, target := range targets {
		reporter.Report(probe.Run(ctx, cfg.ToProbeConfig(target)))
	}
	return nil
}

// probeTargets resolves which providers a check run probes
func probeTargets(cfg *config.Config, name string, all bool) ([]string, error) {
	if all {
		targets := cfg.ConfiguredProviders()
		if len(targets) == 0 {
			return nil, fmt.Errorf("no providers configured, run 'speechprobe configure' first")
		}
		return targets, nil
	}

	if name == "" {
		name = cfg.Probe.Provider
	}
	if provider.Get(name) == nil {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return []string{name}, nil
}

func reporterFor(cfg *config.Config, multi bool) report.Reporter {
	switch cfg.Report.Mode {
	case "log":
		return report.Log{}
	case "none":
		return report.Nop{}
	default:
		return &report.Console{
			Out:          os.Stdout,
			ShowProvider: multi,
			NoColor:      cfg.Report.NoColor,
		}
	}
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			printProviders(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printProviders(out io.Writer, cfg *config.Config) {
	configured := make(map[string]bool)
	for _, name := range cfg.ConfiguredProviders() {
		configured[name] = true
	}
	streaming := make(map[string]bool)
	for _, name := range provider.ListWithLiveEndpoint() {
		streaming[name] = true
	}

	for _, name := range provider.List() {
		p := provider.Get(name)

		auth := "API key"
		if p.RequiresKeyFile() {
			auth = "service-account key file"
		}

		state := "not configured"
		if configured[name] {
			state = "configured"
		}

		extras := ""
		if streaming[name] {
			extras = ", streaming"
		}

		fmt.Fprintf(out, "%-12s %-12s auth: %s%s (%s)\n", name, p.DisplayName(), auth, extras, state)
	}
}

func configureCmd() *cobra.Command {
	var onboarding bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for speechprobe.
This will guide you through setting up:
- The Google service-account key file
- Provider API keys (Deepgram, OpenAI, Groq, ElevenLabs)
- Probe defaults and reporting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(onboarding)
		},
	}

	cmd.Flags().BoolVar(&onboarding, "onboarding", false, "Run the guided onboarding wizard")

	return cmd
}

func runConfigure(onboarding bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg, onboarding)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()
	fmt.Println("Next Steps:")
	fmt.Println("1. Verify access: speechprobe check --all")
	fmt.Println("2. Keep verifying in the background: speechprobe serve")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the probe daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daemon.New(nil)
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get the daemon's last probe outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func triggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Ask the daemon to probe now",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('t')
			if err != nil {
				return fmt.Errorf("failed to trigger probe: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get the daemon's protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
			fmt.Println(configPath)
			return nil
		},
	})

	return cmd
}
