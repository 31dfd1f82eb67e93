package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/probekit/speechprobe/internal/config"
	"github.com/probekit/speechprobe/internal/provider"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionGoogle      ConfigSection = "google"
	SectionAPIKeys     ConfigSection = "api_keys"
	SectionProbe       ConfigSection = "probe"
	SectionReport      ConfigSection = "report"
	SectionSaveExit    ConfigSection = "save_exit"
	SectionDiscardExit ConfigSection = "discard_exit"
)

// Run starts the TUI configuration wizard. With onboarding set it walks
// every section once in order instead of showing the menu.
func Run(existingConfig *config.Config, onboarding bool) (*ConfigureResult, error) {
	cfg := existingConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.ProviderConfig)
	}

	if onboarding {
		return runOnboarding(cfg)
	}
	return runMenu(cfg)
}

func runOnboarding(cfg *config.Config) (*ConfigureResult, error) {
	clearScreen()
	fmt.Println(Logo())
	fmt.Println()
	fmt.Println(StyleMuted.Render("Let's set up which speech services to verify."))
	fmt.Println()

	steps := []func(*config.Config) error{
		editGoogle,
		editAPIKeys,
		editProbe,
		editReport,
	}
	for _, step := range steps {
		if err := step(cfg); err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}
	}

	confirmed, err := showSummary(cfg)
	if err != nil || !confirmed {
		return &ConfigureResult{Cancelled: true}, nil
	}
	return &ConfigureResult{Config: cfg, Cancelled: false}, nil
}

func runMenu(cfg *config.Config) (*ConfigureResult, error) {
	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection(cfg)
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			confirmed, err := showSummary(cfg)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: cfg, Cancelled: false}, nil
			}

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionGoogle:
			if err := editGoogle(cfg); err != nil {
				continue
			}

		case SectionAPIKeys:
			if err := editAPIKeys(cfg); err != nil {
				continue
			}

		case SectionProbe:
			if err := editProbe(cfg); err != nil {
				continue
			}

		case SectionReport:
			if err := editReport(cfg); err != nil {
				continue
			}
		}
	}
}

func selectSection(cfg *config.Config) (ConfigSection, error) {
	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configure speechprobe").
				Options(
					huh.NewOption(formatGoogleLabel(cfg), SectionGoogle),
					huh.NewOption(formatAPIKeysLabel(cfg), SectionAPIKeys),
					huh.NewOption(formatProbeLabel(cfg), SectionProbe),
					huh.NewOption(formatReportLabel(cfg), SectionReport),
					huh.NewOption("Save & exit", SectionSaveExit),
					huh.NewOption("Discard & exit", SectionDiscardExit),
				).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// editGoogle asks for the path to the service-account key file.
func editGoogle(cfg *config.Config) error {
	path := cfg.Google.CredentialsFile

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Google credentials file").
				Description("Path to a service-account JSON key, empty to rely on GOOGLE_APPLICATION_CREDENTIALS").
				Placeholder("assets/google_speech.json").
				Value(&path).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("cannot read %s", s)
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Google.CredentialsFile = path
	return nil
}

// editAPIKeys walks the key-authenticated providers and collects keys.
func editAPIKeys(cfg *config.Config) error {
	for _, name := range provider.List() {
		p := provider.Get(name)
		if p == nil || !p.RequiresAPIKey() {
			continue
		}

		key, err := promptAPIKey(cfg, p)
		if err != nil {
			return err
		}
		if key != "" {
			cfg.Providers[name] = config.ProviderConfig{APIKey: key}
		}
	}
	return nil
}

// promptAPIKey offers to keep an existing key before asking for a new one.
// Returns "" when the user keeps the current key or skips the provider.
func promptAPIKey(cfg *config.Config, p provider.Provider) (string, error) {
	if existing, ok := cfg.Providers[p.Name()]; ok && existing.APIKey != "" {
		var update bool
		confirmForm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("%s API Key", p.DisplayName())).
					Description(fmt.Sprintf("Current: %s", maskAPIKey(existing.APIKey))).
					Affirmative("Update key").
					Negative("Keep current").
					Value(&update),
			),
		).WithTheme(getTheme())

		if err := confirmForm.Run(); err != nil {
			return "", err
		}
		if !update {
			return "", nil
		}
	}

	return inputAPIKey(p)
}

func inputAPIKey(p provider.Provider) (string, error) {
	var apiKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s API Key", p.DisplayName())).
				Description(fmt.Sprintf("Enter your %s API key, or leave empty to skip", p.DisplayName())).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if !p.ValidateAPIKey(s) {
						return fmt.Errorf("invalid API key format for %s", p.DisplayName())
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return apiKey, nil
}

// editProbe picks the default provider and probe settings.
func editProbe(cfg *config.Config) error {
	providerName := cfg.Probe.Provider
	language := cfg.Probe.Language
	live := cfg.Probe.Live

	var providerOptions []huh.Option[string]
	for _, name := range provider.List() {
		p := provider.Get(name)
		providerOptions = append(providerOptions, huh.NewOption(p.DisplayName(), name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default provider").
				Description("Provider probed when none is given on the command line").
				Options(providerOptions...).
				Value(&providerName),
			huh.NewInput().
				Title("Language").
				Description("BCP-47 language tag for recognition").
				Placeholder("en-US").
				Value(&language),
			huh.NewConfirm().
				Title("Streaming probe").
				Description("Probe the live websocket endpoint where the provider has one").
				Value(&live),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Probe.Provider = providerName
	if language != "" {
		cfg.Probe.Language = language
	}
	cfg.Probe.Live = live

	if live {
		p := provider.Get(providerName)
		if p != nil && p.LiveEndpoint() == nil {
			fmt.Println(StyleError.Render(fmt.Sprintf("%s has no streaming endpoint, disabling live probe", p.DisplayName())))
			cfg.Probe.Live = false
		}
	}
	return nil
}

// editReport picks how outcomes get printed.
func editReport(cfg *config.Config) error {
	mode := cfg.Report.Mode
	noColor := cfg.Report.NoColor

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report mode").
				Options(
					huh.NewOption("Console (one line per probe)", "console"),
					huh.NewOption("Log (timestamped)", "log"),
					huh.NewOption("None", "none"),
				).
				Value(&mode),
			huh.NewConfirm().
				Title("Disable color").
				Value(&noColor),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Report.Mode = mode
	cfg.Report.NoColor = noColor
	return nil
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	if cfg.Google.CredentialsFile != "" {
		fmt.Printf("  Google credentials: %s\n", cfg.Google.CredentialsFile)
	} else {
		fmt.Printf("  Google credentials: %s\n", StyleMuted.Render("(environment)"))
	}
	for _, name := range provider.List() {
		pc, ok := cfg.Providers[name]
		if !ok || pc.APIKey == "" {
			continue
		}
		fmt.Printf("  %s key: %s\n", provider.Get(name).DisplayName(), maskAPIKey(pc.APIKey))
	}
	fmt.Printf("  Default provider: %s\n", cfg.Probe.Provider)
	fmt.Printf("  Language: %s\n", cfg.Probe.Language)
	fmt.Printf("  Report mode: %s\n", cfg.Report.Mode)
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Back").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func formatGoogleLabel(cfg *config.Config) string {
	if cfg.Google.CredentialsFile != "" {
		return "Google credentials (set)"
	}
	return "Google credentials"
}

func formatAPIKeysLabel(cfg *config.Config) string {
	n := 0
	for _, pc := range cfg.Providers {
		if pc.APIKey != "" {
			n++
		}
	}
	if n > 0 {
		return fmt.Sprintf("Provider API keys (%d configured)", n)
	}
	return "Provider API keys"
}

func formatProbeLabel(cfg *config.Config) string {
	return fmt.Sprintf("Probe defaults (%s)", cfg.Probe.Provider)
}

func formatReportLabel(cfg *config.Config) string {
	return fmt.Sprintf("Report (%s)", cfg.Report.Mode)
}
