package report

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/probekit/speechprobe/internal/probe"
)

// The three fixed message shapes. Every probe run produces exactly one of
// these lines per provider.
const (
	confirmedPrefix = "✅ ACCESS CONFIRMED: "
	noSpeechLine    = "❌ No speech detected (but access OK)"
	deniedPrefix    = "❌ ACCESS DENIED: "
)

// Reporter receives the outcome of a probe run
type Reporter interface {
	Report(out probe.Outcome)
}

// Line renders an outcome as its fixed one-line message
func Line(out probe.Outcome) string {
	switch out.Status {
	case probe.Confirmed:
		return confirmedPrefix + out.Transcript
	case probe.NoSpeech:
		return noSpeechLine
	default:
		return deniedPrefix + errText(out.Err)
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// Console writes outcome lines to a writer, styled when the terminal
// supports it.
type Console struct {
	Out io.Writer
	// ShowProvider prefixes each line with the provider name, used when one
	// run probes several providers.
	ShowProvider bool
	// NoColor disables styling regardless of terminal capabilities
	NoColor bool
}

func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) Report(out probe.Outcome) {
	line := Line(out)
	if !c.NoColor {
		line = styleLine(out.Status, line)
	}
	if c.ShowProvider {
		line = styleProvider(out.Provider, c.NoColor) + " " + line
	}
	fmt.Fprintln(c.writer(), line)
}

func (c *Console) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Log writes outcomes to the process log instead of stdout, used by the
// daemon where there is no terminal to report to.
type Log struct{}

func (Log) Report(out probe.Outcome) {
	log.Printf("report: %s: %s", out.Provider, Line(out))
}

// Nop is a Reporter that does absolutely nothing.
// Useful in unit tests.
type Nop struct{}

func (Nop) Report(out probe.Outcome) {}
