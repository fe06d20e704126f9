package commands

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/readpassphrase/internal/config"
	"github.com/systmms/readpassphrase/internal/secure"
	"github.com/systmms/readpassphrase/internal/tty"
	"golang.org/x/term"
)

// Check is one line of doctor output.
type Check struct {
	Name   string
	Status string // ok, warn, error
	Detail string
}

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that passphrases can be read in this environment",
		Long: `Report the reading backend, the zeroing backend, terminal availability
and the effective configuration.

This command checks:
- Configuration file validity
- Whether a controlling terminal can be opened
- Whether standard input is a terminal
- Which primitive and zeroing routine were compiled in`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks(cfg, tty.New(), term.IsTerminal(int(os.Stdin.Fd())))
			displayChecks(cmd.OutOrStdout(), checks)

			failed := 0
			for _, c := range checks {
				if c.Status == "error" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			cfg.Logger.Info("Ready to read passphrases")
			return nil
		},
	}

	return cmd
}

func runChecks(cfg *config.Config, terminal *tty.Terminal, stdinIsTerminal bool) []Check {
	checks := []Check{
		{Name: "platform", Status: "ok", Detail: runtime.GOOS + "/" + runtime.GOARCH},
		{Name: "primitive", Status: "ok", Detail: tty.Default().Name()},
		{Name: "zeroing", Status: "ok", Detail: secure.Backend()},
	}

	if terminal.Available() {
		checks = append(checks, Check{Name: "controlling terminal", Status: "ok", Detail: terminal.TTYPath})
	} else {
		checks = append(checks, Check{Name: "controlling terminal", Status: "warn", Detail: terminal.TTYPath + " unavailable; falling back to stdin unless require_tty is set"})
	}

	if stdinIsTerminal {
		checks = append(checks, Check{Name: "stdin", Status: "ok", Detail: "terminal"})
	} else {
		checks = append(checks, Check{Name: "stdin", Status: "warn", Detail: "not a terminal; input will be echoed by the source"})
	}

	if err := cfg.Load(); err != nil {
		cfg.Logger.Error("Configuration error: %v", err)
		return append(checks, Check{Name: "configuration", Status: "error", Detail: err.Error()})
	}
	source := cfg.Path
	if source == "" {
		source = "built-in defaults"
	}
	checks = append(checks, Check{Name: "configuration", Status: "ok", Detail: source})

	flags, err := cfg.Definition.ReadFlags()
	if err != nil {
		return append(checks, Check{Name: "flags", Status: "error", Detail: err.Error()})
	}
	return append(checks, Check{Name: "flags", Status: "ok", Detail: flags.String()})
}

// displayChecks shows checks in a formatted table
func displayChecks(w io.Writer, checks []Check) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "CHECK\tSTATUS\tDETAIL\n")
	_, _ = fmt.Fprintf(tw, "-----\t------\t------\n")

	ok := 0
	for _, c := range checks {
		status := c.Status
		switch c.Status {
		case "ok":
			status = "✓ " + status
			ok++
		case "warn":
			status = "⚠ " + status
		default:
			status = "✗ " + status
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, status, c.Detail)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\nSummary: %d/%d checks ok\n", ok, len(checks))
}
