package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/readpassphrase/internal/config"
	dserrors "github.com/systmms/readpassphrase/internal/errors"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// readFlags are the per-command switches that map onto readpassphrase.Flags.
type readFlags struct {
	echo       bool
	requireTTY bool
	stdin      bool
	lower      bool
	upper      bool
	sevenBit   bool
}

func (f *readFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.echo, "echo", false, "Leave terminal echo on")
	cmd.Flags().BoolVar(&f.requireTTY, "require-tty", false, "Fail if there is no controlling terminal")
	cmd.Flags().BoolVar(&f.stdin, "stdin", false, "Read from standard input instead of the terminal")
	cmd.Flags().BoolVar(&f.lower, "lower", false, "Force input to lower case")
	cmd.Flags().BoolVar(&f.upper, "upper", false, "Force input to upper case")
	cmd.Flags().BoolVar(&f.sevenBit, "seven-bit", false, "Strip the high bit from input")
}

// apply adds the command-line switches to the configured flags.
func (f *readFlags) apply(base readpassphrase.Flags) readpassphrase.Flags {
	set := func(on bool, bit readpassphrase.Flags) {
		if on {
			base |= bit
		}
	}
	set(f.echo, readpassphrase.EchoOn)
	set(f.requireTTY, readpassphrase.RequireTTY)
	set(f.stdin, readpassphrase.Stdin)
	set(f.lower, readpassphrase.ForceLower)
	set(f.upper, readpassphrase.ForceUpper)
	set(f.sevenBit, readpassphrase.SevenBit)
	return base
}

// prepare loads configuration and refuses to prompt in non-interactive mode.
// It returns the effective read flags.
func prepare(cfg *config.Config, f *readFlags) (readpassphrase.Flags, error) {
	if err := cfg.Load(); err != nil {
		return 0, err
	}
	if cfg.NonInteractive && !f.stdin {
		return 0, dserrors.UserError{
			Message:    "Refusing to prompt for a passphrase in non-interactive mode",
			Suggestion: "Pass --stdin to read the passphrase from standard input",
		}
	}

	base, err := cfg.Definition.ReadFlags()
	if err != nil {
		return 0, err
	}
	return f.apply(base), nil
}

func reader(cfg *config.Config) *readpassphrase.Reader {
	if cfg.Reader != nil {
		return cfg.Reader
	}
	return readpassphrase.Default()
}
