package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/readpassphrase/cmd/readpass/commands"
	"github.com/systmms/readpassphrase/internal/config"
	dserrors "github.com/systmms/readpassphrase/internal/errors"
	"github.com/systmms/readpassphrase/internal/logging"
	"github.com/systmms/readpassphrase/internal/secure"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// os.Exit skips deferred calls, so enclave keys are purged here.
	defer secure.Purge()

	var (
		configFile     string
		noColor        bool
		debug          bool
		nonInteractive bool
	)

	cfg := &config.Config{Reader: readpassphrase.Default()}

	rootCmd := &cobra.Command{
		Use:   "readpass",
		Short: "Read passphrases from the terminal with echo disabled",
		Long: `readpass prompts for a passphrase on the controlling terminal, turns off
echo while it is typed, and zeroes every buffer that held it.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so stdout carries only the passphrase.
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
			cfg.NonInteractive = nonInteractive
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt on a terminal")

	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewConfirmCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
