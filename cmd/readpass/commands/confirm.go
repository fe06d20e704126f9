package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/readpassphrase/internal/config"
	dserrors "github.com/systmms/readpassphrase/internal/errors"
	"github.com/systmms/readpassphrase/internal/secure"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

func NewConfirmCommand(cfg *config.Config) *cobra.Command {
	var (
		rf            readFlags
		prompt        string
		confirmPrompt string
		attempts      int
		printPass     bool
	)

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Read a passphrase and ask for it again until both match",
		Long: `Read a passphrase, then ask for confirmation until the two entries match
or the attempt limit is reached.

The first entry is sealed in an encrypted in-memory enclave while the
confirmation is read, and every buffer is zeroed before the command exits.
Confirmation always requires a terminal unless --stdin is given.

Examples:
  readpass confirm                   # Passphrase + confirmation, 5 attempts
  readpass confirm --attempts 3
  readpass confirm --print           # Print the confirmed passphrase to stdout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := prepare(cfg, &rf)
			if err != nil {
				return err
			}
			def := cfg.Definition
			if !cmd.Flags().Changed("prompt") {
				prompt = def.Prompt
			}
			if !cmd.Flags().Changed("confirm-prompt") {
				confirmPrompt = def.ConfirmPrompt
			}
			if !cmd.Flags().Changed("attempts") {
				attempts = def.MaxAttempts
			}
			if attempts < 1 {
				return dserrors.UserError{
					Message:    "Invalid number of attempts",
					Suggestion: "Attempts must be at least 1",
				}
			}

			size := def.BufferSize
			if size == 0 {
				size = readpassphrase.PasswordLen
			}
			confirmFlags := flags
			if flags&readpassphrase.Stdin == 0 {
				confirmFlags |= readpassphrase.RequireTTY
			}

			return confirmPassphrase(cmd, cfg, confirmRequest{
				prompt:        prompt,
				confirmPrompt: confirmPrompt,
				flags:         flags,
				confirmFlags:  confirmFlags,
				attempts:      attempts,
				size:          size,
				printPass:     printPass,
			})
		},
	}

	rf.bind(cmd)
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "Password: ", "Prompt for the first entry")
	cmd.Flags().StringVar(&confirmPrompt, "confirm-prompt", "Confirmation: ", "Prompt for the confirmation")
	cmd.Flags().IntVar(&attempts, "attempts", 5, "Maximum number of confirmation attempts")
	cmd.Flags().BoolVar(&printPass, "print", false, "Print the confirmed passphrase to stdout")

	return cmd
}

type confirmRequest struct {
	prompt        string
	confirmPrompt string
	flags         readpassphrase.Flags
	confirmFlags  readpassphrase.Flags
	attempts      int
	size          int
	printPass     bool
}

// confirmPassphrase reads the first entry in place, seals it, then reads
// confirmations into the same buffer until one matches.
func confirmPassphrase(cmd *cobra.Command, cfg *config.Config, req confirmRequest) error {
	rd := reader(cfg)
	buf := make([]byte, req.size)
	defer func() { readpassphrase.Zeroize(buf) }()

	first, err := rd.ReadInPlace(req.prompt, buf, req.flags)
	if err != nil {
		return dserrors.ReadError("confirm", err)
	}
	// Sealing wipes first, which aliases buf.
	sealed, err := secure.NewSecureBuffer(first.Bytes())
	if err != nil {
		return fmt.Errorf("failed to protect passphrase: %w", err)
	}
	defer sealed.Destroy()

	for attempt := 1; attempt <= req.attempts; attempt++ {
		cfg.Logger.Debug("confirmation attempt %d/%d (flags=%s)", attempt, req.attempts, req.confirmFlags)

		confirmation, err := rd.ReadOwned(req.confirmPrompt, buf, req.confirmFlags)
		if err != nil {
			var owned *readpassphrase.OwnedError
			if errors.As(err, &owned) {
				buf = owned.Take()
			}
			if dserrors.IsRetryable(err) {
				cfg.Logger.Warn("Confirmation was not valid UTF-8, try again")
				continue
			}
			return dserrors.ReadError("confirm", err)
		}
		buf = confirmation.Bytes()

		match, err := sealed.Equal(confirmation.Bytes())
		if err != nil {
			return fmt.Errorf("failed to compare passphrases: %w", err)
		}
		if match {
			cfg.Logger.Info("Passphrases match.")
			if req.printPass {
				out := cmd.OutOrStdout()
				if _, err := out.Write(confirmation.Bytes()); err != nil {
					return err
				}
				_, err = out.Write([]byte("\n"))
				return err
			}
			return nil
		}

		confirmation.Zeroize()
		buf = buf[:0]
		cfg.Logger.Warn("Passphrases don't match.")
	}

	return dserrors.UserError{
		Message:    "Too many attempts",
		Details:    fmt.Sprintf("%d confirmations did not match", req.attempts),
		Suggestion: "Run the command again and type the same passphrase twice",
	}
}
