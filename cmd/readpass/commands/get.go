package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/readpassphrase/internal/config"
	dserrors "github.com/systmms/readpassphrase/internal/errors"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		rf         readFlags
		prompt     string
		bufferSize int
		noNewline  bool
		inPlace    bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Read a passphrase and print it to stdout",
		Long: `Read a passphrase from the terminal with echo disabled and write it to
standard output, for use in pipelines.

By default the passphrase is read into a fixed 256-byte buffer (255 usable
bytes). With --buffer-size, or buffer_size in readpass.yaml, the buffer is
allocated at that size and reused for the result. --in-place reads into a
buffer owned by the command and prints a view of it without copying.

Examples:
  readpass get                          # Prompt on /dev/tty
  readpass get --prompt "Vault key: "   # Custom prompt
  readpass get --require-tty            # Fail without a terminal
  echo secret | readpass get --stdin    # Read from a pipe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := prepare(cfg, &rf)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prompt") {
				prompt = cfg.Definition.Prompt
			}
			if !cmd.Flags().Changed("buffer-size") {
				bufferSize = cfg.Definition.BufferSize
			}
			if bufferSize == 1 || bufferSize < 0 {
				return dserrors.UserError{
					Message:    "Invalid buffer size",
					Suggestion: "Use a buffer size of at least 2, or 0 for the default",
				}
			}

			cfg.Logger.Debug("reading passphrase (flags=%s, buffer=%d)", flags, bufferSize)

			var pass readpassphrase.Passphrase
			switch {
			case inPlace:
				size := bufferSize
				if size == 0 {
					size = readpassphrase.PasswordLen
				}
				buf := make([]byte, size)
				defer readpassphrase.Zeroize(buf)
				pass, err = reader(cfg).ReadInPlace(prompt, buf, flags)
			case bufferSize > 0:
				pass, err = reader(cfg).ReadOwned(prompt, make([]byte, bufferSize), flags)
			default:
				pass, err = reader(cfg).Read(prompt, flags)
			}
			if err != nil {
				return dserrors.ReadError("get", err)
			}
			defer pass.Zeroize()

			out := cmd.OutOrStdout()
			if _, err := out.Write(pass.Bytes()); err != nil {
				return err
			}
			if !noNewline {
				if _, err := out.Write([]byte("\n")); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rf.bind(cmd)
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "Password: ", "Prompt to display")
	cmd.Flags().IntVar(&bufferSize, "buffer-size", 0, "Read into a buffer of this many bytes (0 uses the default)")
	cmd.Flags().BoolVarP(&noNewline, "no-newline", "n", false, "Do not print a trailing newline")
	cmd.Flags().BoolVar(&inPlace, "in-place", false, "Read into a command-owned buffer without copying")

	return cmd
}
