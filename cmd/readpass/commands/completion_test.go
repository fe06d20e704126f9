package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/readpassphrase/tests/fakes"
	"github.com/systmms/readpassphrase/tests/testutil"
)

func TestCompletionCommand(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		shell := shell
		t.Run(shell, func(t *testing.T) {
			t.Parallel()

			cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), testutil.NewTestLogger(t))
			root := &cobra.Command{Use: "readpass"}
			root.AddCommand(NewGetCommand(cfg), NewCompletionCommand(cfg))

			out, err := execute(t, root, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "readpass")
		})
	}
}

func TestCompletionCommand_InvalidShell(t *testing.T) {
	t.Parallel()

	cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), testutil.NewTestLogger(t))
	root := &cobra.Command{Use: "readpass"}
	root.AddCommand(NewCompletionCommand(cfg))

	_, err := execute(t, root, "completion", "tcsh")
	require.Error(t, err)
}
