package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/readpassphrase/internal/secure"
	"github.com/systmms/readpassphrase/internal/tty"
	"github.com/systmms/readpassphrase/tests/fakes"
	"github.com/systmms/readpassphrase/tests/testutil"
)

func findCheck(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not found", name)
	return Check{}
}

func TestRunChecks(t *testing.T) {
	t.Parallel()

	cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), testutil.NewTestLogger(t))
	missing := &tty.Terminal{TTYPath: filepath.Join(t.TempDir(), "no-tty")}

	checks := runChecks(cfg, missing, false)

	assert.Equal(t, secure.Backend(), findCheck(t, checks, "zeroing").Detail)
	assert.Equal(t, tty.Default().Name(), findCheck(t, checks, "primitive").Detail)
	assert.Equal(t, "warn", findCheck(t, checks, "controlling terminal").Status)
	assert.Equal(t, "warn", findCheck(t, checks, "stdin").Status)

	conf := findCheck(t, checks, "configuration")
	assert.Equal(t, "ok", conf.Status)
	assert.Equal(t, "built-in defaults", conf.Detail)
	assert.Equal(t, "echo_off", findCheck(t, checks, "flags").Detail)
}

func TestRunChecks_ConfigFlags(t *testing.T) {
	t.Parallel()

	cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), testutil.NewTestLogger(t))
	cfg.Path = testutil.WriteConfigFile(t, "version: 1\nflags: [require_tty]\n")

	checks := runChecks(cfg, &tty.Terminal{TTYPath: filepath.Join(t.TempDir(), "no-tty")}, true)

	assert.Equal(t, "ok", findCheck(t, checks, "stdin").Status)
	assert.Equal(t, cfg.Path, findCheck(t, checks, "configuration").Detail)
	assert.Equal(t, "require_tty", findCheck(t, checks, "flags").Detail)
}

func TestDoctorCommand_InvalidConfig(t *testing.T) {
	t.Parallel()

	logger := testutil.NewTestLogger(t)
	cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), logger)
	cfg.Path = testutil.WriteConfigFile(t, "version: 7\n")

	out, err := execute(t, NewDoctorCommand(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 check(s) failed")
	assert.Contains(t, out, "configuration")
	assert.Contains(t, out, "✗ error")
	logger.AssertContains(t, "Configuration error")
}

func TestDoctorCommand_Defaults(t *testing.T) {
	t.Parallel()

	logger := testutil.NewTestLogger(t)
	cfg := testutil.NewConfig(t, fakes.NewFakePrimitive(), logger)

	out, err := execute(t, NewDoctorCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "CHECK")
	assert.Contains(t, out, "Summary:")
	logger.AssertContains(t, "Ready to read passphrases")
}

func TestDisplayChecks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	displayChecks(&buf, []Check{
		{Name: "a", Status: "ok", Detail: "fine"},
		{Name: "b", Status: "warn", Detail: "hmm"},
		{Name: "c", Status: "error", Detail: "broken"},
	})

	out := buf.String()
	assert.Contains(t, out, "✓ ok")
	assert.Contains(t, out, "⚠ warn")
	assert.Contains(t, out, "✗ error")
	assert.Contains(t, out, "Summary: 1/3 checks ok")
}
