package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/systmms/readpassphrase/internal/config"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// NewConfig returns a config.Config that reads through p and logs to logger.
// Path is empty, so Load yields the built-in defaults unless a test sets it.
func NewConfig(t *testing.T, p readpassphrase.Primitive, logger *TestLogger) *config.Config {
	t.Helper()
	return &config.Config{
		Logger: logger.Logger(),
		Reader: readpassphrase.NewReader(p),
	}
}

// WriteConfigFile writes a readpass.yaml into a temporary directory and
// returns its path.
func WriteConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
