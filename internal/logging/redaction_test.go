package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/systmms/readpassphrase/internal/logging"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// TestPassphraseRedactionAtInfoLevel verifies passphrases never reach Info logs
func TestPassphraseRedactionAtInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, false, true)

	pass := readpassphrase.Passphrase("super-secret-password-12345")
	logger.Info("Read passphrase: %s (%v, %q)", pass, pass, pass)

	output := buf.String()
	assert.Contains(t, output, "[REDACTED]")
	assert.NotContains(t, output, "super-secret-password-12345")
	assert.Contains(t, output, "Read passphrase")
}

// TestSecretRedactionAtDebugLevel verifies secrets are redacted in Debug-level logs
func TestSecretRedactionAtDebugLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, true, true)

	secret := logging.Secret("debug-secret-67890")
	logger.Debug("Processing secret: %s %#v", secret, secret)

	output := buf.String()
	assert.Contains(t, output, "[DEBUG]")
	assert.NotContains(t, output, "debug-secret-67890")
}
