package errors

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// ReadError turns a passphrase read failure into a UserError. "Could not
// read" and "read something that was not text" get different remediation.
func ReadError(command string, err error) error {
	if err == nil {
		return nil
	}

	switch readpassphrase.KindOf(err) {
	case readpassphrase.KindEncoding:
		return UserError{
			Message:    "Passphrase is not valid UTF-8",
			Details:    "The input was discarded",
			Suggestion: "Set a UTF-8 locale in your terminal (for example LANG=en_US.UTF-8) and try again",
			Err:        err,
		}

	case readpassphrase.KindMisuse:
		return UserError{
			Message:    fmt.Sprintf("Invalid %s request", command),
			Details:    err.Error(),
			Suggestion: getMisuseSuggestion(err),
			Err:        err,
		}

	case readpassphrase.KindIO:
		msg := "Could not read passphrase"
		suggestion := "Retry the command"
		switch {
		case errors.Is(err, syscall.ENOTTY), errors.Is(err, syscall.ENXIO):
			msg = "No terminal available to read the passphrase"
			suggestion = "Run from an interactive terminal, or pass --stdin to read from standard input"
		case errors.Is(err, syscall.EINTR):
			msg = "Passphrase entry was interrupted"
			suggestion = "Run the command again"
		case errors.Is(err, errors.ErrUnsupported):
			msg = "Reading a passphrase is not supported on this platform"
			suggestion = "Use --stdin and pipe the passphrase in"
		}
		return UserError{
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
			Err:        err,
		}
	}

	return err
}

func getMisuseSuggestion(err error) string {
	switch {
	case errors.Is(err, readpassphrase.ErrInvalidFlags):
		return "Valid flags are: echo_on, require_tty, force_lower, force_upper, seven_bit, stdin"
	case errors.Is(err, readpassphrase.ErrInvalidPrompt):
		return "Remove NUL characters from the prompt"
	case errors.Is(err, readpassphrase.ErrEmptyBuffer):
		return "Use a buffer size of at least 2"
	}
	return ""
}

// IsRetryable reports whether asking again could succeed. An encoding
// failure during confirmation is the user's typo to fix; a lost terminal is
// not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return readpassphrase.IsEncoding(err)
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	var userErr UserError
	if errors.As(err, &userErr) {
		return err
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return err
	}

	if readpassphrase.KindOf(err) != 0 {
		return ReadError("read", err)
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}
	errStr := rootErr.Error()

	if strings.Contains(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
