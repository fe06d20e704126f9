package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/readpassphrase/internal/errors"
	"github.com/systmms/readpassphrase/internal/logging"
	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// DefaultPath is read when present; its absence is not an error.
const DefaultPath = "readpass.yaml"

const (
	defaultPrompt        = "Password: "
	defaultConfirmPrompt = "Confirmation: "
	defaultMaxAttempts   = 5
)

//go:embed schema.json
var schema string

// Config holds the runtime configuration
type Config struct {
	Path           string
	Logger         *logging.Logger
	NonInteractive bool
	// Reader performs every passphrase read. Tests swap in a fake primitive.
	Reader     *readpassphrase.Reader
	Definition *Definition
}

// Definition represents the readpass.yaml structure
type Definition struct {
	Version       int      `yaml:"version"`
	Prompt        string   `yaml:"prompt,omitempty"`
	ConfirmPrompt string   `yaml:"confirm_prompt,omitempty"`
	MaxAttempts   int      `yaml:"max_attempts,omitempty"`
	BufferSize    int      `yaml:"buffer_size,omitempty"`
	Flags         []string `yaml:"flags,omitempty"`
}

// Defaults returns the definition used when no file is present.
func Defaults() *Definition {
	return &Definition{
		Version:       1,
		Prompt:        defaultPrompt,
		ConfirmPrompt: defaultConfirmPrompt,
		MaxAttempts:   defaultMaxAttempts,
	}
}

// Load reads and validates the configuration file. An empty Path, or the
// default path when no such file exists, yields Defaults.
func (c *Config) Load() error {
	if c.Path == "" {
		c.Definition = Defaults()
		return nil
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if c.Path == DefaultPath {
				c.Definition = Defaults()
				return nil
			}
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Check the --config path, or omit it to use built-in defaults",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	def, err := Parse(data)
	if err != nil {
		return err
	}
	c.Definition = def
	if c.Logger != nil {
		c.Logger.Debug("loaded configuration from %s", c.Path)
	}
	return nil
}

// Parse validates data against the schema and fills unset fields with
// defaults.
func Parse(data []byte) (*Definition, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	def := Defaults()
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid configuration",
			Suggestion: err.Error(),
		}
	}
	if def.Prompt == "" {
		def.Prompt = defaultPrompt
	}
	if def.ConfirmPrompt == "" {
		def.ConfirmPrompt = defaultConfirmPrompt
	}
	if def.MaxAttempts == 0 {
		def.MaxAttempts = defaultMaxAttempts
	}
	if _, err := def.ReadFlags(); err != nil {
		return nil, err
	}
	return def, nil
}

func validate(doc interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return dserrors.ConfigError{
			Message:    "could not validate configuration",
			Suggestion: err.Error(),
		}
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	var details []string
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return dserrors.ConfigError{
		Field:      first.Field(),
		Value:      first.Value(),
		Message:    first.Description(),
		Suggestion: fmt.Sprintf("Fix the configuration file (%s)", strings.Join(details, "; ")),
	}
}

// ReadFlags converts the configured flag names.
func (d *Definition) ReadFlags() (readpassphrase.Flags, error) {
	flags, err := readpassphrase.ParseFlags(d.Flags)
	if err != nil {
		return 0, dserrors.ConfigError{
			Field:      "flags",
			Value:      strings.Join(d.Flags, ","),
			Message:    err.Error(),
			Suggestion: "Valid flags are: echo_on, require_tty, force_lower, force_upper, seven_bit, stdin",
		}
	}
	return flags, nil
}
