package readpassphrase

import (
	"fmt"
	"strings"

	"github.com/systmms/readpassphrase/internal/tty"
)

// Flags control how a passphrase is read. The zero value reads from the
// controlling terminal with echo disabled and stops at the first newline.
type Flags int

const (
	// EchoOff is the default behavior and sets no bits.
	EchoOff Flags = tty.EchoOff
	// EchoOn leaves terminal echo enabled.
	EchoOn Flags = tty.EchoOn
	// RequireTTY fails with ENOTTY instead of falling back to stdin.
	RequireTTY Flags = tty.RequireTTY
	// ForceLower maps ASCII letters to lower case.
	ForceLower Flags = tty.ForceLower
	// ForceUpper maps ASCII letters to upper case.
	ForceUpper Flags = tty.ForceUpper
	// SevenBit strips the high bit of every byte.
	SevenBit Flags = tty.SevenBit
	// Stdin reads from standard input instead of the controlling terminal.
	Stdin Flags = tty.Stdin

	DefaultFlags = EchoOff

	knownFlags = EchoOn | RequireTTY | ForceLower | ForceUpper | SevenBit | Stdin
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{EchoOn, "echo_on"},
	{RequireTTY, "require_tty"},
	{ForceLower, "force_lower"},
	{ForceUpper, "force_upper"},
	{SevenBit, "seven_bit"},
	{Stdin, "stdin"},
}

// Validate rejects bits outside the documented set.
func (f Flags) Validate() error {
	if f&^knownFlags != 0 {
		return fmt.Errorf("%w: %#x", ErrInvalidFlags, int(f&^knownFlags))
	}
	return nil
}

func (f Flags) String() string {
	if f == EchoOff {
		return "echo_off"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if rest := f &^ knownFlags; rest != 0 {
		names = append(names, fmt.Sprintf("%#x", int(rest)))
	}
	return strings.Join(names, "|")
}

// ParseFlags combines flag names as produced by Flags.String. "echo_off"
// is accepted and sets nothing.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "echo_off" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidFlags, name)
		}
	}
	return f, nil
}
