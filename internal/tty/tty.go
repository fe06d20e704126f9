// Package tty reads a single line of input from the controlling terminal with
// echo disabled, following the behavior of readpassphrase(3).
//
// Two backends exist. The default is a pure-Go implementation that drives the
// terminal through termios ioctls. Building with the cgo_readpassphrase tag
// links the C readpassphrase(3) instead (libbsd on Linux, libc elsewhere).
// Either way the contract is the same: at most len(buf)-1 bytes are written,
// followed by a NUL terminator, and the written length is returned.
package tty

// Flag bits understood by every backend. The values match readpassphrase(3).
const (
	EchoOff    = 0x00
	EchoOn     = 0x01
	RequireTTY = 0x02
	ForceLower = 0x04
	ForceUpper = 0x08
	SevenBit   = 0x10
	Stdin      = 0x20
)

// DefaultPath is the controlling terminal device.
const DefaultPath = "/dev/tty"

// Backend reads one passphrase into buf.
type Backend interface {
	ReadPassphrase(prompt string, buf []byte, flags int) (int, error)
	Name() string
}
