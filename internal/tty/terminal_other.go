//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package tty

import (
	"errors"
	"os"
)

// Terminal is unavailable on this platform. A Windows console reader is not
// provided.
type Terminal struct {
	TTYPath string
	Stdin   *os.File
	Stderr  *os.File
}

func New() *Terminal {
	return &Terminal{TTYPath: DefaultPath, Stdin: os.Stdin, Stderr: os.Stderr}
}

func (t *Terminal) Name() string { return "unsupported" }

func (t *Terminal) Available() bool { return false }

func (t *Terminal) ReadPassphrase(string, []byte, int) (int, error) {
	return 0, errors.ErrUnsupported
}
