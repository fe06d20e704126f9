package readpassphrase

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/systmms/readpassphrase/internal/secure"
	"github.com/systmms/readpassphrase/internal/tty"
)

// PasswordLen is the size of the buffer used by Read and GetPass. One byte is
// reserved for the terminator, so passphrases are limited to 255 bytes.
// Longer input is truncated.
const PasswordLen = 256

// Primitive reads one passphrase into buf. It writes at most len(buf)-1 bytes
// followed by a NUL terminator and returns the number of bytes written before
// the terminator. It never retains buf.
type Primitive interface {
	ReadPassphrase(prompt string, buf []byte, flags Flags) (int, error)
}

// Reader runs passphrase reads against a Primitive and owns the zeroing of
// every buffer it allocates. A Reader holds no state between calls; callers
// must serialize their own use of the terminal.
type Reader struct {
	primitive Primitive
}

// NewReader returns a Reader backed by p.
func NewReader(p Primitive) *Reader {
	return &Reader{primitive: p}
}

type backendPrimitive struct {
	backend tty.Backend
}

func (b backendPrimitive) ReadPassphrase(prompt string, buf []byte, flags Flags) (int, error) {
	return b.backend.ReadPassphrase(prompt, buf, int(flags))
}

var std = NewReader(backendPrimitive{tty.Default()})

// Default returns the Reader used by the package-level functions. It reads
// from the controlling terminal.
func Default() *Reader { return std }

// GetPass reads a passphrase with DefaultFlags into a new Passphrase.
func GetPass(prompt string) (Passphrase, error) {
	return std.Read(prompt, DefaultFlags)
}

// Read calls Default().Read.
func Read(prompt string, flags Flags) (Passphrase, error) {
	return std.Read(prompt, flags)
}

// ReadInPlace calls Default().ReadInPlace.
func ReadInPlace(prompt string, buf []byte, flags Flags) (Passphrase, error) {
	return std.ReadInPlace(prompt, buf, flags)
}

// ReadOwned calls Default().ReadOwned.
func ReadOwned(prompt string, buf []byte, flags Flags) (Passphrase, error) {
	return std.ReadOwned(prompt, buf, flags)
}

// Read reads a passphrase of up to PasswordLen-1 bytes into a working buffer
// it allocates, and returns an exact-length copy. The working buffer is
// zeroed before Read returns, whatever the outcome.
//
// The returned Passphrase belongs to the caller, who should Zeroize it once
// it is no longer needed.
func (r *Reader) Read(prompt string, flags Flags) (Passphrase, error) {
	const op = "read"
	if err := checkArgs(op, prompt, flags); err != nil {
		return nil, err
	}

	buf := make([]byte, PasswordLen)
	defer secure.Wipe(buf)

	n, err := r.call(op, prompt, buf, flags)
	if err != nil {
		return nil, err
	}

	pass := make(Passphrase, n)
	copy(pass, buf[:n])
	return pass, nil
}

// ReadInPlace reads a passphrase of up to len(buf)-1 bytes into buf and
// returns a view of buf. Nothing is copied.
//
// If the read fails, buf is zeroed before the error is returned. On success
// buf is left alone, since the result aliases it: the caller must zero buf
// once done with the result.
//
//	buf := make([]byte, readpassphrase.PasswordLen)
//	defer readpassphrase.Zeroize(buf)
//	pass, err := readpassphrase.ReadInPlace("Password: ", buf, readpassphrase.RequireTTY)
func (r *Reader) ReadInPlace(prompt string, buf []byte, flags Flags) (Passphrase, error) {
	const op = "read in place"
	if len(buf) == 0 {
		return nil, &Error{Op: op, Kind: KindMisuse, Err: ErrEmptyBuffer}
	}
	if err := checkArgs(op, prompt, flags); err != nil {
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			secure.Wipe(buf)
		}
	}()

	n, err := r.call(op, prompt, buf, flags)
	if err != nil {
		return nil, err
	}
	ok = true
	return Passphrase(buf[:n:n]), nil
}

// ReadOwned takes ownership of buf and reads a passphrase of up to
// cap(buf)-1 bytes into its full capacity. The result reuses buf's memory;
// bytes past the passphrase are zeroed.
//
// On failure the entire capacity of buf is zeroed and the error is an
// *OwnedError, from which the empty buffer can be taken back for reuse.
func (r *Reader) ReadOwned(prompt string, buf []byte, flags Flags) (Passphrase, error) {
	const op = "read owned"
	buf = buf[:cap(buf)]

	ok := false
	defer func() {
		if !ok {
			secure.Wipe(buf)
		}
	}()

	if len(buf) == 0 {
		return nil, &OwnedError{err: &Error{Op: op, Kind: KindMisuse, Err: ErrEmptyBuffer}, buf: buf[:0]}
	}
	if err := checkArgs(op, prompt, flags); err != nil {
		return nil, &OwnedError{err: err, buf: buf[:0]}
	}

	n, err := r.call(op, prompt, buf, flags)
	if err != nil {
		return nil, &OwnedError{err: err, buf: buf[:0]}
	}

	secure.Wipe(buf[n:])
	ok = true
	return Passphrase(buf[:n]), nil
}

// call is the only place the primitive is invoked. It checks the reported
// length and the encoding but leaves zeroing to the caller, which knows who
// owns buf.
func (r *Reader) call(op, prompt string, buf []byte, flags Flags) (int, error) {
	n, err := r.primitive.ReadPassphrase(prompt, buf, flags)
	if err != nil {
		return 0, &Error{Op: op, Kind: KindIO, Err: err}
	}
	if n < 0 || n >= len(buf) {
		return 0, &Error{Op: op, Kind: KindIO, Err: fmt.Errorf("primitive reported %d bytes for a %d byte buffer: %w", n, len(buf), io.ErrShortBuffer)}
	}
	if !utf8.Valid(buf[:n]) {
		return 0, &Error{Op: op, Kind: KindEncoding, Err: ErrEncoding}
	}
	return n, nil
}

func checkArgs(op, prompt string, flags Flags) error {
	if err := flags.Validate(); err != nil {
		return &Error{Op: op, Kind: KindMisuse, Err: err}
	}
	if strings.IndexByte(prompt, 0) >= 0 {
		return &Error{Op: op, Kind: KindMisuse, Err: ErrInvalidPrompt}
	}
	return nil
}
