package readpassphrase

import (
	"errors"
)

// Kind classifies a failed read.
type Kind int

const (
	// KindIO means the passphrase could not be read at all. The wrapped
	// error carries the OS error. Retrying may help.
	KindIO Kind = iota + 1
	// KindEncoding means input was read but was not valid UTF-8. The bytes
	// have been zeroed and are not recoverable.
	KindEncoding
	// KindMisuse means the call was invalid and nothing was read.
	KindMisuse
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "i/o"
	case KindEncoding:
		return "encoding"
	case KindMisuse:
		return "misuse"
	default:
		return "unknown"
	}
}

var (
	// ErrEncoding means the input was read but was not valid UTF-8. It never
	// carries the offending bytes.
	ErrEncoding = errors.New("passphrase is not valid UTF-8")
	// ErrEmptyBuffer means the caller's buffer cannot hold even the terminator.
	ErrEmptyBuffer = errors.New("buffer has zero capacity")
	// ErrInvalidFlags means a bit outside the known flags was set.
	ErrInvalidFlags = errors.New("invalid flags")
	// ErrInvalidPrompt means the prompt contains a NUL byte.
	ErrInvalidPrompt = errors.New("prompt contains a NUL byte")
)

// Error is returned by every read operation.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return "readpassphrase: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 if err did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsIO reports whether err is a failure of the underlying read.
func IsIO(err error) bool { return KindOf(err) == KindIO }

// IsEncoding reports whether err is an invalid UTF-8 result.
func IsEncoding(err error) bool { return KindOf(err) == KindEncoding }

// IsMisuse reports whether err was caused by the arguments of the call.
func IsMisuse(err error) bool { return KindOf(err) == KindMisuse }

// OwnedError is returned by ReadOwned. The consumed buffer has already been
// zeroed; Take hands it back, empty, so it can be reused for the next read.
type OwnedError struct {
	err error
	buf []byte
}

func (e *OwnedError) Error() string { return e.err.Error() }

func (e *OwnedError) Unwrap() error { return e.err }

// Take returns the zeroed buffer with length 0 and its original capacity.
// Later calls return nil.
func (e *OwnedError) Take() []byte {
	buf := e.buf
	e.buf = nil
	return buf
}
