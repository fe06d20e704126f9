package readpassphrase

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/systmms/readpassphrase/internal/secure"
)

const redacted = "[REDACTED]"

// Passphrase is a UTF-8 validated passphrase. It formats as [REDACTED]
// under every fmt verb; use Bytes to get at the content.
type Passphrase []byte

// Bytes returns the passphrase without copying.
func (p Passphrase) Bytes() []byte { return p }

// Len returns the length of the passphrase in bytes.
func (p Passphrase) Len() int { return len(p) }

// Equal reports whether p equals b in constant time.
func (p Passphrase) Equal(b []byte) bool {
	return subtle.ConstantTimeCompare(p, b) == 1
}

// Zeroize overwrites p up to its capacity. The length is unchanged.
func (p Passphrase) Zeroize() { Zeroize(p) }

func (p Passphrase) String() string { return redacted }

func (p Passphrase) GoString() string { return redacted }

func (p Passphrase) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// Zeroize overwrites every byte of b up to its capacity. Zeroing an
// already-zeroed or empty slice is a no-op.
func Zeroize(b []byte) {
	secure.Wipe(b[:cap(b)])
}
