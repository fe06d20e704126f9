package secure

import (
	"crypto/subtle"
	"sync"

	"github.com/awnumar/memguard"
)

// Backend names the zeroing routine selected at build time.
func Backend() string { return backend }

// SecureBuffer holds a passphrase between reads. It wraps memguard.Enclave so
// the plaintext is encrypted at rest and only decrypted into locked memory
// for the duration of a comparison.
type SecureBuffer struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// empty records a zero-length secret; memguard has no empty enclave.
	empty bool
	// destroyed allows idempotent Destroy calls and rejects use after it.
	destroyed bool
}

// NewSecureBuffer seals data into an enclave. The source slice is wiped,
// so callers can hand over a read buffer directly.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return &SecureBuffer{empty: true}, nil
	}
	// NewEnclave copies data into encrypted memory and wipes the source.
	enclave := memguard.NewEnclave(data)
	Wipe(data)
	return &SecureBuffer{enclave: enclave}, nil
}

// Open decrypts the sealed data into a locked buffer. The caller MUST call
// Destroy on the result.
//
//	locked, err := buf.Open()
//	if err != nil {
//	    return err
//	}
//	defer locked.Destroy()
func (s *SecureBuffer) Open() (*memguard.LockedBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed || s.empty || s.enclave == nil {
		return memguard.NewBuffer(0), nil
	}
	return s.enclave.Open()
}

// Equal reports, in constant time, whether b matches the sealed data.
func (s *SecureBuffer) Equal(b []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed {
		return false, nil
	}
	if s.empty || s.enclave == nil {
		return len(b) == 0, nil
	}

	locked, err := s.enclave.Open()
	if err != nil {
		return false, err
	}
	defer locked.Destroy()

	return subtle.ConstantTimeCompare(locked.Bytes(), b) == 1, nil
}

// Size returns the length of the sealed data.
func (s *SecureBuffer) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.destroyed || s.enclave == nil {
		return 0
	}
	return s.enclave.Size()
}

// Destroy drops the enclave. It is idempotent; Equal returns false and Open
// returns an empty buffer afterwards. The ciphertext is left to the garbage
// collector, and Purge wipes the key at exit.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	s.enclave = nil
	s.destroyed = true
}

// Purge wipes all memguard-managed memory, including the enclave key. Call it
// once before the process exits.
func Purge() {
	memguard.Purge()
}
