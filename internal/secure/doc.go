// Package secure zeroes and protects passphrase material in memory.
//
// Wipe is the zeroing routine used on every exit path of a passphrase read.
// Two backends exist, chosen at build time:
//
//   - memguard (default): memguard.WipeBytes
//   - purego (build tag purego_wipe): a non-inlined loop kept alive past the
//     final store so it cannot be removed as a dead write
//
// Both set every byte of the target to zero and are safe to call on an
// already-zeroed, empty or nil slice.
//
// SecureBuffer keeps a passphrase sealed in a memguard enclave while a second
// one is read for confirmation:
//
//	sealed, err := secure.NewSecureBuffer(pass) // pass is wiped
//	if err != nil {
//	    return err
//	}
//	defer sealed.Destroy()
//
//	ok, err := sealed.Equal(confirmation)
//
// # Platform Behavior
//
// Opening an enclave locks the plaintext with mlock. On Linux the amount of
// lockable memory is bounded by RLIMIT_MEMLOCK; a passphrase needs a single
// page.
//
// It does NOT protect against:
//
//   - Attackers with root access to the running process
//   - Copies made by the Go runtime before the data reached this package
//   - Hardware-level attacks (cold boot, DMA)
package secure
