//go:build !purego_wipe

package secure

import "github.com/awnumar/memguard"

const backend = "memguard"

// Wipe overwrites every byte of b with zero. memguard performs the store
// through a routine the compiler cannot prove dead.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
