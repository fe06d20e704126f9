//go:build purego_wipe

package secure

import "runtime"

const backend = "purego"

// Wipe overwrites every byte of b with zero.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
