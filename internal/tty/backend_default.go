//go:build !(cgo && cgo_readpassphrase)

package tty

// Default returns the backend selected at build time.
func Default() Backend { return New() }
