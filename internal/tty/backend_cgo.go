//go:build cgo && cgo_readpassphrase

package tty

/*
#cgo linux LDFLAGS: -lbsd
#cgo linux CFLAGS: -DREADPASS_LIBBSD
#include <stdlib.h>
#ifdef READPASS_LIBBSD
#include <bsd/readpassphrase.h>
#else
#include <readpassphrase.h>
#endif
*/
import "C"

import (
	"bytes"
	"syscall"
	"unsafe"
)

// Default returns the backend selected at build time.
func Default() Backend { return Native{} }

// Native calls readpassphrase(3) through cgo.
type Native struct{}

func (Native) Name() string { return "readpassphrase(3)" }

// ReadPassphrase is the only place raw pointers cross into C. The prompt is
// copied once into C memory because Go strings are not NUL-terminated.
func (Native) ReadPassphrase(prompt string, buf []byte, flags int) (int, error) {
	if len(buf) == 0 {
		return 0, syscall.EINVAL
	}

	cprompt := C.CString(prompt)
	defer C.free(unsafe.Pointer(cprompt))

	res, err := C.readpassphrase(cprompt, (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)), C.int(flags))
	if res == nil {
		if err == nil {
			err = syscall.EIO
		}
		return 0, err
	}
	return bytes.IndexByte(buf, 0), nil
}
