package tty

import (
	"errors"
	"io"
	"syscall"
)

// readLine reads bytes from r until a newline, a carriage return or EOF.
// Input past the capacity of buf is consumed and discarded so the next read
// starts on a fresh line. The result is NUL-terminated.
func readLine(r io.Reader, buf []byte, flags int) (int, error) {
	if len(buf) == 0 {
		return 0, syscall.EINVAL
	}

	var ch [1]byte
	defer func() { ch[0] = 0 }()

	end := len(buf) - 1
	n := 0
	for {
		nr, err := r.Read(ch[:])
		if nr > 0 {
			c := ch[0]
			if c == '\n' || c == '\r' {
				break
			}
			if n < end {
				buf[n] = transform(c, flags)
				n++
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
	}

	buf[n] = 0
	return n, nil
}

func transform(c byte, flags int) byte {
	if flags&SevenBit != 0 {
		c &= 0x7f
	}
	// ForceUpper wins when both case flags are set.
	if flags&ForceLower != 0 && c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if flags&ForceUpper != 0 && c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}
