//go:build darwin || freebsd || openbsd || netbsd || dragonfly

package tty

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios       = unix.TIOCGETA
	ioctlWriteTermiosFlush = unix.TIOCSETAF
)
