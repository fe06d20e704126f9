//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package tty

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// interruptSignals abort a pending read. The terminal is restored before the
// signal is delivered again with its default disposition.
var interruptSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

// Terminal is the pure-Go backend.
type Terminal struct {
	// TTYPath is opened read-write for both the prompt and the input.
	TTYPath string
	// Stdin and Stderr are used with the Stdin flag, or when TTYPath
	// cannot be opened and RequireTTY is not set.
	Stdin  *os.File
	Stderr *os.File
}

// New returns a Terminal bound to the controlling terminal and the process
// standard streams.
func New() *Terminal {
	return &Terminal{
		TTYPath: DefaultPath,
		Stdin:   os.Stdin,
		Stderr:  os.Stderr,
	}
}

func (t *Terminal) Name() string { return "termios" }

// Available reports whether the controlling terminal can be opened.
func (t *Terminal) Available() bool {
	f, err := os.OpenFile(t.TTYPath, os.O_RDWR, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (t *Terminal) ReadPassphrase(prompt string, buf []byte, flags int) (int, error) {
	if len(buf) == 0 {
		return 0, unix.EINVAL
	}

	in, out := t.Stdin, t.Stderr
	if flags&Stdin == 0 {
		f, err := os.OpenFile(t.TTYPath, os.O_RDWR, 0)
		switch {
		case err == nil:
			defer f.Close()
			in, out = f, f
		case flags&RequireTTY != 0:
			return 0, unix.ENOTTY
		}
	}
	release := func() {}
	if in == t.Stdin {
		p, rel, err := pollable(in)
		if err != nil {
			return 0, err
		}
		in, release = p, rel
	}
	defer release()

	guard, err := disableEcho(in, flags)
	if err != nil {
		return 0, err
	}
	defer guard.restore()

	var caught os.Signal
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	signal.Notify(sigs, interruptSignals...)
	signal.Notify(sigs, stopSignals...)
	go func() {
		defer close(exited)
		for {
			select {
			case sig := <-sigs:
				if s, ok := sig.(unix.Signal); ok && isStopSignal(s) {
					guard.restore()
					suspendProcess(s)
					signal.Notify(sigs, s)
					_ = guard.reapply()
					_, _ = out.WriteString(prompt)
					continue
				}
				caught = sig
				guard.restore()
				_ = in.SetReadDeadline(time.Now())
				return
			case <-done:
				return
			}
		}
	}()
	finish := func() {
		close(done)
		<-exited
		signal.Stop(sigs)
		guard.restore()
	}

	if _, err := out.WriteString(prompt); err != nil {
		finish()
		return 0, err
	}

	n, readErr := readLine(in, buf, flags)

	finish()
	if guard.active() {
		_, _ = out.WriteString("\n")
	}

	if caught != nil {
		// Leave stdin as it was found before the process goes away.
		release()
		if s, ok := caught.(unix.Signal); ok {
			_ = unix.Kill(unix.Getpid(), s)
		}
		return 0, unix.EINTR
	}
	if readErr != nil {
		if errors.Is(readErr, os.ErrDeadlineExceeded) {
			return 0, unix.EINTR
		}
		return 0, readErr
	}
	return n, nil
}

// stopSignals suspend the process. The terminal is restored while stopped and
// echo is turned off again once the process continues.
var stopSignals = []os.Signal{unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU}

func isStopSignal(s unix.Signal) bool {
	return s == unix.SIGTSTP || s == unix.SIGTTIN || s == unix.SIGTTOU
}

// suspendProcess stops the process with the default action of sig and
// returns after it has been continued.
var suspendProcess = func(sig unix.Signal) {
	signal.Reset(sig)
	_ = unix.Kill(unix.Getpid(), sig)
}

// pollable returns a non-blocking duplicate of f, so that a read deadline can
// interrupt a pending read. An inherited stdin is usually in blocking mode,
// which the runtime poller cannot manage. release closes the duplicate and
// puts the shared file description back into blocking mode if it was.
func pollable(f *os.File) (*os.File, func(), error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return nil, nil, err
	}

	dup := -1
	var dupErr error
	if err := rc.Control(func(fd uintptr) {
		dup, dupErr = unix.Dup(int(fd))
	}); err != nil {
		return nil, nil, err
	}
	if dupErr != nil {
		return nil, nil, dupErr
	}

	fl, err := unix.FcntlInt(uintptr(dup), unix.F_GETFL, 0)
	if err != nil {
		_ = unix.Close(dup)
		return nil, nil, err
	}
	wasBlocking := fl&unix.O_NONBLOCK == 0
	if wasBlocking {
		if err := unix.SetNonblock(dup, true); err != nil {
			_ = unix.Close(dup)
			return nil, nil, err
		}
	}

	p := os.NewFile(uintptr(dup), f.Name())
	var once sync.Once
	release := func() {
		once.Do(func() {
			if wasBlocking {
				if prc, err := p.SyscallConn(); err == nil {
					_ = prc.Control(func(fd uintptr) {
						_ = unix.SetNonblock(int(fd), false)
					})
				}
			}
			_ = p.Close()
		})
	}
	return p, release, nil
}

// echoGuard clears ECHO and ECHONL on a terminal and puts the saved settings
// back. Its methods may be called from the signal goroutine.
type echoGuard struct {
	mu    sync.Mutex
	rc    syscall.RawConn
	saved *unix.Termios
	off   bool
}

// disableEcho turns off ECHO and ECHONL when f is a terminal with echo on and
// EchoOn is not requested. Otherwise the returned guard does nothing.
func disableEcho(f *os.File, flags int) (*echoGuard, error) {
	g := &echoGuard{}
	if flags&EchoOn != 0 {
		return g, nil
	}

	rc, err := f.SyscallConn()
	if err != nil {
		return g, nil
	}

	var saved *unix.Termios
	err = rc.Control(func(fd uintptr) {
		if !term.IsTerminal(int(fd)) {
			return
		}
		old, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
		if err != nil || old.Lflag&unix.ECHO == 0 {
			return
		}
		saved = old
	})
	if err != nil {
		return g, err
	}
	if saved == nil {
		return g, nil
	}

	g.rc, g.saved = rc, saved
	if err := g.reapply(); err != nil {
		return &echoGuard{}, err
	}
	return g, nil
}

// active reports whether the guard manages a terminal.
func (g *echoGuard) active() bool { return g.saved != nil }

// reapply turns echo off, flushing pending input.
func (g *echoGuard) reapply() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved == nil || g.off {
		return nil
	}
	raw := *g.saved
	raw.Lflag &^= unix.ECHO | unix.ECHONL

	var setErr error
	if err := g.rc.Control(func(fd uintptr) {
		setErr = unix.IoctlSetTermios(int(fd), ioctlWriteTermiosFlush, &raw)
	}); err != nil {
		return err
	}
	if setErr != nil {
		return setErr
	}
	g.off = true
	return nil
}

// restore puts the saved settings back. It is safe to call more than once.
func (g *echoGuard) restore() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.off {
		return
	}
	_ = g.rc.Control(func(fd uintptr) {
		_ = unix.IoctlSetTermios(int(fd), ioctlWriteTermiosFlush, g.saved)
	})
	g.off = false
}
