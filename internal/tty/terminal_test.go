//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package tty

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// newPipeTerminal returns a Terminal whose controlling tty does not exist,
// reading from a pipe preloaded with input and writing prompts to a file.
func newPipeTerminal(t *testing.T, input string) (*Terminal, string) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	promptPath := filepath.Join(t.TempDir(), "stderr")
	stderr, err := os.Create(promptPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stderr.Close() })

	return &Terminal{
		TTYPath: filepath.Join(t.TempDir(), "no-such-tty"),
		Stdin:   r,
		Stderr:  stderr,
	}, promptPath
}

func TestTerminal_StdinFlag(t *testing.T) {
	t.Parallel()

	term, promptPath := newPipeTerminal(t, "hunter2\n")
	buf := make([]byte, 32)

	n, err := term.ReadPassphrase("Password: ", buf, Stdin)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(buf[:n]))

	prompt, err := os.ReadFile(promptPath)
	require.NoError(t, err)
	assert.Equal(t, "Password: ", string(prompt), "no trailing newline when echo was not disabled")
}

func TestTerminal_FallsBackToStdin(t *testing.T) {
	t.Parallel()

	term, _ := newPipeTerminal(t, "fallback\n")
	buf := make([]byte, 32)

	n, err := term.ReadPassphrase("pw: ", buf, EchoOff)
	require.NoError(t, err)
	assert.Equal(t, "fallback", string(buf[:n]))
}

func TestTerminal_RequireTTY(t *testing.T) {
	t.Parallel()

	term, promptPath := newPipeTerminal(t, "never read\n")
	buf := make([]byte, 32)

	_, err := term.ReadPassphrase("pw: ", buf, RequireTTY)
	assert.ErrorIs(t, err, unix.ENOTTY)

	prompt, err := os.ReadFile(promptPath)
	require.NoError(t, err)
	assert.Empty(t, prompt, "prompt must not be shown when no tty is available")
}

func TestTerminal_ZeroCapacity(t *testing.T) {
	t.Parallel()

	term, _ := newPipeTerminal(t, "x\n")

	_, err := term.ReadPassphrase("pw: ", nil, Stdin)
	assert.ErrorIs(t, err, unix.EINVAL)
}

func TestTerminal_SuccessiveReadsShareInput(t *testing.T) {
	t.Parallel()

	term, _ := newPipeTerminal(t, "first\nsecond\n")
	buf := make([]byte, 32)

	n, err := term.ReadPassphrase("1: ", buf, Stdin)
	require.NoError(t, err)
	assert.Equal(t, "first", string(buf[:n]))

	n, err = term.ReadPassphrase("2: ", buf, Stdin)
	require.NoError(t, err)
	assert.Equal(t, "second", string(buf[:n]))
}

func TestTerminal_Available(t *testing.T) {
	t.Parallel()

	term, _ := newPipeTerminal(t, "")
	assert.False(t, term.Available())
	assert.Equal(t, "termios", term.Name())
}

type readResult struct {
	n   int
	err error
}

// readAsync starts a read and returns a channel carrying its result.
func readAsync(term *Terminal, prompt string, size, flags int) (<-chan readResult, []byte) {
	buf := make([]byte, size)
	res := make(chan readResult, 1)
	go func() {
		n, err := term.ReadPassphrase(prompt, buf, flags)
		res <- readResult{n: n, err: err}
	}()
	return res, buf
}

func awaitResult(t *testing.T, res <-chan readResult) readResult {
	t.Helper()
	select {
	case r := <-res:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("read did not return")
		return readResult{}
	}
}

// waitForPrompt blocks until want has been written to r. Signal handlers are
// installed before the prompt is written.
func waitForPrompt(t *testing.T, r *os.File, want string) {
	t.Helper()
	require.NoError(t, r.SetReadDeadline(time.Now().Add(5*time.Second)))
	got := make([]byte, len(want))
	_, err := io.ReadFull(r, got)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

// catchSignals keeps a handler installed for the whole test so that a
// re-delivered signal is observed instead of terminating the test binary.
func catchSignals(t *testing.T, sigs ...os.Signal) <-chan os.Signal {
	t.Helper()
	ch := make(chan os.Signal, 8)
	signal.Notify(ch, sigs...)
	t.Cleanup(func() { signal.Stop(ch) })
	return ch
}

// expectSignal waits for count deliveries of sig: the one the test sent and
// the one re-raised after the read was aborted.
func expectSignal(t *testing.T, ch <-chan os.Signal, sig os.Signal, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case got := <-ch:
			assert.Equal(t, sig, got)
		case <-time.After(5 * time.Second):
			t.Fatalf("signal %v delivered %d times, want %d", sig, i, count)
		}
	}
}

func isNonblocking(t *testing.T, f *os.File) bool {
	t.Helper()
	rc, err := f.SyscallConn()
	require.NoError(t, err)

	var fl int
	var flErr error
	require.NoError(t, rc.Control(func(fd uintptr) {
		fl, flErr = unix.FcntlInt(fd, unix.F_GETFL, 0)
	}))
	require.NoError(t, flErr)
	return fl&unix.O_NONBLOCK != 0
}

func TestTerminal_InterruptBlockingStdin(t *testing.T) {
	caught := catchSignals(t, unix.SIGINT)

	// A pipe created outside the os package stays in blocking mode, like an
	// inherited stdin.
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	r := os.NewFile(uintptr(fds[0]), "stdin")
	w := os.NewFile(uintptr(fds[1]), "stdin-writer")
	t.Cleanup(func() {
		_ = w.Close()
		_ = r.Close()
	})
	require.False(t, isNonblocking(t, r))

	promptR, promptW, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = promptR.Close()
		_ = promptW.Close()
	})

	term := &Terminal{
		TTYPath: filepath.Join(t.TempDir(), "no-such-tty"),
		Stdin:   r,
		Stderr:  promptW,
	}
	res, buf := readAsync(term, "pw: ", 16, Stdin)
	waitForPrompt(t, promptR, "pw: ")

	require.NoError(t, unix.Kill(unix.Getpid(), unix.SIGINT))

	got := awaitResult(t, res)
	assert.ErrorIs(t, got.err, unix.EINTR)
	assert.Zero(t, got.n)
	assert.Equal(t, make([]byte, len(buf)), buf)

	expectSignal(t, caught, unix.SIGINT, 2)
	assert.False(t, isNonblocking(t, r), "stdin must be left in blocking mode")
}

func TestTerminal_InterruptSignals(t *testing.T) {
	for _, sig := range interruptSignals {
		t.Run(sig.String(), func(t *testing.T) {
			caught := catchSignals(t, sig)

			r, w, err := os.Pipe()
			require.NoError(t, err)
			t.Cleanup(func() {
				_ = w.Close()
				_ = r.Close()
			})
			promptR, promptW, err := os.Pipe()
			require.NoError(t, err)
			t.Cleanup(func() {
				_ = promptR.Close()
				_ = promptW.Close()
			})

			term := &Terminal{
				TTYPath: filepath.Join(t.TempDir(), "no-such-tty"),
				Stdin:   r,
				Stderr:  promptW,
			}
			res, _ := readAsync(term, "pw: ", 16, EchoOff)
			waitForPrompt(t, promptR, "pw: ")

			require.NoError(t, unix.Kill(unix.Getpid(), sig.(unix.Signal)))

			got := awaitResult(t, res)
			assert.ErrorIs(t, got.err, unix.EINTR)
			expectSignal(t, caught, sig, 2)

			// The terminal stays usable for the next read.
			_, err = w.WriteString("next\n")
			require.NoError(t, err)
			buf := make([]byte, 16)
			n, err := term.ReadPassphrase("pw: ", buf, Stdin)
			require.NoError(t, err)
			assert.Equal(t, "next", string(buf[:n]))
		})
	}
}
