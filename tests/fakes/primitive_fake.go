package fakes

import (
	"sync"

	"github.com/systmms/readpassphrase/pkg/readpassphrase"
)

// Response scripts one call to FakePrimitive.
type Response struct {
	// Input is written into the buffer, truncated to capacity-1 and
	// NUL-terminated, as readpassphrase(3) would.
	Input []byte
	// Err is returned after Input has been written, simulating a read
	// that failed part way through.
	Err error
	// ReportLen overrides the returned length when non-nil.
	ReportLen *int
	// Panic makes the call panic after writing Input.
	Panic bool
}

// Call records one invocation.
type Call struct {
	Prompt   string
	Flags    readpassphrase.Flags
	Capacity int
	// Buffer is the slice handed to the primitive. Tests inspect it after
	// the gateway returns to check that it was zeroed.
	Buffer []byte
}

// FakePrimitive is a scripted readpassphrase.Primitive. Responses are used in
// order; once they run out every call returns an empty passphrase.
type FakePrimitive struct {
	mu        sync.Mutex
	Responses []Response
	Calls     []Call
}

// NewFakePrimitive scripts successful reads of each input.
func NewFakePrimitive(inputs ...string) *FakePrimitive {
	f := &FakePrimitive{}
	for _, in := range inputs {
		f.Responses = append(f.Responses, Response{Input: []byte(in)})
	}
	return f
}

func (f *FakePrimitive) ReadPassphrase(prompt string, buf []byte, flags readpassphrase.Flags) (int, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, Call{Prompt: prompt, Flags: flags, Capacity: len(buf), Buffer: buf})
	var resp Response
	if len(f.Responses) > 0 {
		resp = f.Responses[0]
		f.Responses = f.Responses[1:]
	}
	f.mu.Unlock()

	n := copy(buf[:len(buf)-1], resp.Input)
	buf[n] = 0

	if resp.Panic {
		panic("fake primitive panic")
	}
	if resp.Err != nil {
		return 0, resp.Err
	}
	if resp.ReportLen != nil {
		return *resp.ReportLen, nil
	}
	return n, nil
}

// LastCall returns the most recent invocation.
func (f *FakePrimitive) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

// CallCount returns the number of invocations so far.
func (f *FakePrimitive) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
