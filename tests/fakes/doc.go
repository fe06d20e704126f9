// Package fakes provides test doubles for the passphrase primitive.
//
// FakePrimitive stands in for the terminal so the gateway and the CLI can be
// tested without a tty. It records every buffer it was handed, which lets a
// test check that the buffer was zeroed after the call returned.
//
// Usage:
//
//	fake := fakes.NewFakePrimitive("hunter2")
//	reader := readpassphrase.NewReader(fake)
//	pass, err := reader.Read("Password: ", readpassphrase.DefaultFlags)
//	// fake.LastCall().Buffer is all zeroes here.
package fakes
