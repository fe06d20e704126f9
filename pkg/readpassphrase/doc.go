// Package readpassphrase reads passphrases from the terminal and bounds how
// long they stay in memory.
//
// # Usage
//
// For the common case, GetPass returns a new Passphrase:
//
//	pass, err := readpassphrase.GetPass("Password: ")
//	if err != nil {
//	    return err
//	}
//	defer pass.Zeroize()
//
// To choose Flags or the buffer size, use ReadInPlace or ReadOwned depending
// on who should own the memory afterwards:
//
//	buf := make([]byte, 256)
//	pass, err := readpassphrase.ReadInPlace("Password: ", buf, readpassphrase.DefaultFlags)
//
//	pass, err = readpassphrase.ReadOwned("Pass: ", buf, readpassphrase.ForceLower)
//
// # Buffer ownership
//
// Every byte of working memory the package allocates is zeroed before the
// call returns, on success, on error and during a panic.
//
//   - Read and GetPass allocate PasswordLen bytes, copy the result out and
//     zero the working buffer.
//   - ReadInPlace borrows buf. It zeroes buf when it fails. When it succeeds
//     the result aliases buf, and zeroing buf is the caller's job.
//   - ReadOwned consumes buf. It zeroes the unused tail on success and the
//     whole capacity on failure.
//
// Passphrases returned to the caller are the caller's to zero, with
// Passphrase.Zeroize or Zeroize.
//
// # Errors
//
// Errors are *Error values with a Kind. KindIO means nothing could be read
// and wraps the OS error. KindEncoding means the input was not UTF-8; the
// bytes are zeroed and not reported. KindMisuse means the arguments were
// rejected before reading.
//
// # Platforms
//
// Reading works on Linux, macOS and the BSDs. Other platforms return
// errors.ErrUnsupported wrapped in a KindIO error.
package readpassphrase
