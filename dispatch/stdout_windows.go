//go:build windows

package dispatch

// setBinaryStdout is a no-op: os.Stdout writes raw bytes regardless of
// the console's line-ending translation mode, and this module ships no
// test coverage for the old C-runtime consoles that mode would matter
// on.
func setBinaryStdout() error {
	return nil
}
