//go:build !windows

package dispatch

// setBinaryStdout is a no-op on platforms where standard output is
// already binary-safe by default.
func setBinaryStdout() error {
	return nil
}
