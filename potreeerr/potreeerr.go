// Package potreeerr defines the error kinds surfaced by the core query
// pipeline: invalid arguments, invalid geometry, storage failures, and
// encode failures. Kinds are documentation, not distinct Go types --
// callers that need to distinguish them use errors.Cause and message
// inspection, matching how the rest of this module wraps errors.
package potreeerr

import "github.com/pkg/errors"

// NewInvalidArgument reports malformed CLI input: a bad polyline, a
// missing required flag, or contradictory flags.
func NewInvalidArgument(format string, args ...interface{}) error {
	return errors.Errorf("invalid argument: "+format, args...)
}

// NewInvalidGeometry reports a degenerate segment, non-positive corridor
// width, or non-finite coordinate.
func NewInvalidGeometry(format string, args ...interface{}) error {
	return errors.Errorf("invalid geometry: "+format, args...)
}

// NewStorageError wraps a failure to materialize a node from the
// underlying octree store.
func NewStorageError(cause error, format string, args ...interface{}) error {
	return errors.Wrapf(cause, "storage error: "+format, args...)
}

// NewEncodeError wraps a failure of the byte sink to accept a write.
func NewEncodeError(cause error, format string, args ...interface{}) error {
	return errors.Wrapf(cause, "encode error: "+format, args...)
}
