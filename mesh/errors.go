package mesh

import (
	"github.com/pkg/errors"
)

// Error kinds reported by the cell kernel. Every returned error wraps exactly
// one of these with the failing operation and value, so callers test with
// errors.Is.
var (
	// ErrConfiguration marks an unsupported dimension, facet number,
	// refinement rule or a missing connectivity that the caller must build.
	ErrConfiguration = errors.New("configuration error")
	// ErrGeometry marks an embedding dimension the formula does not support.
	ErrGeometry = errors.New("geometry error")
	// ErrNotImplemented marks operations that are intentionally undefined.
	ErrNotImplemented = errors.New("not implemented")
)

func configErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

func geometryErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrGeometry, format, args...)
}

func notImplementedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotImplemented, format, args...)
}
