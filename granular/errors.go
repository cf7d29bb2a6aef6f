// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for out-of-range synthesis parameters.
	ErrConfiguration = errors.New("invalid synthesis configuration")

	// ErrInvalidInput is returned for an empty source, a non-positive
	// duration or an unusable crossfade.
	ErrInvalidInput = errors.New("invalid synthesis input")

	// ErrResourceExhausted is returned when the requested output is larger
	// than the engine is allowed to allocate.
	ErrResourceExhausted = errors.New("synthesis output too large")
)

// ConfigError describes which parameter was rejected and why.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
