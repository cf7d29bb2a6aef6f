// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat   = errors.New("unknown audio format")
	ErrInvalidRate     = errors.New("sample rate must be positive")
	ErrInvalidChannels = errors.New("channel count must be positive")
)

// FormatError reports a format key no decoder is registered for.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("%s: missing file extension", ErrUnknownFormat)
	}

	return fmt.Sprintf("%s: %q", ErrUnknownFormat, e.Format)
}

func (e *FormatError) Unwrap() error {
	return ErrUnknownFormat
}
