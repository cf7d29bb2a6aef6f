// SPDX-License-Identifier: EPL-2.0

package analysis

import "errors"

var (
	ErrEmptyBuffer  = errors.New("analysis: buffer has no samples")
	ErrHolderClosed = errors.New("analysis: classifier holder is closed")
)
