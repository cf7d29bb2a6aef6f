// SPDX-License-Identifier: EPL-2.0

package granuloop

import "errors"

// ErrFileTooLarge is returned by LoadFile for inputs above the size limit.
var ErrFileTooLarge = errors.New("input file exceeds size limit")
