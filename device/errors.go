// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrInvalidBuffer    = errors.New("invalid buffer id")
	ErrInvalidSource    = errors.New("invalid source id")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrOutOfSources     = errors.New("no more sources available")
	ErrClosed           = errors.New("device closed")
)
