// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized    = errors.New("audio mixer not initialized")
	ErrDeviceInit        = errors.New("audio device initialization failed")
	ErrNoBufferSlots     = errors.New("no free sound buffer slots")
	ErrNoVoiceAvailable  = errors.New("no voice available")
	ErrUnsupportedFormat = errors.New("unsupported sound format")
	ErrAllocationFailed  = errors.New("native allocation failed")
	ErrDecode            = errors.New("decoding sound failed")
	ErrInvalidBuffer     = errors.New("invalid sound buffer")
	ErrInvalidChannel    = errors.New("invalid channel")
	ErrNotFound          = errors.New("no active voice with that signature")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// NativeError is a failed device call.
type NativeError struct {
	Op  string
	Err error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("native %s: %v", e.Op, e.Err)
}

func (e *NativeError) Unwrap() error { return e.Err }
