// SPDX-License-Identifier: EPL-2.0

package device

import "io"

// Capturer records what a device renders.
type Capturer interface {
	StartCapture() error
	StopCapture() error
	// ReadCapture drains captured 16-bit little endian stereo PCM into p.
	ReadCapture(p []byte) (int, error)
}

// Enumerator lists the output devices a backend can open.
type Enumerator interface {
	Devices() ([]string, error)
}

// NoCapture is the Capturer for devices without a capture path.
// Starting and stopping succeed and nothing is ever captured.
type NoCapture struct{}

func (NoCapture) StartCapture() error { return nil }
func (NoCapture) StopCapture() error  { return nil }

func (NoCapture) ReadCapture(p []byte) (int, error) {
	return 0, io.EOF
}

// CaptureOf returns d's Capturer, or NoCapture when d has none.
func CaptureOf(d Device) Capturer {
	if c, ok := d.(Capturer); ok {
		return c
	}

	return NoCapture{}
}

// Devices lists output devices when d supports enumeration, nil otherwise.
func Devices(d Device) ([]string, error) {
	e, ok := d.(Enumerator)
	if !ok {
		return nil, nil
	}

	return e.Devices()
}
