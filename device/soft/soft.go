// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"sync"

	"github.com/ik5/audmix/device"
)

const (
	// DefaultMaxSources bounds GenSource.
	DefaultMaxSources = 256

	// defaultCaptureLimit is ten seconds of stereo 16-bit audio at 48 kHz.
	defaultCaptureLimit = 10 * 48000 * 4

	minPitch = 1.0 / 64
)

type buffer struct {
	frames   []float32 // interleaved, channels per frame
	channels int
	rate     int
	format   device.SampleFormat
	users    int
}

func (b *buffer) frameCount() int {
	if b.channels == 0 {
		return 0
	}

	return len(b.frames) / b.channels
}

type source struct {
	buf      device.BufferID
	state    device.State
	gain     float32
	maxGain  float32
	pitch    float32
	looping  bool
	relative bool
	pos      device.Vec3
	vel      device.Vec3
	refDist  float32
	maxDist  float32
	rolloff  float32
	cursor   float64 // in frames of the attached buffer
}

func newSource() *source {
	return &source{
		state:   device.Initial,
		gain:    1,
		maxGain: 1,
		pitch:   1,
		refDist: 1,
		maxDist: float32(1 << 30),
		rolloff: 1,
	}
}

type listener struct {
	pos    device.Vec3
	vel    device.Vec3
	orient device.Orientation
}

// Device is a software mixer. The zero value is not usable; call New.
type Device struct {
	mu sync.Mutex

	rate       int
	maxSources int
	closed     bool

	buffers    map[device.BufferID]*buffer
	sources    map[device.SourceID]*source
	nextBuffer device.BufferID
	nextSource device.SourceID

	lis           listener
	dopplerVel    float32
	dopplerFactor float32

	capturing    bool
	captureLimit int
	captured     []byte
}

// Option configures a Device.
type Option func(*Device)

// WithMaxSources limits how many sources GenSource hands out.
func WithMaxSources(n int) Option {
	return func(d *Device) {
		d.maxSources = n
	}
}

// WithCaptureLimit bounds the loopback buffer in bytes. Audio rendered
// while the buffer is full is not captured.
func WithCaptureLimit(n int) Option {
	return func(d *Device) {
		d.captureLimit = n
	}
}

// New returns a device rendering at rate Hz.
func New(rate int, opts ...Option) *Device {
	d := &Device{
		rate:          rate,
		maxSources:    DefaultMaxSources,
		buffers:       make(map[device.BufferID]*buffer),
		sources:       make(map[device.SourceID]*source),
		lis:           listener{orient: device.DefaultOrientation},
		dopplerVel:    343.3,
		dopplerFactor: 1,
		captureLimit:  defaultCaptureLimit,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SampleRate is the output rate of Render.
func (d *Device) SampleRate() int { return d.rate }

// Close releases every buffer and source. Later calls fail with
// device.ErrClosed.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	d.buffers = map[device.BufferID]*buffer{}
	d.sources = map[device.SourceID]*source{}
	d.captured = nil

	return nil
}

// Devices implements device.Enumerator.
func (d *Device) Devices() ([]string, error) {
	return []string{"software"}, nil
}

func (d *Device) source(id device.SourceID) (*source, error) {
	if d.closed {
		return nil, device.ErrClosed
	}

	s, ok := d.sources[id]
	if !ok {
		return nil, device.ErrInvalidSource
	}

	return s, nil
}

// withSource runs fn on the source under the lock.
func (d *Device) withSource(id device.SourceID, fn func(*source) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return err
	}

	return fn(s)
}
