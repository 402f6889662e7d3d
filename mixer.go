// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
)

// Mixer is the voice pool and buffer registry over one device.
type Mixer struct {
	cfg      Config
	log      logrus.FieldLogger
	decoders *audio.Registry

	dev         device.Device
	initialized bool
	enabled3D   bool

	voices  []voice
	buffers []soundBuffer
	memUsed int64

	nextSig  int
	sigLimit int
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger for native call failures and pool events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithDecoders replaces the decoder registry used by Load.
func WithDecoders(r *audio.Registry) Option {
	return func(m *Mixer) {
		if r != nil {
			m.decoders = r
		}
	}
}

// New returns an uninitialized mixer. Call Init before anything else.
func New(cfg Config, opts ...Option) *Mixer {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	m := &Mixer{
		cfg:      cfg,
		log:      quiet,
		sigLimit: math.MaxInt32,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.decoders == nil {
		m.decoders = DefaultDecoders()
	}

	return m
}

// Init takes ownership of dev and sizes the voice pool. The pool holds
// Config.Channels voices, or fewer when the device cannot generate that many
// sources. Native sources are generated again lazily on first use.
func (m *Mixer) Init(dev device.Device) error {
	if m.initialized {
		return nil
	}
	if dev == nil {
		return fmt.Errorf("%w: no device", ErrDeviceInit)
	}
	if err := m.cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceInit, err)
	}

	probed := make([]device.SourceID, 0, m.cfg.Channels)
	var probeErr error
	for range m.cfg.Channels {
		id, err := dev.GenSource()
		if err != nil {
			probeErr = err
			break
		}
		probed = append(probed, id)
	}
	for _, id := range probed {
		m.warn("DeleteSource", dev.DeleteSource(id), -1, -1)
	}

	if len(probed) == 0 {
		return errors.Join(ErrDeviceInit, &NativeError{Op: "GenSource", Err: probeErr})
	}
	if len(probed) < m.cfg.Channels {
		m.log.WithFields(logrus.Fields{
			"requested": m.cfg.Channels,
			"available": len(probed),
		}).Warn("device restricts voice count")
	}

	m.dev = dev
	m.voices = make([]voice, len(probed))
	for i := range m.voices {
		m.voices[i] = idleVoice()
	}
	m.buffers = make([]soundBuffer, 0, m.cfg.BufferBump)
	m.memUsed = 0
	m.nextSig = 0
	m.initialized = true

	m.resetListener()

	if m.cfg.Enable3D {
		if err := m.Init3D(); err != nil {
			return err
		}
	}

	m.log.WithField("voices", len(m.voices)).Info("mixer initialized")

	return nil
}

// Close stops every voice, unloads every buffer, releases the native sources
// and closes the device. The mixer can be initialized again afterwards.
func (m *Mixer) Close() error {
	if !m.initialized {
		return nil
	}

	m.StopAll()
	m.UnloadAll()

	for i := range m.voices {
		if m.voices[i].handle != 0 {
			m.warn("DeleteSource", m.dev.DeleteSource(m.voices[i].handle), i, -1)
		}
	}

	err := m.dev.Close()

	m.voices = nil
	m.buffers = nil
	m.memUsed = 0
	m.enabled3D = false
	m.initialized = false
	m.dev = nil

	if err != nil {
		return &NativeError{Op: "Close", Err: err}
	}

	return nil
}

// Initialized reports whether Init succeeded and Close has not run.
func (m *Mixer) Initialized() bool { return m.initialized }

// Capture returns the device's capture path, or a no-op capturer.
func (m *Mixer) Capture() device.Capturer {
	if !m.initialized {
		return device.NoCapture{}
	}

	return device.CaptureOf(m.dev)
}

// Devices lists the backend's output devices when it can enumerate them.
func (m *Mixer) Devices() ([]string, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}

	return device.Devices(m.dev)
}

// resetListener puts the listener at the origin facing -Z.
func (m *Mixer) resetListener() {
	m.warn("SetListenerPosition", m.dev.SetListenerPosition(device.Vec3{}), -1, -1)
	m.warn("SetListenerVelocity", m.dev.SetListenerVelocity(device.Vec3{}), -1, -1)
	m.warn("SetListenerOrientation", m.dev.SetListenerOrientation(device.DefaultOrientation), -1, -1)
}

// warn logs a failed native call that does not abort the operation.
func (m *Mixer) warn(op string, err error, ch, buf int) {
	if err == nil {
		return
	}

	m.log.WithFields(logrus.Fields{
		"op":     op,
		"voice":  ch,
		"buffer": buf,
	}).WithError(err).Warn("native call failed")
}

// check logs a failed native call and returns it as a *NativeError.
func (m *Mixer) check(op string, err error, ch, buf int) error {
	if err == nil {
		return nil
	}

	m.log.WithFields(logrus.Fields{
		"op":     op,
		"voice":  ch,
		"buffer": buf,
	}).WithError(err).Error("native call failed")

	return &NativeError{Op: op, Err: err}
}
