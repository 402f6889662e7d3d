// SPDX-License-Identifier: EPL-2.0

// Package devicetest provides a scripted device.Device for mixer tests.
package devicetest

import (
	"fmt"

	"github.com/ik5/audmix/device"
)

// Source is the recorded state of one fake source.
type Source struct {
	State    device.State
	Buffer   device.BufferID
	Gain     float32
	MaxGain  float32
	Pitch    float32
	Looping  bool
	Relative bool
	Position device.Vec3
	Velocity device.Vec3
	RefDist  float32
	MaxDist  float32
	Rolloff  float32
	Offset   int
}

// Buffer is the recorded state of one fake buffer.
type Buffer struct {
	Format device.SampleFormat
	Rate   int
	Data   []byte
}

// Listener is the recorded listener and doppler state.
type Listener struct {
	Position        device.Vec3
	Velocity        device.Vec3
	Orientation     device.Orientation
	DopplerVelocity float32
	DopplerFactor   float32
}

// Device records every call and never renders audio. Sources stay Playing
// until Finish or Stop is called.
type Device struct {
	// MaxSources limits live sources; 0 means unlimited.
	MaxSources int

	Sources  map[device.SourceID]*Source
	Buffers  map[device.BufferID]*Buffer
	Listener Listener
	Closed   bool

	// Calls lists every method called, in order.
	Calls []string

	fail       map[string]error
	nextSource device.SourceID
	nextBuffer device.BufferID
}

var _ device.Device = (*Device)(nil)

func New() *Device {
	return &Device{
		Sources: make(map[device.SourceID]*Source),
		Buffers: make(map[device.BufferID]*Buffer),
		fail:    make(map[string]error),
	}
}

// Fail makes every later call of op return err. A nil err clears it.
func (d *Device) Fail(op string, err error) {
	if err == nil {
		delete(d.fail, op)
		return
	}
	d.fail[op] = err
}

// Finish ends playback of id as if its buffer ran out.
func (d *Device) Finish(id device.SourceID) {
	if s, ok := d.Sources[id]; ok {
		s.State = device.Stopped
		s.Offset = 0
	}
}

// SetCursor moves the byte offset of id without validation.
func (d *Device) SetCursor(id device.SourceID, off int) {
	if s, ok := d.Sources[id]; ok {
		s.Offset = off
	}
}

// Count returns how many times op was called.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c == op {
			n++
		}
	}

	return n
}

func (d *Device) call(op string) error {
	d.Calls = append(d.Calls, op)
	if d.Closed && op != "Close" {
		return device.ErrClosed
	}

	return d.fail[op]
}

func (d *Device) source(op string, id device.SourceID) (*Source, error) {
	if err := d.call(op); err != nil {
		return nil, err
	}

	s, ok := d.Sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", device.ErrInvalidSource, id)
	}

	return s, nil
}

func (d *Device) GenBuffer() (device.BufferID, error) {
	if err := d.call("GenBuffer"); err != nil {
		return 0, err
	}

	d.nextBuffer++
	d.Buffers[d.nextBuffer] = &Buffer{}

	return d.nextBuffer, nil
}

func (d *Device) BufferData(id device.BufferID, format device.SampleFormat, data []byte, rate int) error {
	if err := d.call("BufferData"); err != nil {
		return err
	}

	b, ok := d.Buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", device.ErrInvalidBuffer, id)
	}
	b.Format, b.Rate = format, rate
	b.Data = append([]byte(nil), data...)

	return nil
}

func (d *Device) DeleteBuffer(id device.BufferID) error {
	if err := d.call("DeleteBuffer"); err != nil {
		return err
	}
	if _, ok := d.Buffers[id]; !ok {
		return fmt.Errorf("%w: %d", device.ErrInvalidBuffer, id)
	}
	for _, s := range d.Sources {
		if s.Buffer == id {
			return device.ErrInvalidOperation
		}
	}

	delete(d.Buffers, id)

	return nil
}

func (d *Device) GenSource() (device.SourceID, error) {
	if err := d.call("GenSource"); err != nil {
		return 0, err
	}
	if d.MaxSources > 0 && len(d.Sources) >= d.MaxSources {
		return 0, device.ErrOutOfSources
	}

	d.nextSource++
	d.Sources[d.nextSource] = &Source{State: device.Initial, Gain: 1, MaxGain: 1, Pitch: 1, RefDist: 1, Rolloff: 1}

	return d.nextSource, nil
}

func (d *Device) DeleteSource(id device.SourceID) error {
	if _, err := d.source("DeleteSource", id); err != nil {
		return err
	}

	delete(d.Sources, id)

	return nil
}

func (d *Device) SourceState(id device.SourceID) (device.State, error) {
	s, err := d.source("SourceState", id)
	if err != nil {
		return device.Initial, err
	}

	return s.State, nil
}

func (d *Device) Play(id device.SourceID) error {
	s, err := d.source("Play", id)
	if err != nil {
		return err
	}

	if s.Buffer == 0 {
		s.State = device.Stopped
		return nil
	}
	if s.State != device.Initial {
		s.Offset = 0
	}
	s.State = device.Playing

	return nil
}

func (d *Device) Stop(id device.SourceID) error {
	s, err := d.source("Stop", id)
	if err != nil {
		return err
	}

	if s.State != device.Initial {
		s.State = device.Stopped
	}
	s.Offset = 0

	return nil
}

func (d *Device) SetBuffer(id device.SourceID, buf device.BufferID) error {
	s, err := d.source("SetBuffer", id)
	if err != nil {
		return err
	}

	if s.State == device.Playing {
		return device.ErrInvalidOperation
	}
	if _, ok := d.Buffers[buf]; buf != 0 && !ok {
		return fmt.Errorf("%w: %d", device.ErrInvalidBuffer, buf)
	}
	s.Buffer = buf
	s.State = device.Initial
	s.Offset = 0

	return nil
}

func (d *Device) SetGain(id device.SourceID, gain float32) error {
	s, err := d.source("SetGain", id)
	if err == nil {
		s.Gain = gain
	}

	return err
}

func (d *Device) SetMaxGain(id device.SourceID, gain float32) error {
	s, err := d.source("SetMaxGain", id)
	if err == nil {
		s.MaxGain = gain
	}

	return err
}

func (d *Device) SetPitch(id device.SourceID, pitch float32) error {
	s, err := d.source("SetPitch", id)
	if err == nil {
		s.Pitch = pitch
	}

	return err
}

func (d *Device) Pitch(id device.SourceID) (float32, error) {
	s, err := d.source("Pitch", id)
	if err != nil {
		return 0, err
	}

	return s.Pitch, nil
}

func (d *Device) SetLooping(id device.SourceID, loop bool) error {
	s, err := d.source("SetLooping", id)
	if err == nil {
		s.Looping = loop
	}

	return err
}

func (d *Device) SetRelative(id device.SourceID, relative bool) error {
	s, err := d.source("SetRelative", id)
	if err == nil {
		s.Relative = relative
	}

	return err
}

func (d *Device) SetPosition(id device.SourceID, pos device.Vec3) error {
	s, err := d.source("SetPosition", id)
	if err == nil {
		s.Position = pos
	}

	return err
}

func (d *Device) SetVelocity(id device.SourceID, vel device.Vec3) error {
	s, err := d.source("SetVelocity", id)
	if err == nil {
		s.Velocity = vel
	}

	return err
}

func (d *Device) SetReferenceDistance(id device.SourceID, dist float32) error {
	s, err := d.source("SetReferenceDistance", id)
	if err == nil {
		s.RefDist = dist
	}

	return err
}

func (d *Device) SetMaxDistance(id device.SourceID, dist float32) error {
	s, err := d.source("SetMaxDistance", id)
	if err == nil {
		s.MaxDist = dist
	}

	return err
}

func (d *Device) SetRolloff(id device.SourceID, factor float32) error {
	s, err := d.source("SetRolloff", id)
	if err == nil {
		s.Rolloff = factor
	}

	return err
}

func (d *Device) ByteOffset(id device.SourceID) (int, error) {
	s, err := d.source("ByteOffset", id)
	if err != nil {
		return 0, err
	}

	return s.Offset, nil
}

func (d *Device) SetByteOffset(id device.SourceID, offset int) error {
	s, err := d.source("SetByteOffset", id)
	if err != nil {
		return err
	}
	if offset < 0 {
		return device.ErrInvalidValue
	}
	s.Offset = offset

	return nil
}

func (d *Device) SetListenerPosition(pos device.Vec3) error {
	err := d.call("SetListenerPosition")
	if err == nil {
		d.Listener.Position = pos
	}

	return err
}

func (d *Device) SetListenerVelocity(vel device.Vec3) error {
	err := d.call("SetListenerVelocity")
	if err == nil {
		d.Listener.Velocity = vel
	}

	return err
}

func (d *Device) SetListenerOrientation(o device.Orientation) error {
	err := d.call("SetListenerOrientation")
	if err == nil {
		d.Listener.Orientation = o
	}

	return err
}

func (d *Device) SetDopplerVelocity(v float32) error {
	err := d.call("SetDopplerVelocity")
	if err == nil {
		d.Listener.DopplerVelocity = v
	}

	return err
}

func (d *Device) SetDopplerFactor(f float32) error {
	err := d.call("SetDopplerFactor")
	if err == nil {
		d.Listener.DopplerFactor = f
	}

	return err
}

func (d *Device) Close() error {
	if err := d.call("Close"); err != nil {
		return err
	}
	d.Closed = true

	return nil
}
