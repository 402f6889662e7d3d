// SPDX-License-Identifier: EPL-2.0

package device

import "fmt"

// BufferID identifies a native buffer. Zero means no buffer.
type BufferID uint32

// SourceID identifies a native source. Zero means no source.
type SourceID uint32

// Vec3 is a position, velocity or direction in listener space.
type Vec3 struct {
	X, Y, Z float32
}

// Orientation is the listener's facing (Front) and up vectors.
type Orientation struct {
	Front Vec3
	Up    Vec3
}

// DefaultOrientation faces -Z with +Y up.
var DefaultOrientation = Orientation{
	Front: Vec3{X: 0, Y: 0, Z: -1},
	Up:    Vec3{X: 0, Y: 1, Z: 0},
}

// State is the playback state of a source.
type State int

const (
	Initial State = iota
	Playing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Initial:
		return "initial"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SampleFormat is the PCM layout of a buffer.
type SampleFormat int

const (
	Mono8 SampleFormat = iota + 1
	Mono16
	Stereo8
	Stereo16
)

// FormatFor returns the layout for the given bit depth and channel count.
// Only 8 or 16 bit, mono or stereo data is playable.
func FormatFor(bits, channels int) (SampleFormat, bool) {
	switch {
	case bits == 8 && channels == 1:
		return Mono8, true
	case bits == 16 && channels == 1:
		return Mono16, true
	case bits == 8 && channels == 2:
		return Stereo8, true
	case bits == 16 && channels == 2:
		return Stereo16, true
	}

	return 0, false
}

// Channels returns 1 or 2.
func (f SampleFormat) Channels() int {
	if f == Stereo8 || f == Stereo16 {
		return 2
	}

	return 1
}

// BitsPerSample returns 8 or 16.
func (f SampleFormat) BitsPerSample() int {
	if f == Mono8 || f == Stereo8 {
		return 8
	}

	return 16
}

// FrameSize is the size in bytes of one sample for every channel.
func (f SampleFormat) FrameSize() int {
	return f.Channels() * f.BitsPerSample() / 8
}

func (f SampleFormat) Valid() bool {
	return f >= Mono8 && f <= Stereo16
}

func (f SampleFormat) String() string {
	switch f {
	case Mono8:
		return "mono8"
	case Mono16:
		return "mono16"
	case Stereo8:
		return "stereo8"
	case Stereo16:
		return "stereo16"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Buffers manages PCM storage.
type Buffers interface {
	GenBuffer() (BufferID, error)
	// BufferData replaces the buffer content. data must hold whole frames.
	BufferData(id BufferID, format SampleFormat, data []byte, rate int) error
	DeleteBuffer(id BufferID) error
}

// Sources manages playback voices.
type Sources interface {
	GenSource() (SourceID, error)
	DeleteSource(id SourceID) error

	SourceState(id SourceID) (State, error)
	Play(id SourceID) error
	Stop(id SourceID) error

	// SetBuffer attaches buf to the source. A zero buf detaches.
	// Attaching to a playing source fails.
	SetBuffer(id SourceID, buf BufferID) error

	SetGain(id SourceID, gain float32) error
	SetMaxGain(id SourceID, gain float32) error
	SetPitch(id SourceID, pitch float32) error
	Pitch(id SourceID) (float32, error)
	SetLooping(id SourceID, loop bool) error

	// SetRelative makes Position relative to the listener.
	SetRelative(id SourceID, relative bool) error
	SetPosition(id SourceID, pos Vec3) error
	SetVelocity(id SourceID, vel Vec3) error
	SetReferenceDistance(id SourceID, dist float32) error
	SetMaxDistance(id SourceID, dist float32) error
	SetRolloff(id SourceID, factor float32) error

	// ByteOffset is the playback cursor in bytes from the buffer start.
	ByteOffset(id SourceID) (int, error)
	SetByteOffset(id SourceID, offset int) error
}

// Listener controls the global listener and doppler model.
type Listener interface {
	SetListenerPosition(pos Vec3) error
	SetListenerVelocity(vel Vec3) error
	SetListenerOrientation(o Orientation) error
	// SetDopplerVelocity sets the speed of sound in world units.
	SetDopplerVelocity(v float32) error
	SetDopplerFactor(f float32) error
}

// Device is an opened output context.
type Device interface {
	Buffers
	Sources
	Listener
	Close() error
}
