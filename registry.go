// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audmix/device"
)

// Codec names accepted by SoundInfo.Codec.
const (
	CodecPCM    = "pcm"
	CodecWAV    = "wav"
	CodecVorbis = "ogg"
	CodecMP3    = "mp3"
	CodecAIFF   = "aiff"
)

// SoundInfo describes a payload passed to Load. The PCM fields are read
// only for CodecPCM (or an empty Codec); containers carry their own format.
type SoundInfo struct {
	Codec         string
	SampleRate    int
	BitsPerSample int
	Channels      int
}

// BufferInfo describes a loaded buffer.
type BufferInfo struct {
	ID            int
	Format        device.SampleFormat
	SampleRate    int
	BitsPerSample int
	Channels      int
	Size          int
	// Seconds is the whole-second duration, Duration the exact one.
	Seconds  int
	Duration time.Duration
	// Voice is the channel most recently bound to the buffer, or -1.
	Voice int
}

type soundBuffer struct {
	handle device.BufferID
	format device.SampleFormat
	rate   int
	size   int
	voice  int
}

func (b *soundBuffer) avgBytesPerSec() int {
	return b.rate * b.format.FrameSize()
}

// allocateHandle returns the first free slot, growing the registry by
// Config.BufferBump slots when it is full. Slots never move.
func (m *Mixer) allocateHandle() (int, error) {
	for i := range m.buffers {
		if m.buffers[i].handle == 0 {
			return i, nil
		}
	}

	if m.cfg.MaxBuffers > 0 && len(m.buffers) >= m.cfg.MaxBuffers {
		return -1, ErrNoBufferSlots
	}
	if len(m.buffers) == cap(m.buffers) {
		m.buffers = slices.Grow(m.buffers, m.cfg.BufferBump)
	}
	m.buffers = append(m.buffers, soundBuffer{voice: -1})

	return len(m.buffers) - 1, nil
}

// Load commits a sound to a new buffer and returns its id. Raw PCM must be 8
// or 16 bit, mono or stereo. Containers are decoded to 16-bit PCM first.
func (m *Mixer) Load(data []byte, info SoundInfo) (int, error) {
	if !m.initialized {
		return -1, ErrNotInitialized
	}

	if info.Codec != "" && info.Codec != CodecPCM {
		pcm, rate, channels, err := m.decode(info.Codec, bytes.NewReader(data))
		if err != nil {
			return -1, err
		}

		format, ok := device.FormatFor(16, channels)
		if !ok {
			return -1, fmt.Errorf("%w: decoded %d channels", ErrUnsupportedFormat, channels)
		}

		return m.commit(pcm, format, rate)
	}

	format, ok := device.FormatFor(info.BitsPerSample, info.Channels)
	if !ok {
		return -1, fmt.Errorf("%w: %d bit, %d channels", ErrUnsupportedFormat, info.BitsPerSample, info.Channels)
	}
	if info.SampleRate <= 0 {
		return -1, fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, info.SampleRate)
	}
	if len(data)%format.FrameSize() != 0 {
		return -1, fmt.Errorf("%w: %d bytes is not a whole number of %s frames", ErrUnsupportedFormat, len(data), format)
	}

	return m.commit(data, format, info.SampleRate)
}

// commit uploads PCM into a fresh native buffer in a free slot.
func (m *Mixer) commit(pcm []byte, format device.SampleFormat, rate int) (int, error) {
	id, err := m.reserve(format, rate)
	if err != nil {
		return -1, err
	}

	if err := m.upload(id, pcm); err != nil {
		m.release(id)
		return -1, err
	}

	return id, nil
}

// reserve takes a slot and generates its native buffer.
func (m *Mixer) reserve(format device.SampleFormat, rate int) (int, error) {
	id, err := m.allocateHandle()
	if err != nil {
		return -1, err
	}

	h, err := m.dev.GenBuffer()
	if err != nil {
		return -1, errors.Join(ErrAllocationFailed, m.check("GenBuffer", err, -1, id))
	}

	m.buffers[id] = soundBuffer{handle: h, format: format, rate: rate, voice: -1}

	return id, nil
}

func (m *Mixer) upload(id int, pcm []byte) error {
	b := &m.buffers[id]
	if err := m.dev.BufferData(b.handle, b.format, pcm, b.rate); err != nil {
		return errors.Join(ErrAllocationFailed, m.check("BufferData", err, -1, id))
	}

	m.memUsed += int64(len(pcm) - b.size)
	b.size = len(pcm)

	m.log.WithFields(logrus.Fields{
		"buffer": id,
		"format": b.format.String(),
		"rate":   b.rate,
		"bytes":  b.size,
	}).Debug("buffer loaded")

	return nil
}

// release deletes the native buffer and frees the slot.
func (m *Mixer) release(id int) {
	b := &m.buffers[id]
	m.warn("DeleteBuffer", m.dev.DeleteBuffer(b.handle), -1, id)
	m.memUsed -= int64(b.size)
	m.buffers[id] = soundBuffer{voice: -1}
}

// CreateBuffer reserves a buffer for seconds of PCM in the given layout
// without filling it. Use LockData to upload the content.
func (m *Mixer) CreateBuffer(rate, bits, channels, seconds int) (int, error) {
	if !m.initialized {
		return -1, ErrNotInitialized
	}

	format, ok := device.FormatFor(bits, channels)
	if !ok || rate <= 0 || seconds < 0 {
		return -1, fmt.Errorf("%w: %d Hz, %d bit, %d channels", ErrUnsupportedFormat, rate, bits, channels)
	}

	id, err := m.reserve(format, rate)
	if err != nil {
		return -1, err
	}

	b := &m.buffers[id]
	b.size = seconds * rate * format.FrameSize()
	m.memUsed += int64(b.size)

	return id, nil
}

// LockData replaces the content of buffer id. The buffer keeps the layout it
// was created with. Voices playing it are stopped first.
func (m *Mixer) LockData(id int, data []byte) error {
	b, err := m.buffer(id)
	if err != nil {
		return err
	}
	if len(data)%b.format.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes is not a whole number of %s frames", ErrUnsupportedFormat, len(data), b.format)
	}

	m.stopBuffer(id)

	return m.upload(id, data)
}

// Unload stops every voice playing buffer id and frees it. The id may be
// issued again by a later load.
func (m *Mixer) Unload(id int) error {
	if _, err := m.buffer(id); err != nil {
		return err
	}

	m.stopBuffer(id)
	m.release(id)

	return nil
}

// UnloadAll unloads every registered buffer.
func (m *Mixer) UnloadAll() {
	if !m.initialized {
		return
	}

	for i := range m.buffers {
		if m.buffers[i].handle != 0 {
			m.stopBuffer(i)
			m.release(i)
		}
	}
}

func (m *Mixer) stopBuffer(id int) {
	for i := range m.voices {
		if m.voices[i].buffer == id {
			m.stopVoice(i)
		}
	}
}

// BufferInfo describes the buffer registered under id.
func (m *Mixer) BufferInfo(id int) (BufferInfo, error) {
	b, err := m.buffer(id)
	if err != nil {
		return BufferInfo{}, err
	}

	info := BufferInfo{
		ID:            id,
		Format:        b.format,
		SampleRate:    b.rate,
		BitsPerSample: b.format.BitsPerSample(),
		Channels:      b.format.Channels(),
		Size:          b.size,
		Voice:         b.voice,
	}
	if avg := b.avgBytesPerSec(); avg > 0 {
		info.Seconds = b.size / avg
		info.Duration = time.Duration(int64(b.size) * int64(time.Second) / int64(avg))
	}

	return info, nil
}

// BufferSize is the byte size of buffer id.
func (m *Mixer) BufferSize(id int) (int, error) {
	b, err := m.buffer(id)
	if err != nil {
		return 0, err
	}

	return b.size, nil
}

// MemoryUsed is the number of PCM bytes held by live buffers.
func (m *Mixer) MemoryUsed() int64 { return m.memUsed }

func (m *Mixer) buffer(id int) (*soundBuffer, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}
	if id < 0 || id >= len(m.buffers) || m.buffers[id].handle == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBuffer, id)
	}

	return &m.buffers[id], nil
}
