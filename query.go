// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/gain"
)

// channel returns voice ch after validating the index.
func (m *Mixer) channel(ch int) (*voice, error) {
	if !m.initialized {
		return nil, ErrNotInitialized
	}
	if ch < 0 || ch >= len(m.voices) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}

	return &m.voices[ch], nil
}

// SetVolume changes the gain of channel ch. The new volume also becomes the
// voice's weight for eviction.
func (m *Mixer) SetVolume(ch, volume int) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}

	v.volume = volume
	if v.handle == 0 {
		return nil
	}

	return m.check("SetGain", m.dev.SetGain(v.handle, gain.ToLinearAmplitude(volume)), ch, v.buffer)
}

// SetPan moves a playing 2D voice. Stopped voices are left alone.
func (m *Mixer) SetPan(ch, pan int) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if !m.playing(ch) {
		return nil
	}

	x, y, z := gain.PanPosition(pan)

	return m.check("SetPosition", m.dev.SetPosition(v.handle, device.Vec3{X: x, Y: y, Z: z}), ch, v.buffer)
}

// Pitch returns the pitch of channel ch in pitch units.
func (m *Mixer) Pitch(ch int) (int, error) {
	v, err := m.channel(ch)
	if err != nil {
		return 0, err
	}
	if v.handle == 0 {
		return 0, fmt.Errorf("%w: %d has no source", ErrInvalidChannel, ch)
	}

	mult, err := m.dev.Pitch(v.handle)
	if err != nil {
		return 0, m.check("Pitch", err, ch, v.buffer)
	}

	return gain.MultiplierToPitch(mult), nil
}

// SetPitch changes the pitch of a playing voice. pitch is clamped to
// [gain.MinPitch, gain.MaxPitch].
func (m *Mixer) SetPitch(ch, pitch int) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if !m.playing(ch) {
		return nil
	}

	return m.check("SetPitch", m.dev.SetPitch(v.handle, gain.PitchToMultiplier(pitch)), ch, v.buffer)
}

// SetLooping toggles looping on the channel's voice.
func (m *Mixer) SetLooping(ch int, loop bool) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if v.handle == 0 {
		return nil
	}

	if err := m.check("SetLooping", m.dev.SetLooping(v.handle, loop), ch, v.buffer); err != nil {
		return err
	}
	v.looping = loop

	return nil
}

// IsPlaying reports whether channel ch is natively playing.
func (m *Mixer) IsPlaying(ch int) bool {
	if _, err := m.channel(ch); err != nil {
		return false
	}

	return m.playing(ch)
}

// StopChannel stops playback on ch. The voice keeps its binding until the
// allocator or a signature lookup reclaims it.
func (m *Mixer) StopChannel(ch int) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if v.handle == 0 {
		return nil
	}

	return m.check("Stop", m.dev.Stop(v.handle), ch, v.buffer)
}

// StopAll returns every voice to idle.
func (m *Mixer) StopAll() {
	if !m.initialized {
		return
	}

	for i := range m.voices {
		m.stopVoice(i)
	}
}

// PlayPosition is the playback cursor of ch in bytes.
func (m *Mixer) PlayPosition(ch int) (int, error) {
	v, err := m.channel(ch)
	if err != nil {
		return 0, err
	}
	if !v.bound() {
		return 0, nil
	}

	off, err := m.dev.ByteOffset(v.handle)
	if err != nil {
		return 0, m.check("ByteOffset", err, ch, v.buffer)
	}

	return off, nil
}

// SetPlayPosition seeks the channel's voice to a byte offset in its buffer.
func (m *Mixer) SetPlayPosition(ch, offset int) error {
	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if !v.bound() {
		return fmt.Errorf("%w: %d is idle", ErrInvalidChannel, ch)
	}

	return m.check("SetByteOffset", m.dev.SetByteOffset(v.handle, offset), ch, v.buffer)
}

// ChannelSize is the byte size of the buffer bound to ch, 0 when idle.
func (m *Mixer) ChannelSize(ch int) (int, error) {
	v, err := m.channel(ch)
	if err != nil {
		return 0, err
	}
	if !v.bound() {
		return 0, nil
	}

	return m.buffers[v.buffer].size, nil
}

// SoundID is the logical sound id playing on ch, -1 when idle or invalid.
func (m *Mixer) SoundID(ch int) int {
	v, err := m.channel(ch)
	if err != nil {
		return -1
	}

	return v.soundID
}

// Signature is the signature of the play bound to ch, -1 when idle.
func (m *Mixer) Signature(ch int) int {
	v, err := m.channel(ch)
	if err != nil {
		return -1
	}

	return v.sig
}

// ActiveCount is the number of bound voices that are natively playing.
func (m *Mixer) ActiveCount() int {
	if !m.initialized {
		return 0
	}

	n := 0
	for i := range m.voices {
		if m.voices[i].bound() && m.playing(i) {
			n++
		}
	}

	return n
}

// PoolSize is the number of voices the device granted at Init.
func (m *Mixer) PoolSize() int { return len(m.voices) }
