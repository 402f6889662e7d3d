// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/gain"
)

// PlayRequest asks for a buffer to be played on a 2D voice.
type PlayRequest struct {
	Buffer int
	// SoundID groups instances for the priority's instance limit. Use -1
	// for sounds that are not limited.
	SoundID  int
	Priority Priority
	// Volume in internal units, see gain.ToInternal.
	Volume int
	// Pan from -gain.MaxPan (left) to gain.MaxPan (right).
	Pan     int
	Looping bool
	// VoiceMessage enables the wraparound watchdog in DoFrame.
	VoiceMessage bool
}

// Play3DRequest asks for a buffer to be played as a positioned source.
type Play3DRequest struct {
	Buffer   int
	SoundID  int
	Priority Priority

	// Position is in world space, not relative to the listener.
	Position    *device.Vec3
	Velocity    *device.Vec3
	MinDistance float32
	MaxDistance float32

	// MaxVolume caps the gain distance attenuation may reach.
	MaxVolume int
	// EstimatedVolume is the volume at the listener, used for eviction.
	EstimatedVolume int
	Looping         bool
}

// Play starts req.Buffer on a voice and returns the play's signature.
// ErrNoVoiceAvailable means the sound was dropped by the allocator.
func (m *Mixer) Play(req PlayRequest) (int, error) {
	if _, err := m.buffer(req.Buffer); err != nil {
		return -1, err
	}

	ch, err := m.acquireVoice(req.Priority, req.SoundID, req.Volume)
	if err != nil {
		return -1, err
	}
	h := m.voices[ch].handle

	if !m.enabled3D {
		m.resetListener()
	}

	x, y, z := gain.PanPosition(req.Pan)
	m.warn("SetPosition", m.dev.SetPosition(h, device.Vec3{X: x, Y: y, Z: z}), ch, req.Buffer)
	m.warn("SetVelocity", m.dev.SetVelocity(h, device.Vec3{}), ch, req.Buffer)
	m.warn("SetPitch", m.dev.SetPitch(h, 1), ch, req.Buffer)
	m.warn("SetRolloff", m.dev.SetRolloff(h, 0), ch, req.Buffer)
	m.warn("SetMaxGain", m.dev.SetMaxGain(h, 1), ch, req.Buffer)
	m.warn("SetGain", m.dev.SetGain(h, gain.ToLinearAmplitude(req.Volume)), ch, req.Buffer)

	if err := m.start(ch, req.Buffer, req.Looping); err != nil {
		return -1, err
	}

	return m.stamp(ch, req.Buffer, req.SoundID, req.Priority, req.Volume, req.Looping, req.VoiceMessage), nil
}

// Play3D starts req.Buffer as a positioned source and returns the play's
// signature. Without 3D initialized the voice plays unpositioned.
func (m *Mixer) Play3D(req Play3DRequest) (int, error) {
	if _, err := m.buffer(req.Buffer); err != nil {
		return -1, err
	}

	ch, err := m.acquireVoice(req.Priority, req.SoundID, req.EstimatedVolume)
	if err != nil {
		return -1, err
	}
	h := m.voices[ch].handle

	m.warn("SetPitch", m.dev.SetPitch(h, 1), ch, req.Buffer)
	if err := m.UpdateSpatial(ch, req.MinDistance, req.MaxDistance, req.Position, req.Velocity); err != nil {
		return -1, err
	}
	m.warn("SetGain", m.dev.SetGain(h, gain.ToLinearAmplitude(req.EstimatedVolume)), ch, req.Buffer)
	m.warn("SetMaxGain", m.dev.SetMaxGain(h, gain.ToLinearAmplitude(req.MaxVolume)), ch, req.Buffer)

	if err := m.start(ch, req.Buffer, req.Looping); err != nil {
		return -1, err
	}

	return m.stamp(ch, req.Buffer, req.SoundID, req.Priority, req.EstimatedVolume, req.Looping, false), nil
}

// start binds buffer to voice ch and plays it. On failure the voice is left
// idle with nothing attached.
func (m *Mixer) start(ch, buf int, looping bool) error {
	h := m.voices[ch].handle

	if m.playing(ch) {
		if err := m.check("Stop", m.dev.Stop(h), ch, buf); err != nil {
			return err
		}
	}
	if err := m.check("SetBuffer", m.dev.SetBuffer(h, m.buffers[buf].handle), ch, buf); err != nil {
		return err
	}

	err := errors.Join(
		m.check("SetRelative", m.dev.SetRelative(h, false), ch, buf),
		m.check("SetLooping", m.dev.SetLooping(h, looping), ch, buf),
	)
	if err == nil {
		err = m.check("Play", m.dev.Play(h), ch, buf)
	}
	if err != nil {
		m.warn("SetBuffer", m.dev.SetBuffer(h, 0), ch, buf)
		return err
	}

	return nil
}

// stamp records a started play on voice ch and returns its signature.
func (m *Mixer) stamp(ch, buf, soundID int, p Priority, volume int, looping, voiceMsg bool) int {
	v := &m.voices[ch]
	v.buffer = buf
	v.soundID = soundID
	v.sig = m.nextSignature()
	v.volume = volume
	v.looping = looping
	v.priority = p
	v.voiceMsg = voiceMsg
	v.lastCursor = 0

	m.buffers[buf].voice = ch

	m.log.WithFields(logrus.Fields{
		"voice":     ch,
		"buffer":    buf,
		"sound_id":  soundID,
		"signature": v.sig,
		"priority":  p.String(),
	}).Debug("voice started")

	return v.sig
}

// PlayEasy plays buf once on any voice at volume.
func (m *Mixer) PlayEasy(buf, volume int) error {
	_, err := m.Play(PlayRequest{
		Buffer:   buf,
		SoundID:  -1,
		Priority: MustPlay,
		Volume:   volume,
	})

	return err
}

// StopEasy stops every voice playing buf.
func (m *Mixer) StopEasy(buf int) error {
	if _, err := m.buffer(buf); err != nil {
		return err
	}

	m.stopBuffer(buf)

	return nil
}

// FindBySignature returns the channel still playing the play that returned
// sig. Voices that finished since are reclaimed on the way.
func (m *Mixer) FindBySignature(sig int) (int, error) {
	if !m.initialized {
		return -1, ErrNotInitialized
	}
	if sig <= 0 {
		return -1, fmt.Errorf("%w: %d", ErrNotFound, sig)
	}

	for i := range m.voices {
		v := &m.voices[i]
		if v.sig != sig || !v.bound() {
			continue
		}
		if m.playing(i) {
			return i, nil
		}
		m.stopVoice(i)
	}

	return -1, fmt.Errorf("%w: %d", ErrNotFound, sig)
}

// IsSignatureActive reports whether the voice stamped with sig is still playing.
func (m *Mixer) IsSignatureActive(sig int) bool {
	_, err := m.FindBySignature(sig)
	return err == nil
}
