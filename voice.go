// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"

	"github.com/ik5/audmix/device"
)

// Priority limits how many instances of one logical sound may play at once
// and whether the request may evict another sound when the pool is full.
type Priority int

const (
	// MustPlay has no instance limit and may evict the quietest voice.
	MustPlay Priority = iota
	LimitOne
	LimitTwo
	LimitThree
)

// limit returns the instance limit, 0 for unlimited.
func (p Priority) limit() int {
	switch p {
	case LimitOne:
		return 1
	case LimitTwo:
		return 2
	case LimitThree:
		return 3
	default:
		return 0
	}
}

func (p Priority) String() string {
	switch p {
	case MustPlay:
		return "must-play"
	case LimitOne:
		return "limit-one"
	case LimitTwo:
		return "limit-two"
	case LimitThree:
		return "limit-three"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority accepts the names returned by Priority.String.
func ParsePriority(s string) (Priority, error) {
	for p := MustPlay; p <= LimitThree; p++ {
		if p.String() == s {
			return p, nil
		}
	}

	return MustPlay, fmt.Errorf("unknown priority %q", s)
}

// voice is one slot of the pool. A zero handle means no native source was
// generated yet.
type voice struct {
	handle device.SourceID

	buffer  int
	soundID int
	sig     int

	volume     int
	looping    bool
	priority   Priority
	voiceMsg   bool
	lastCursor int
}

func idleVoice() voice {
	return voice{buffer: -1, soundID: -1, sig: -1}
}

func (v *voice) bound() bool { return v.buffer != -1 }

// playing reports whether voice ch is natively playing. A failed query
// counts as stopped.
func (m *Mixer) playing(ch int) bool {
	v := &m.voices[ch]
	if v.handle == 0 {
		return false
	}

	state, err := m.dev.SourceState(v.handle)
	if err != nil {
		m.warn("SourceState", err, ch, v.buffer)
		return false
	}

	return state == device.Playing
}

// StopVoice stops channel ch, detaches its buffer and returns it to idle.
// Idle voices are left alone.
func (m *Mixer) StopVoice(ch int) error {
	if !m.initialized {
		return ErrNotInitialized
	}
	if ch < 0 || ch >= len(m.voices) {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}

	m.stopVoice(ch)

	return nil
}

func (m *Mixer) stopVoice(ch int) {
	v := &m.voices[ch]
	if !v.bound() {
		return
	}

	if v.handle != 0 {
		m.warn("Stop", m.dev.Stop(v.handle), ch, v.buffer)
		m.warn("SetBuffer", m.dev.SetBuffer(v.handle, 0), ch, v.buffer)
	}

	m.unbind(ch)
}

// unbind clears the voice's play state and repoints the buffer's bound
// voice to any other voice still playing it.
func (m *Mixer) unbind(ch int) {
	v := &m.voices[ch]
	buf := v.buffer

	v.buffer = -1
	v.soundID = -1
	v.sig = -1
	v.looping = false
	v.voiceMsg = false
	v.lastCursor = 0

	if buf < 0 || buf >= len(m.buffers) || m.buffers[buf].voice != ch {
		return
	}

	m.buffers[buf].voice = -1
	for i := range m.voices {
		if m.voices[i].buffer == buf {
			m.buffers[buf].voice = i
			break
		}
	}
}

// nextSignature returns the next play signature. It wraps from sigLimit
// back to 1 and never yields 0 or -1.
func (m *Mixer) nextSignature() int {
	m.nextSig++
	if m.nextSig <= 0 || m.nextSig > m.sigLimit {
		m.nextSig = 1
	}

	return m.nextSig
}
