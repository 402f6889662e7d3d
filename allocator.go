// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// acquireVoice picks a voice for a new play of soundID at volume, evicting
// an existing one when the instance limit of p is reached or the pool is
// full. A soundID of -1 is never counted against a limit.
func (m *Mixer) acquireVoice(p Priority, soundID, volume int) (int, error) {
	var (
		free            = -1
		instances       int
		sameLow, anyLow = -1, -1
		sameVol, anyVol int
	)

	for i := range m.voices {
		v := &m.voices[i]

		if v.bound() && !m.playing(i) {
			m.stopVoice(i)
		}
		if !v.bound() {
			if free == -1 {
				free = i
			}
			continue
		}

		if soundID != -1 && v.soundID == soundID {
			instances++
			if !v.looping && (sameLow == -1 || v.volume < sameVol) {
				sameLow, sameVol = i, v.volume
			}
		}
		if !v.looping && (anyLow == -1 || v.volume < anyVol) {
			anyLow, anyVol = i, v.volume
		}
	}

	ch := free
	switch limit := p.limit(); {
	case limit > 0 && instances >= limit:
		if sameLow == -1 || sameVol > volume {
			return -1, ErrNoVoiceAvailable
		}
		m.evict(sameLow, "instance limit")
		ch = sameLow

	case free == -1:
		if p != MustPlay || anyLow == -1 || anyVol > volume {
			return -1, ErrNoVoiceAvailable
		}
		m.evict(anyLow, "pool full")
		ch = anyLow
	}

	v := &m.voices[ch]
	if v.handle == 0 {
		id, err := m.dev.GenSource()
		if err != nil {
			return -1, errors.Join(ErrAllocationFailed, m.check("GenSource", err, ch, -1))
		}
		v.handle = id
	}

	return ch, nil
}

func (m *Mixer) evict(ch int, reason string) {
	v := &m.voices[ch]
	m.log.WithFields(logrus.Fields{
		"voice":    ch,
		"sound_id": v.soundID,
		"volume":   v.volume,
		"reason":   reason,
	}).Debug("evicting voice")

	m.stopVoice(ch)
}
