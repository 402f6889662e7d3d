// SPDX-License-Identifier: EPL-2.0

package audmix

import "github.com/sirupsen/logrus"

// DoFrame runs the per-frame voice message watchdog: a voice message whose
// cursor moved backwards has wrapped around and is stopped.
func (m *Mixer) DoFrame() {
	if !m.initialized {
		return
	}

	for i := range m.voices {
		v := &m.voices[i]
		if !v.voiceMsg || !v.bound() || v.handle == 0 {
			continue
		}

		cur, err := m.dev.ByteOffset(v.handle)
		if err != nil {
			m.warn("ByteOffset", err, i, v.buffer)
			continue
		}

		// A zero cursor leaves the last position untouched.
		if cur == 0 {
			continue
		}

		if cur < v.lastCursor {
			m.log.WithFields(logrus.Fields{
				"voice":  i,
				"cursor": cur,
				"last":   v.lastCursor,
			}).Debug("voice message wrapped, stopping")
			m.stopVoice(i)

			continue
		}

		v.lastCursor = cur
	}
}
