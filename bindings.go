// SPDX-License-Identifier: EPL-2.0

package audmix

import "fmt"

// CheckBindings verifies the buffer and voice cross references and returns
// the first inconsistency found.
func (m *Mixer) CheckBindings() error {
	for id := range m.buffers {
		b := &m.buffers[id]
		if b.voice == -1 {
			continue
		}
		if b.handle == 0 {
			return fmt.Errorf("free buffer %d bound to voice %d", id, b.voice)
		}
		if b.voice < 0 || b.voice >= len(m.voices) {
			return fmt.Errorf("buffer %d bound to voice %d out of range", id, b.voice)
		}
		if got := m.voices[b.voice].buffer; got != id {
			return fmt.Errorf("buffer %d bound to voice %d which plays buffer %d", id, b.voice, got)
		}
	}

	for ch := range m.voices {
		v := &m.voices[ch]
		if v.handle == 0 && (v.buffer != -1 || v.sig != -1) {
			return fmt.Errorf("unallocated voice %d has buffer %d signature %d", ch, v.buffer, v.sig)
		}
		if !v.bound() {
			continue
		}
		if v.buffer < 0 || v.buffer >= len(m.buffers) || m.buffers[v.buffer].handle == 0 {
			return fmt.Errorf("voice %d plays missing buffer %d", ch, v.buffer)
		}
		if v.sig <= 0 {
			return fmt.Errorf("voice %d is bound with signature %d", ch, v.sig)
		}
	}

	return nil
}
