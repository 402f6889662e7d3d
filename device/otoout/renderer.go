// SPDX-License-Identifier: EPL-2.0

package otoout

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audmix/utils"
)

// Renderer produces interleaved stereo float32 audio on demand.
type Renderer interface {
	Render(dst []float32) int
	SampleRate() int
}

// Encoding selects the sample format handed to the speaker.
type Encoding int

const (
	Float32 Encoding = iota
	Int16
)

// stream adapts a Renderer to io.Reader in the chosen encoding.
type stream struct {
	r   Renderer
	enc Encoding
	mix []float32
}

func (s *stream) bytesPerSample() int {
	if s.enc == Int16 {
		return 2
	}

	return 4
}

// Read always fills whole stereo frames and never returns an error; silence
// is rendered when nothing is playing.
func (s *stream) Read(p []byte) (int, error) {
	bps := s.bytesPerSample()
	samples := len(p) / bps
	samples -= samples % 2
	if samples == 0 {
		return 0, nil
	}

	if cap(s.mix) < samples {
		s.mix = make([]float32, samples)
	}
	mix := s.mix[:samples]
	s.r.Render(mix)

	for i, v := range mix {
		if s.enc == Int16 {
			binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(v)))
			continue
		}
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(clamp(v)))
	}

	return samples * bps, nil
}

func clamp(v float32) float32 {
	return max(-1, min(1, v))
}
