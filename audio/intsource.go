// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntReader is the PCM access shared by the go-audio wav and aiff decoders.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// IntSource adapts an IntReader to Source, normalizing integer samples of
// the given bit depth to [-1, 1].
type IntSource struct {
	r        IntReader
	rate     int
	channels int
	offset   float32
	scale    float32
	buf      *goaudio.IntBuffer
}

// NewIntSource wraps r. unsigned8 marks 8-bit data stored as 0..255, the
// WAV convention; AIFF stores 8-bit samples signed.
func NewIntSource(r IntReader, rate, channels, bitDepth int, unsigned8 bool) *IntSource {
	s := &IntSource{
		r:        r,
		rate:     rate,
		channels: channels,
		scale:    float32(int64(1) << (bitDepth - 1)),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			SourceBitDepth: bitDepth,
		},
	}
	if bitDepth == 8 && unsigned8 {
		s.offset = 128
	}

	return s
}

func (s *IntSource) SampleRate() int { return s.rate }
func (s *IntSource) Channels() int   { return s.channels }
func (s *IntSource) Close() error    { return nil }

func (s *IntSource) BufSize() int {
	return max(cap(s.buf.Data), 1024*s.channels)
}

func (s *IntSource) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%max(s.channels, 1)
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < want {
		s.buf.Data = make([]int, want)
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.r.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = (float32(v) - s.offset) / s.scale
	}

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}
