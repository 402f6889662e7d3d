// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
)

// Channels is fixed by go-mp3.
const Channels = 2

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	rate int
	raw  []byte
	// carry holds a trailing odd byte between reads
	carry []byte
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return Channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if need == 0 {
		return 0, nil
	}
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}

	raw := s.raw[:need]
	pre := copy(raw, s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(raw[pre:])
	n += pre

	if n%2 == 1 {
		s.carry = append(s.carry, raw[n-1])
		n--
	}

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:  dec,
		rate: dec.SampleRate(),
	}
}
