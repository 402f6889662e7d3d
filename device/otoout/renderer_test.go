// SPDX-License-Identifier: EPL-2.0

package otoout

import (
	"encoding/binary"
	"math"
	"testing"
)

type constRenderer struct {
	v     float32
	calls int
}

func (c *constRenderer) SampleRate() int { return 8000 }

func (c *constRenderer) Render(dst []float32) int {
	c.calls++
	for i := range dst {
		dst[i] = c.v
	}

	return len(dst) / 2
}

func TestStreamFloat32(t *testing.T) {
	t.Parallel()

	s := &stream{r: &constRenderer{v: 0.25}, enc: Float32}

	p := make([]byte, 19)
	n, err := s.Read(p)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	// 19 bytes hold four float32 samples, two whole stereo frames.
	if n != 16 {
		t.Fatalf("Read() = %d, want 16", n)
	}

	if got := math.Float32frombits(binary.LittleEndian.Uint32(p[4:])); got != 0.25 {
		t.Errorf("sample = %v, want 0.25", got)
	}
}

func TestStreamInt16Clamps(t *testing.T) {
	t.Parallel()

	s := &stream{r: &constRenderer{v: 3}, enc: Int16}

	p := make([]byte, 8)
	n, _ := s.Read(p)
	if n != 8 {
		t.Fatalf("Read() = %d, want 8", n)
	}

	if got := int16(binary.LittleEndian.Uint16(p)); got != math.MaxInt16 {
		t.Errorf("sample = %d, want %d", got, math.MaxInt16)
	}
}

func TestStreamTooSmall(t *testing.T) {
	t.Parallel()

	r := &constRenderer{}
	s := &stream{r: r, enc: Float32}

	if n, err := s.Read(make([]byte, 7)); n != 0 || err != nil {
		t.Errorf("Read() = %d, %v, want 0, nil", n, err)
	}
	if r.calls != 0 {
		t.Errorf("Render called %d times, want 0", r.calls)
	}
}
