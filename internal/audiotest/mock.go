// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests. They
// satisfy audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame.
type Waveform func(frame, ch int) float32

// MockSource generates a fixed number of frames from a Waveform.
type MockSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform
	err      error
	closed   bool
}

func NewMockSource(rate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		rate:     rate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

func NewSilentSource(rate, channels, frames int) *MockSource {
	return NewMockSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

func NewConstantSource(rate, channels, frames int, v float32) *MockSource {
	return NewMockSource(rate, channels, frames, func(int, int) float32 { return v })
}

func NewSineSource(rate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// NewChannelSource emits the channel index scaled by step on every frame,
// which makes channel layout visible after processing.
func NewChannelSource(rate, channels, frames int, step float32) *MockSource {
	return NewMockSource(rate, channels, frames, func(_, ch int) float32 {
		return float32(ch) * step
	})
}

// FailAfter makes ReadSamples return err once the source is exhausted
// instead of io.EOF.
func (m *MockSource) FailAfter(err error) *MockSource {
	m.err = err
	return m
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 1024 * m.channels }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds to the first frame.
func (m *MockSource) Reset() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	end := m.err
	if end == nil {
		end = io.EOF
	}

	if m.pos >= m.frames {
		return 0, end
	}

	count := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.pos+f, ch)
		}
	}
	m.pos += count

	if m.pos >= m.frames {
		return count * m.channels, end
	}

	return count * m.channels, nil
}
