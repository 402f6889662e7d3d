// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// fakeMP3 serves PCM bytes in fixed size pieces, like the real decoder
// does frame by frame.
type fakeMP3 struct {
	pcm   []byte
	piece int
	err   error
}

func (f *fakeMP3) SampleRate() int { return 44100 }

func (f *fakeMP3) Read(p []byte) (int, error) {
	if len(f.pcm) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		return 0, io.EOF
	}

	n := copy(p[:min(len(p), f.piece)], f.pcm)
	f.pcm = f.pcm[n:]

	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}

	return out
}

func TestSourceReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&fakeMP3{pcm: pcmBytes(16384, -16384, 0, 8192), piece: 3})
	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("source = %d Hz, %d channels", src.SampleRate(), src.Channels())
	}

	var got []float32
	buf := make([]float32, 4)
	for range 10 {
		n, err := src.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0.5, -0.5, 0, 0.25}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSourceError(t *testing.T) {
	t.Parallel()

	errCorrupt := errors.New("corrupt frame")
	src := newSource(&fakeMP3{err: errCorrupt})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, errCorrupt) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errCorrupt)
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("this is not mp3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}
