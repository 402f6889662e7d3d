// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   io.Reader
	}{
		{name: "empty", in: bytes.NewReader(nil)},
		{name: "wav header", in: bytes.NewReader([]byte("RIFF\x24\x00\x00\x00WAVEfmt "))},
		{name: "stream", in: struct{ io.Reader }{bytes.NewReader([]byte("FORM"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(tt.in); !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotAiffFile)
			}
		})
	}
}

func TestCheckDepth(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24, 32} {
		if err := checkDepth(bits); err != nil {
			t.Errorf("checkDepth(%d) error = %v", bits, err)
		}
	}

	for _, bits := range []int{0, 4, 12, 64} {
		if err := checkDepth(bits); !errors.Is(err, ErrUnsupportedBitDepth) {
			t.Errorf("checkDepth(%d) error = %v, want %v", bits, err, ErrUnsupportedBitDepth)
		}
	}
}
