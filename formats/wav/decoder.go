// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"time"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
)

const formatPCM = 1

// Info describes a WAV file's PCM layout.
type Info struct {
	SampleRate     int
	Channels       int
	BitDepth       int
	AvgBytesPerSec int
	Duration       time.Duration
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seeker(r)
	if err != nil {
		return nil, err
	}

	dec, info, err := open(rs)
	if err != nil {
		return nil, err
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPCMData, err)
	}

	return audio.NewIntSource(dec, info.SampleRate, info.Channels, info.BitDepth, true), nil
}

// Probe reads the header of r without decoding samples.
func Probe(r io.ReadSeeker) (Info, error) {
	_, info, err := open(r)
	return info, err
}

func open(rs io.ReadSeeker) (*gowav.Decoder, Info, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, Info{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, Info{}, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, Info{}, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, Info{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	dur, err := dec.Duration()
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w", err)
	}

	return dec, Info{
		SampleRate:     int(dec.SampleRate),
		Channels:       int(dec.NumChans),
		BitDepth:       int(dec.BitDepth),
		AvgBytesPerSec: int(dec.AvgBytesPerSec),
		Duration:       dur,
	}, nil
}

// seeker returns r as a ReadSeeker, buffering it in memory when needed.
func seeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return bytes.NewReader(data), nil
}
