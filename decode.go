// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// DefaultDecoders registers the wav, ogg, mp3 and aiff decoders under their
// Codec names.
func DefaultDecoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(CodecWAV, wav.Decoder{})
	r.Register(CodecVorbis, vorbis.Decoder{})
	r.Register(CodecMP3, mp3.Decoder{})
	r.Register(CodecAIFF, aiff.Decoder{})

	return r
}

// LoadReader decodes a container stream and commits it like Load.
func (m *Mixer) LoadReader(r io.Reader, codec string) (int, error) {
	if !m.initialized {
		return -1, ErrNotInitialized
	}

	pcm, rate, channels, err := m.decode(codec, r)
	if err != nil {
		return -1, err
	}

	return m.Load(pcm, SoundInfo{
		Codec:         CodecPCM,
		SampleRate:    rate,
		BitsPerSample: 16,
		Channels:      channels,
	})
}

// decode turns a container into 16-bit little endian PCM with at most two
// channels, resampled to Config.LoadSampleRate when set.
func (m *Mixer) decode(codec string, r io.Reader) (pcm []byte, rate, channels int, err error) {
	src, err := m.decoders.Decode(codec, r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer src.Close()

	if src.Channels() > 2 {
		src = audio.NewDownmix(src)
	}
	if want := m.cfg.LoadSampleRate; want > 0 && want != src.SampleRate() {
		src = audio.NewResampler(src, want)
	}

	samples, err := audio.ReadPCM16(src, src.BufSize())
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %s: %w", ErrDecode, codec, err)
	}
	if len(samples) == 0 {
		return nil, 0, 0, fmt.Errorf("%w: %s: no audio", ErrDecode, codec)
	}

	return audio.PCM16Bytes(samples), src.SampleRate(), src.Channels(), nil
}
