// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/device/soft"
	"github.com/ik5/audmix/gain"
)

// codecFor picks the decoder from the file extension.
func codecFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return audmix.CodecWAV, nil
	case ".ogg", ".oga":
		return audmix.CodecVorbis, nil
	case ".mp3":
		return audmix.CodecMP3, nil
	case ".aif", ".aiff":
		return audmix.CodecAIFF, nil
	}

	return "", fmt.Errorf("%s: %w", path, audmix.ErrUnsupportedFormat)
}

// newMixer opens a software device and a mixer on top of it.
func newMixer(opts ...soft.Option) (*audmix.Mixer, *soft.Device, error) {
	dev := soft.New(cfg.SampleRate, opts...)

	m := audmix.New(cfg, audmix.WithLogger(logger))
	if err := m.Init(dev); err != nil {
		return nil, nil, err
	}

	return m, dev, nil
}

// loadFiles loads every path and returns the buffer ids in order.
func loadFiles(m *audmix.Mixer, paths []string) ([]int, error) {
	ids := make([]int, 0, len(paths))
	for _, path := range paths {
		id, err := loadFile(m, path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func loadFile(m *audmix.Mixer, path string) (int, error) {
	codec, err := codecFor(path)
	if err != nil {
		return -1, err
	}

	f, err := os.Open(path)
	if err != nil {
		return -1, err
	}
	defer f.Close()

	id, err := m.LoadReader(f, codec)
	if err != nil {
		return -1, fmt.Errorf("loading %s: %w", path, err)
	}

	logger.WithField("file", path).WithField("buffer", id).Debug("loaded")

	return id, nil
}

// parseVec parses "x,y,z".
func parseVec(s string) (device.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return device.Vec3{}, fmt.Errorf("position %q: want x,y,z", s)
	}

	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return device.Vec3{}, fmt.Errorf("position %q: %w", s, err)
		}
		v[i] = float32(f)
	}

	return device.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// voiceFlags are the play settings shared by play and render.
type voiceFlags struct {
	volume   int
	pan      int
	priority string
	loop     bool
	pos      string
}

func (f *voiceFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&f.volume, "volume", 100, "volume in percent (0-100)")
	flags.IntVar(&f.pan, "pan", 0, "pan from -1500 (left) to 1500 (right)")
	flags.StringVar(&f.priority, "priority", audmix.MustPlay.String(), "must-play, limit-one, limit-two or limit-three")
	flags.BoolVar(&f.loop, "loop", false, "loop every file")
	flags.StringVar(&f.pos, "pos", "", "3D position x,y,z (enables 3D)")
}

// start plays every buffer with the flag settings. Each file gets its own
// logical sound id.
func (f *voiceFlags) start(m *audmix.Mixer, ids []int) error {
	prio, err := audmix.ParsePriority(f.priority)
	if err != nil {
		return err
	}
	volume := gain.ToInternal(f.volume)

	var pos *device.Vec3
	if f.pos != "" {
		p, err := parseVec(f.pos)
		if err != nil {
			return err
		}
		pos = &p
		if err := m.Init3D(); err != nil {
			return err
		}
	}

	for i, id := range ids {
		var sig int
		if pos != nil {
			sig, err = m.Play3D(audmix.Play3DRequest{
				Buffer:          id,
				SoundID:         i,
				Priority:        prio,
				Position:        pos,
				MinDistance:     1,
				MaxDistance:     1000,
				MaxVolume:       volume,
				EstimatedVolume: volume,
				Looping:         f.loop,
			})
		} else {
			sig, err = m.Play(audmix.PlayRequest{
				Buffer:   id,
				SoundID:  i,
				Priority: prio,
				Volume:   volume,
				Pan:      f.pan,
				Looping:  f.loop,
			})
		}
		if err != nil {
			return fmt.Errorf("playing buffer %d: %w", id, err)
		}

		logger.WithField("buffer", id).WithField("signature", sig).Info("playing")
	}

	return nil
}
