// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"encoding/binary"
	"io"
	"math"
	"slices"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/utils"
)

// Render mixes every playing source into dst as interleaved stereo at the
// device rate and returns the number of frames written. Sources that reach
// the end of a non-looping buffer move to device.Stopped.
func (d *Device) Render(dst []float32) int {
	frames := len(dst) / 2
	clear(dst)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || frames == 0 {
		return 0
	}

	ids := make([]device.SourceID, 0, len(d.sources))
	for id, s := range d.sources {
		if s.state == device.Playing {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		d.mix(d.sources[id], dst[:frames*2])
	}

	if d.capturing {
		d.capture(dst[:frames*2])
	}

	return frames
}

func (d *Device) mix(s *source, dst []float32) {
	b, ok := d.buffers[s.buf]
	if !ok || b.frameCount() == 0 {
		s.state = device.Stopped
		s.cursor = 0

		return
	}

	lg, rg := d.channelGains(s, b)
	pitch := math.Max(float64(s.pitch), minPitch)
	step := float64(b.rate) / float64(d.rate) * pitch * d.dopplerShift(s)
	n := b.frameCount()

	for i := 0; i < len(dst); i += 2 {
		idx := int(s.cursor)
		frac := float32(s.cursor - float64(idx))

		if b.channels == 1 {
			v := b.sample(idx, 0, frac, s.looping)
			dst[i] += v * lg
			dst[i+1] += v * rg
		} else {
			dst[i] += b.sample(idx, 0, frac, s.looping) * lg
			dst[i+1] += b.sample(idx, 1, frac, s.looping) * rg
		}

		s.cursor += step
		if s.cursor >= float64(n) {
			if !s.looping {
				s.state = device.Stopped
				s.cursor = 0

				return
			}
			s.cursor = math.Mod(s.cursor, float64(n))
		}
	}
}

// sample interpolates channel ch between frame idx and idx+1.
func (b *buffer) sample(idx, ch int, frac float32, wrap bool) float32 {
	at := func(k int) float32 {
		n := b.frameCount()
		if wrap {
			k = ((k % n) + n) % n
		} else {
			k = max(0, min(k, n-1))
		}

		return b.frames[k*b.channels+ch]
	}

	return utils.CubicInterpolate(at(idx-1), at(idx), at(idx+1), at(idx+2), frac)
}

// channelGains returns the left and right gain for s. Stereo buffers are
// not spatialized.
func (d *Device) channelGains(s *source, b *buffer) (float32, float32) {
	if b.channels != 1 {
		g := min(s.gain, s.maxGain)
		return g, g
	}

	rel := s.pos
	if !s.relative {
		rel = sub(s.pos, d.lis.pos)
	}
	dist := length(rel)

	g := min(s.gain*attenuation(dist, s.refDist, s.maxDist, s.rolloff), s.maxGain)

	var pan float32
	if dist > 0 {
		right := normalize(cross(d.lis.orient.Front, d.lis.orient.Up))
		pan = max(-1, min(1, dot(rel, right)/dist))
	}

	angle := float64(pan+1) * math.Pi / 4

	return g * float32(math.Cos(angle)), g * float32(math.Sin(angle))
}

// attenuation is the inverse distance clamped model.
func attenuation(dist, ref, maxDist, rolloff float32) float32 {
	if ref <= 0 {
		return 1
	}

	dist = max(dist, ref)
	if maxDist >= ref {
		dist = min(dist, maxDist)
	}

	return ref / (ref + rolloff*(dist-ref))
}

func (d *Device) dopplerShift(s *source) float64 {
	if d.dopplerFactor == 0 {
		return 1
	}

	// Vector from source to listener.
	sl := sub(d.lis.pos, s.pos)
	if s.relative {
		sl = device.Vec3{X: -s.pos.X, Y: -s.pos.Y, Z: -s.pos.Z}
	}
	dist := length(sl)
	if dist == 0 {
		return 1
	}

	limit := d.dopplerVel / d.dopplerFactor
	vls := min(dot(d.lis.vel, sl)/dist, limit)
	vss := min(dot(s.vel, sl)/dist, limit)

	num := d.dopplerVel - d.dopplerFactor*vls
	den := d.dopplerVel - d.dopplerFactor*vss
	if den <= 0 || num <= 0 {
		return 1
	}

	return float64(num / den)
}

func (d *Device) capture(mix []float32) {
	need := len(mix) * 2
	if len(d.captured)+need > d.captureLimit {
		return
	}

	for _, v := range mix {
		d.captured = binary.LittleEndian.AppendUint16(d.captured, uint16(utils.Float32ToInt16(v)))
	}
}

// StartCapture begins copying rendered audio into the loopback buffer.
func (d *Device) StartCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return device.ErrClosed
	}
	d.capturing = true

	return nil
}

// StopCapture stops copying. Already captured audio stays readable.
func (d *Device) StopCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.capturing = false

	return nil
}

// ReadCapture drains captured 16-bit stereo PCM. It returns io.EOF once
// capture is stopped and everything has been read.
func (d *Device) ReadCapture(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.captured) == 0 {
		if !d.capturing {
			return 0, io.EOF
		}
		return 0, nil
	}

	n := copy(p, d.captured)
	d.captured = d.captured[n:]

	return n, nil
}

func sub(a, b device.Vec3) device.Vec3 {
	return device.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func dot(a, b device.Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b device.Vec3) device.Vec3 {
	return device.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func length(v device.Vec3) float32 {
	return float32(math.Sqrt(float64(dot(v, v))))
}

func normalize(v device.Vec3) device.Vec3 {
	l := length(v)
	if l == 0 {
		return v
	}

	return device.Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}
