// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"math"

	"github.com/ik5/audmix/device"
)

func (d *Device) GenSource() (device.SourceID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, device.ErrClosed
	}
	if len(d.sources) >= d.maxSources {
		return 0, device.ErrOutOfSources
	}

	d.nextSource++
	id := d.nextSource
	d.sources[id] = newSource()

	return id, nil
}

func (d *Device) DeleteSource(id device.SourceID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return err
	}

	d.detach(s)
	delete(d.sources, id)

	return nil
}

func (d *Device) detach(s *source) {
	if b, ok := d.buffers[s.buf]; ok {
		b.users--
	}
	s.buf = 0
}

func (d *Device) SourceState(id device.SourceID) (device.State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return device.Stopped, err
	}

	return s.state, nil
}

// Play starts the source. A stopped or playing source restarts from the
// beginning; an initial one starts at its byte offset. A source without
// a buffer stops immediately.
func (d *Device) Play(id device.SourceID) error {
	return d.withSource(id, func(s *source) error {
		if s.buf == 0 {
			s.state = device.Stopped
			return nil
		}
		if s.state == device.Playing || s.state == device.Stopped {
			s.cursor = 0
		}
		s.state = device.Playing

		return nil
	})
}

func (d *Device) Stop(id device.SourceID) error {
	return d.withSource(id, func(s *source) error {
		if s.state != device.Initial {
			s.state = device.Stopped
		}
		s.cursor = 0

		return nil
	})
}

func (d *Device) SetBuffer(id device.SourceID, buf device.BufferID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return err
	}
	if s.state == device.Playing || s.state == device.Paused {
		return device.ErrInvalidOperation
	}

	var b *buffer
	if buf != 0 {
		var ok bool
		if b, ok = d.buffers[buf]; !ok {
			return device.ErrInvalidBuffer
		}
	}

	d.detach(s)
	if b != nil {
		b.users++
	}
	s.buf = buf
	s.state = device.Initial
	s.cursor = 0

	return nil
}

func nonNegative(v float32) error {
	if v < 0 || math.IsNaN(float64(v)) {
		return device.ErrInvalidValue
	}

	return nil
}

func (d *Device) SetGain(id device.SourceID, gain float32) error {
	if err := nonNegative(gain); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.gain = gain
		return nil
	})
}

func (d *Device) SetMaxGain(id device.SourceID, gain float32) error {
	if err := nonNegative(gain); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.maxGain = gain
		return nil
	})
}

func (d *Device) SetPitch(id device.SourceID, pitch float32) error {
	if err := nonNegative(pitch); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.pitch = pitch
		return nil
	})
}

func (d *Device) Pitch(id device.SourceID) (float32, error) {
	var p float32
	err := d.withSource(id, func(s *source) error {
		p = s.pitch
		return nil
	})

	return p, err
}

func (d *Device) SetLooping(id device.SourceID, loop bool) error {
	return d.withSource(id, func(s *source) error {
		s.looping = loop
		return nil
	})
}

func (d *Device) SetRelative(id device.SourceID, relative bool) error {
	return d.withSource(id, func(s *source) error {
		s.relative = relative
		return nil
	})
}

func (d *Device) SetPosition(id device.SourceID, pos device.Vec3) error {
	return d.withSource(id, func(s *source) error {
		s.pos = pos
		return nil
	})
}

func (d *Device) SetVelocity(id device.SourceID, vel device.Vec3) error {
	return d.withSource(id, func(s *source) error {
		s.vel = vel
		return nil
	})
}

func (d *Device) SetReferenceDistance(id device.SourceID, dist float32) error {
	if err := nonNegative(dist); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.refDist = dist
		return nil
	})
}

func (d *Device) SetMaxDistance(id device.SourceID, dist float32) error {
	if err := nonNegative(dist); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.maxDist = dist
		return nil
	})
}

func (d *Device) SetRolloff(id device.SourceID, factor float32) error {
	if err := nonNegative(factor); err != nil {
		return err
	}

	return d.withSource(id, func(s *source) error {
		s.rolloff = factor
		return nil
	})
}

func (d *Device) ByteOffset(id device.SourceID) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return 0, err
	}

	b, ok := d.buffers[s.buf]
	if !ok {
		return 0, nil
	}

	return int(s.cursor) * b.format.FrameSize(), nil
}

func (d *Device) SetByteOffset(id device.SourceID, offset int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.source(id)
	if err != nil {
		return err
	}

	b, ok := d.buffers[s.buf]
	if !ok || offset < 0 {
		return device.ErrInvalidValue
	}

	frame := offset / b.format.FrameSize()
	if frame >= b.frameCount() {
		return device.ErrInvalidValue
	}
	s.cursor = float64(frame)

	return nil
}
