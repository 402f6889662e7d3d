// SPDX-License-Identifier: EPL-2.0

package soft

import "github.com/ik5/audmix/device"

func (d *Device) SetListenerPosition(pos device.Vec3) error {
	return d.withListener(func(l *listener) { l.pos = pos })
}

func (d *Device) SetListenerVelocity(vel device.Vec3) error {
	return d.withListener(func(l *listener) { l.vel = vel })
}

func (d *Device) SetListenerOrientation(o device.Orientation) error {
	if length(o.Front) == 0 || length(o.Up) == 0 {
		return device.ErrInvalidValue
	}

	return d.withListener(func(l *listener) { l.orient = o })
}

func (d *Device) SetDopplerVelocity(v float32) error {
	if v <= 0 {
		return device.ErrInvalidValue
	}

	return d.withListener(func(*listener) { d.dopplerVel = v })
}

func (d *Device) SetDopplerFactor(f float32) error {
	if err := nonNegative(f); err != nil {
		return err
	}

	return d.withListener(func(*listener) { d.dopplerFactor = f })
}

func (d *Device) withListener(fn func(*listener)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return device.ErrClosed
	}
	fn(&d.lis)

	return nil
}
