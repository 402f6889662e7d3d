// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/utils"
)

func (d *Device) GenBuffer() (device.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, device.ErrClosed
	}

	d.nextBuffer++
	id := d.nextBuffer
	d.buffers[id] = &buffer{}

	return id, nil
}

func (d *Device) BufferData(id device.BufferID, format device.SampleFormat, data []byte, rate int) error {
	if !format.Valid() || rate <= 0 || len(data)%format.FrameSize() != 0 {
		return device.ErrInvalidValue
	}

	frames := utils.DecodePCM(format.BitsPerSample(), data)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return device.ErrClosed
	}

	b, ok := d.buffers[id]
	if !ok {
		return device.ErrInvalidBuffer
	}
	if b.users > 0 {
		return device.ErrInvalidOperation
	}

	b.frames = frames
	b.channels = format.Channels()
	b.rate = rate
	b.format = format

	return nil
}

func (d *Device) DeleteBuffer(id device.BufferID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return device.ErrClosed
	}

	b, ok := d.buffers[id]
	if !ok {
		return device.ErrInvalidBuffer
	}
	if b.users > 0 {
		return device.ErrInvalidOperation
	}

	delete(d.buffers, id)

	return nil
}
