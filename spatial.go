// SPDX-License-Identifier: EPL-2.0

package audmix

import "github.com/ik5/audmix/device"

// Attenuation and doppler tuning applied to every positioned voice.
const (
	spatialMaxDistance = 40000
	spatialRolloff     = 1
	dopplerVelocity    = 10000
	dopplerFactor      = 0
)

// Init3D enables the spatializer.
func (m *Mixer) Init3D() error {
	if !m.initialized {
		return ErrNotInitialized
	}

	m.enabled3D = true
	m.resetListener()

	return nil
}

// Close3D disables the spatializer. UpdateSpatial and UpdateListener become
// no-ops.
func (m *Mixer) Close3D() { m.enabled3D = false }

// Enabled3D reports whether 3D positioning is on.
func (m *Mixer) Enabled3D() bool { return m.enabled3D }

// UpdateSpatial positions voice ch. minDist is the distance at which the
// voice plays at full gain; maxDist is accepted but voices always attenuate
// out to 40000 units. A nil pos keeps the current position, a nil vel zeroes
// the velocity.
//
// It does nothing when 3D is disabled or ch is -1.
func (m *Mixer) UpdateSpatial(ch int, minDist, maxDist float32, pos, vel *device.Vec3) error {
	if !m.enabled3D || ch == -1 {
		return nil
	}

	v, err := m.channel(ch)
	if err != nil {
		return err
	}
	if v.handle == 0 {
		return nil
	}

	h := v.handle
	m.warn("SetReferenceDistance", m.dev.SetReferenceDistance(h, minDist), ch, v.buffer)
	m.warn("SetMaxDistance", m.dev.SetMaxDistance(h, spatialMaxDistance), ch, v.buffer)
	m.warn("SetRolloff", m.dev.SetRolloff(h, spatialRolloff), ch, v.buffer)
	m.warn("SetDopplerVelocity", m.dev.SetDopplerVelocity(dopplerVelocity), ch, v.buffer)
	m.warn("SetDopplerFactor", m.dev.SetDopplerFactor(dopplerFactor), ch, v.buffer)

	if pos != nil {
		m.warn("SetPosition", m.dev.SetPosition(h, *pos), ch, v.buffer)
	}

	velocity := device.Vec3{}
	if vel != nil {
		velocity = *vel
	}
	m.warn("SetVelocity", m.dev.SetVelocity(h, velocity), ch, v.buffer)

	return nil
}

// UpdateListener moves the listener. Nil arguments leave that attribute
// unchanged. It does nothing when 3D is disabled.
func (m *Mixer) UpdateListener(pos, vel *device.Vec3, orient *device.Orientation) error {
	if !m.enabled3D {
		return nil
	}

	if pos != nil {
		m.warn("SetListenerPosition", m.dev.SetListenerPosition(*pos), -1, -1)
	}
	if vel != nil {
		m.warn("SetListenerVelocity", m.dev.SetListenerVelocity(*vel), -1, -1)
	}
	if orient != nil {
		m.warn("SetListenerOrientation", m.dev.SetListenerOrientation(*orient), -1, -1)
	}

	return nil
}
