// SPDX-License-Identifier: EPL-2.0

package gain

import "math"

const (
	// Silence is the internal value for a muted voice.
	Silence = -10000

	// MaxPan is the magnitude of a hard left or right pan.
	MaxPan = 1500

	MinPitch = 100
	MaxPitch = 100000
)

// volumeTable maps integer percentages to internal units.
var volumeTable = buildVolumeTable()

func buildVolumeTable() [101]int {
	var t [101]int

	t[0] = Silence
	for i := 1; i <= 100; i++ {
		v := float64(i) / 100.0
		t[i] = int(math.Round(math.Log2(v) * 1000.0))
	}

	return t
}

// ToInternal converts a 0..100 volume percentage to internal units.
// Values outside the range are clamped.
func ToInternal(percent int) int {
	if percent <= 0 {
		return Silence
	}
	if percent > 100 {
		percent = 100
	}

	return volumeTable[percent]
}

// FromFraction converts a 0.0..1.0 volume to internal units through the
// same table as ToInternal.
func FromFraction(v float32) int {
	return ToInternal(int(v * 100.0))
}

// FromInternal converts internal units back to a linear 0..1 level.
func FromInternal(g int) float64 {
	return math.Pow(2.0, float64(g)/1000.0)
}

// dbDivisor is -600/log10(0.5): the number of hundredths of a decibel per
// decade of linear amplitude on the tuned curve.
var dbDivisor = float32(-600.0) / float32(math.Log10(0.5))

// ToLinearAmplitude converts internal units to the linear gain handed to
// the device. Silence maps to exactly 0.
func ToLinearAmplitude(g int) float32 {
	if g == Silence {
		return 0
	}

	exp := float32(g) / dbDivisor

	return float32(math.Pow(10.0, float64(exp)))
}

// PanPosition returns the position that produces pan when the listener sits
// at the origin facing -Z. A zero pan is centered on the listener.
func PanPosition(pan int) (x, y, z float32) {
	if pan == 0 {
		return 0, 0, 0
	}

	return float32(pan) / MaxPan, 0, 1
}

// ClampPitch limits pitch to [MinPitch, MaxPitch].
func ClampPitch(pitch int) int {
	if pitch < MinPitch {
		return MinPitch
	}
	if pitch > MaxPitch {
		return MaxPitch
	}

	return pitch
}

// PitchToMultiplier converts a pitch value to the device multiplier.
func PitchToMultiplier(pitch int) float32 {
	pitch = ClampPitch(pitch)

	return float32(math.Log10(float64(pitch))) - 2.0
}

// MultiplierToPitch converts a device multiplier back to a pitch value.
func MultiplierToPitch(m float32) int {
	return int(math.Pow(10.0, float64(m)+2.0))
}
