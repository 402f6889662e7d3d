// SPDX-License-Identifier: EPL-2.0

// Package gain converts between the mixer's unit systems.
//
// Volumes travel through the mixer as integers on a logarithmic scale where
// 0 is full volume and -10000 is silence. One unit is a thousandth of a
// halving (log2), so -1000 is half the linear level of 0:
//
//	ToInternal(100) ==     0
//	ToInternal(50)  == -1000
//	ToInternal(0)   == Silence
//
// The native device works with linear amplitudes. ToLinearAmplitude maps an
// internal value onto the curve existing content was tuned against, which
// treats the integer as hundredths of a decibel rather than as log2 units.
// Both curves are kept on purpose; callers decide volumes on the log2 scale
// and the device receives the decibel interpretation.
//
// # Pan and Pitch
//
// Stereo pan is produced by placing a voice on the unit circle in front of
// the listener:
//
//	x, y, z := gain.PanPosition(gain.MaxPan) // 1, 0, 1
//
// Pitch values are clamped to [MinPitch, MaxPitch] and mapped to the device
// multiplier with PitchToMultiplier.
package gain
