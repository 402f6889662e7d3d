// SPDX-License-Identifier: EPL-2.0

// Package soft is a pure Go implementation of device.Device.
//
// Buffers are stored as normalized float32 frames. Render mixes every
// playing source into interleaved stereo at the device rate, applying
// gain, the inverse distance clamped attenuation model, equal power
// panning from the listener orientation, doppler shift and pitch. Sample
// rate conversion uses the same Catmull-Rom interpolation as the decode
// pipeline.
//
// A Device is safe for concurrent use; the speaker output calls Render from
// its own goroutine while the mixer updates sources.
//
// The device also implements device.Capturer as a loopback of its own
// output, which is how offline rendering is done:
//
//	d := soft.New(44100)
//	_ = d.StartCapture()
//	out := make([]float32, 2*1024)
//	d.Render(out)
//	n, _ := d.ReadCapture(pcm)
package soft
