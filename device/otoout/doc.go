// SPDX-License-Identifier: EPL-2.0

// Package otoout plays a software device through the system speakers.
//
// A Player pulls interleaved stereo from a Renderer (normally a
// *soft.Device) on oto's audio goroutine. Build with the headless tag to
// replace the oto backend with a silent stub for CI machines without an
// audio stack.
package otoout
