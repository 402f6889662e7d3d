// SPDX-License-Identifier: EPL-2.0

// Package device describes the native playback API the mixer drives.
//
// A Device owns three kinds of objects:
//
//   - buffers hold PCM data in one of the supported SampleFormat layouts
//   - sources play a single attached buffer with their own gain, pitch,
//     position and distance model
//   - the listener, a single global pose used for spatialization
//
// Handles are non-zero integers. Zero is never issued and means "none" when
// passed to SetBuffer.
//
// Platform dependent features are optional. A device that can record or
// loop back its output implements Capturer; one that can list output
// devices implements Enumerator. Use CaptureOf and Devices to reach them
// without type assertions at every call site.
package device
