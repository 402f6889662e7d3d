// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample level conversions shared by the decoders,
// the software device and the speaker output.
package utils

import "encoding/binary"

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16 bits.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(1, x))

	return int16(x * 32767)
}

// Uint8ToFloat32 converts an unsigned 8-bit PCM sample, centered on 128.
func Uint8ToFloat32(b byte) float32 {
	return (float32(b) - 128) / 128
}

// Int16ToFloat32 converts a signed 16-bit PCM sample.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768
}

// DecodePCM converts little endian PCM of the given bit depth (8 unsigned
// or 16 signed) to float32 samples. Trailing partial samples are ignored.
func DecodePCM(bits int, data []byte) []float32 {
	if bits == 8 {
		out := make([]float32, len(data))
		for i, b := range data {
			out[i] = Uint8ToFloat32(b)
		}

		return out
	}

	out := make([]float32, len(data)/2)
	for i := range out {
		out[i] = Int16ToFloat32(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}

	return out
}
