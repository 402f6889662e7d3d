// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is accepted. AIFF stores samples
// big endian and 8-bit data signed; go-audio hands them over as plain
// integers and the Source normalizes them to [-1, 1].
package aiff
