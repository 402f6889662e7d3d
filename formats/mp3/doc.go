// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio with
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit stereo; mono files are duplicated on both
// channels. Downmix the Source if a single channel is needed.
package mp3
