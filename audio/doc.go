// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decode pipeline that turns container formats into
// PCM the mixer can upload.
//
// Every decoder produces a Source: a stream of interleaved float32 samples
// in [-1, 1]. Sources chain:
//
//	src, _ := registry.Decode("ogg", r)
//	if src.Channels() > 2 {
//	    src = audio.NewDownmix(src)
//	}
//	src = audio.NewResampler(src, 22050)
//	pcm, _ := audio.ReadPCM16(src, src.BufSize())
//
// # Registry
//
// A Registry maps format names ("wav", "ogg", "mp3", "aiff") to Decoders.
// It is safe for concurrent use.
//
// # End of Stream
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly together
// with the final samples. Callers consume n before looking at err.
package audio
