// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF WAVE files.
//
// Decoding goes through github.com/go-audio/wav, so chunks may appear in
// any order and LIST or bext chunks before the data are skipped. Integer
// PCM at 8, 16, 24 or 32 bits is accepted; 8-bit data is unsigned as the
// format requires.
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotPCM) {
//	    // compressed WAVE payloads (ADPCM, mu-law) are not handled
//	}
//
// Probe reads only the header, which is enough to report a file's layout
// and duration.
//
// WriteWAV16 writes interleaved 16-bit PCM and needs an io.WriteSeeker so
// the chunk sizes can be patched once the data is written.
package wav
