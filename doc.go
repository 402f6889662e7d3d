// SPDX-License-Identifier: EPL-2.0

// Package audmix is a positional audio mixer core for games.
//
// A Mixer owns a fixed pool of native voices and a registry of loaded
// sound buffers on top of a device.Device. Callers load sounds, then ask for
// them to be played with a priority and a volume; the mixer decides which
// voice to use, evicting quieter sounds when the pool is full or when a
// sound already has as many instances playing as its priority allows.
//
//	m := audmix.New(audmix.DefaultConfig())
//	if err := m.Init(soft.New(44100)); err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	id, err := m.Load(data, audmix.SoundInfo{Codec: audmix.CodecWAV})
//	sig, err := m.Play(audmix.PlayRequest{
//	    Buffer:   id,
//	    SoundID:  7,
//	    Priority: audmix.LimitTwo,
//	    Volume:   gain.ToInternal(80),
//	})
//
// Every successful play returns a signature. Voices are reused, so keep the
// signature rather than the channel index to ask about a playback later:
//
//	if m.IsSignatureActive(sig) { ... }
//
// # Units
//
// Volumes are internal log units from the gain package (0 is full scale,
// gain.Silence is muted). Pan runs from -gain.MaxPan to gain.MaxPan. Pitch
// is clamped to [gain.MinPitch, gain.MaxPitch] with 1000 as normal speed.
//
// # Frames
//
// Call UpdateListener, UpdateSpatial and DoFrame once per simulation frame.
// DoFrame stops voice message playback that wrapped around, which happens
// when a streamed message is mistakenly marked as looping.
//
// # Concurrency
//
// A Mixer is not safe for concurrent use. Drive it from the simulation
// thread; only the device it wraps may be shared with an output goroutine.
package audmix
