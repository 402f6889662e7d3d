// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"testing"

	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/gain"
)

func TestPlayConfiguresVoice(t *testing.T) {
	m, dev := newTestMixer(t, 2)
	id := loadPCM(t, m, 100)

	sig := play(t, m, PlayRequest{Buffer: id, SoundID: 5, Volume: -1000, Pan: gain.MaxPan, Looping: true})

	ch, err := m.FindBySignature(sig)
	if err != nil {
		t.Fatalf("FindBySignature() error = %v", err)
	}
	src := dev.Sources[m.voices[ch].handle]

	if src.Position != (device.Vec3{X: 1, Y: 0, Z: 1}) {
		t.Errorf("Position = %+v, want (1, 0, 1)", src.Position)
	}
	if src.Velocity != (device.Vec3{}) {
		t.Errorf("Velocity = %+v, want zero", src.Velocity)
	}
	if src.Gain != gain.ToLinearAmplitude(-1000) {
		t.Errorf("Gain = %v, want %v", src.Gain, gain.ToLinearAmplitude(-1000))
	}
	if src.Pitch != 1 || src.Relative || !src.Looping {
		t.Errorf("source = %+v, want pitch 1, absolute, looping", src)
	}
	if src.State != device.Playing || src.Buffer != m.buffers[id].handle {
		t.Errorf("source = %+v, want playing buffer %d", src, m.buffers[id].handle)
	}
	if got := m.SoundID(ch); got != 5 {
		t.Errorf("SoundID() = %d, want 5", got)
	}
	if got := m.Signature(ch); got != sig {
		t.Errorf("Signature() = %d, want %d", got, sig)
	}
	if got, _ := m.ChannelSize(ch); got != 200 {
		t.Errorf("ChannelSize() = %d, want 200", got)
	}
}

func TestPlayCenteredPan(t *testing.T) {
	m, dev := newTestMixer(t, 1)
	id := loadPCM(t, m, 100)

	play(t, m, PlayRequest{Buffer: id, SoundID: 1, Pan: gain.MaxPan})
	m.StopAll()
	play(t, m, PlayRequest{Buffer: id, SoundID: 1, Pan: 0})

	if got := dev.Sources[m.voices[0].handle].Position; got != (device.Vec3{}) {
		t.Errorf("Position = %+v, want origin", got)
	}
}

func TestSignatures(t *testing.T) {
	m, _ := newTestMixer(t, 1)
	id := loadPCM(t, m, 100)

	first := play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0})
	second := play(t, m, PlayRequest{Buffer: id, SoundID: 2, Volume: 0})

	if first == second {
		t.Fatalf("reused voice got the same signature %d", first)
	}
	if _, err := m.FindBySignature(first); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindBySignature(stale) error = %v, want ErrNotFound", err)
	}
	if ch, err := m.FindBySignature(second); err != nil || ch != 0 {
		t.Errorf("FindBySignature() = %d, %v, want 0, nil", ch, err)
	}

	for _, sig := range []int{0, -1} {
		if _, err := m.FindBySignature(sig); !errors.Is(err, ErrNotFound) {
			t.Errorf("FindBySignature(%d) error = %v, want ErrNotFound", sig, err)
		}
	}
}

func TestSignatureWrap(t *testing.T) {
	m, _ := newTestMixer(t, 1)
	m.sigLimit = 3
	id := loadPCM(t, m, 100)

	var got []int
	for range 5 {
		got = append(got, play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0}))
	}

	want := []int{1, 2, 3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("signatures = %v, want %v", got, want)
		}
	}
}

func TestFindBySignatureReclaims(t *testing.T) {
	m, dev := newTestMixer(t, 2)
	id := loadPCM(t, m, 100)

	sig := play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0})
	dev.Finish(m.voices[0].handle)

	if _, err := m.FindBySignature(sig); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindBySignature() error = %v, want ErrNotFound", err)
	}
	if m.voices[0].bound() {
		t.Error("finished voice was not reclaimed")
	}
	if dev.Sources[m.voices[0].handle].Buffer != 0 {
		t.Error("reclaimed voice still has its buffer attached")
	}
	checkBindings(t, m)
}

func TestPlayNativeFailure(t *testing.T) {
	m, dev := newTestMixer(t, 2)
	id := loadPCM(t, m, 100)

	dev.Fail("Play", errBoom)
	_, err := m.Play(PlayRequest{Buffer: id, SoundID: 1, Volume: 0})

	var nerr *NativeError
	if !errors.As(err, &nerr) || nerr.Op != "Play" {
		t.Fatalf("Play() error = %v, want a Play *NativeError", err)
	}
	if m.voices[0].bound() {
		t.Error("failed play left the voice bound")
	}
	if got := dev.Sources[m.voices[0].handle].Buffer; got != 0 {
		t.Errorf("failed play left buffer %d attached", got)
	}
	checkBindings(t, m)

	dev.Fail("Play", nil)
	play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0})
}

func TestPlayWarningsContinue(t *testing.T) {
	m, dev := newTestMixer(t, 1)
	id := loadPCM(t, m, 100)

	dev.Fail("SetPosition", errBoom)
	dev.Fail("SetVelocity", errBoom)
	dev.Fail("SetListenerPosition", errBoom)

	sig := play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0, Pan: 300})
	if !m.IsSignatureActive(sig) {
		t.Error("play with failing position calls is not active")
	}
}

func TestPlay3D(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Channels = 2
	cfg.Enable3D = true

	m := New(cfg)
	dev := newDevice(t, m)
	id := loadPCM(t, m, 100)

	pos := device.Vec3{X: 10, Y: 0, Z: -5}
	sig, err := m.Play3D(Play3DRequest{
		Buffer:          id,
		SoundID:         1,
		Priority:        LimitOne,
		Position:        &pos,
		MinDistance:     2,
		MaxDistance:     500,
		MaxVolume:       0,
		EstimatedVolume: -600,
	})
	if err != nil {
		t.Fatalf("Play3D() error = %v", err)
	}

	ch, _ := m.FindBySignature(sig)
	src := dev.Sources[m.voices[ch].handle]

	if src.Position != pos || src.RefDist != 2 || src.MaxDist != spatialMaxDistance || src.Rolloff != 1 {
		t.Errorf("source = %+v, want positioned voice", src)
	}
	if src.Gain != gain.ToLinearAmplitude(-600) || src.MaxGain != 1 {
		t.Errorf("Gain, MaxGain = %v, %v, want %v, 1", src.Gain, src.MaxGain, gain.ToLinearAmplitude(-600))
	}
	if src.Relative {
		t.Error("positioned voice is listener-relative, want world space")
	}
	if m.voices[ch].volume != -600 {
		t.Errorf("recorded volume = %d, want -600", m.voices[ch].volume)
	}

	if _, err := m.Play3D(Play3DRequest{Buffer: id, SoundID: 1, Priority: LimitOne, EstimatedVolume: -700}); !errors.Is(err, ErrNoVoiceAvailable) {
		t.Errorf("quieter Play3D() error = %v, want ErrNoVoiceAvailable", err)
	}
}

func TestPlayEasy(t *testing.T) {
	m, dev := newTestMixer(t, 2)
	id := loadPCM(t, m, 100)

	if err := m.PlayEasy(id, 0); err != nil {
		t.Fatalf("PlayEasy() error = %v", err)
	}
	if err := m.PlayEasy(id, 0); err != nil {
		t.Fatalf("second PlayEasy() error = %v", err)
	}
	if got := m.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
	if m.SoundID(0) != -1 {
		t.Errorf("SoundID(0) = %d, want -1", m.SoundID(0))
	}

	if err := m.StopEasy(id); err != nil {
		t.Fatalf("StopEasy() error = %v", err)
	}
	if got := m.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after StopEasy = %d, want 0", got)
	}
	if got := len(dev.Sources); got != 2 {
		t.Errorf("StopEasy released sources: %d left, want 2", got)
	}
}

func TestChannelControls(t *testing.T) {
	m, dev := newTestMixer(t, 2)
	id := loadPCM(t, m, 100)

	play(t, m, PlayRequest{Buffer: id, SoundID: 1, Volume: 0})
	src := dev.Sources[m.voices[0].handle]

	if err := m.SetVolume(0, -2000); err != nil {
		t.Fatalf("SetVolume() error = %v", err)
	}
	if src.Gain != gain.ToLinearAmplitude(-2000) || m.voices[0].volume != -2000 {
		t.Errorf("SetVolume() gain = %v, volume = %d", src.Gain, m.voices[0].volume)
	}

	if err := m.SetPan(0, -gain.MaxPan); err != nil {
		t.Fatalf("SetPan() error = %v", err)
	}
	if src.Position.X != -1 {
		t.Errorf("SetPan() position = %+v, want x = -1", src.Position)
	}

	if err := m.SetPitch(0, 1000); err != nil {
		t.Fatalf("SetPitch() error = %v", err)
	}
	if got, err := m.Pitch(0); err != nil || got != 1000 {
		t.Errorf("Pitch() = %d, %v, want 1000", got, err)
	}
	if err := m.SetPitch(0, 1); err != nil {
		t.Fatalf("SetPitch(1) error = %v", err)
	}
	if got, _ := m.Pitch(0); got != gain.MinPitch {
		t.Errorf("Pitch() after clamping = %d, want %d", got, gain.MinPitch)
	}

	if err := m.SetLooping(0, true); err != nil || !src.Looping || !m.voices[0].looping {
		t.Errorf("SetLooping() = %v, source looping %v", err, src.Looping)
	}

	if err := m.SetPlayPosition(0, 50); err != nil {
		t.Fatalf("SetPlayPosition() error = %v", err)
	}
	if got, _ := m.PlayPosition(0); got != 50 {
		t.Errorf("PlayPosition() = %d, want 50", got)
	}

	if !m.IsPlaying(0) || m.IsPlaying(1) {
		t.Errorf("IsPlaying() = %v, %v, want true, false", m.IsPlaying(0), m.IsPlaying(1))
	}

	if err := m.StopChannel(0); err != nil {
		t.Fatalf("StopChannel() error = %v", err)
	}
	if m.IsPlaying(0) {
		t.Error("IsPlaying() after StopChannel = true")
	}
	if !m.voices[0].bound() {
		t.Error("StopChannel() released the binding")
	}

	// Stopped voices ignore pan and pitch changes.
	if err := m.SetPan(0, gain.MaxPan); err != nil || src.Position.X != -1 {
		t.Errorf("SetPan() on stopped voice = %v, position %+v", err, src.Position)
	}
}

func TestChannelRange(t *testing.T) {
	m, _ := newTestMixer(t, 2)

	for _, ch := range []int{-1, 2} {
		if err := m.SetVolume(ch, 0); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("SetVolume(%d) error = %v, want ErrInvalidChannel", ch, err)
		}
		if err := m.StopVoice(ch); !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("StopVoice(%d) error = %v, want ErrInvalidChannel", ch, err)
		}
		if got := m.SoundID(ch); got != -1 {
			t.Errorf("SoundID(%d) = %d, want -1", ch, got)
		}
	}

	if err := m.StopVoice(0); err != nil {
		t.Errorf("StopVoice() on idle voice error = %v", err)
	}
	if _, err := m.Pitch(0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("Pitch() on unallocated voice error = %v, want ErrInvalidChannel", err)
	}
	if err := m.SetPlayPosition(0, 0); !errors.Is(err, ErrInvalidChannel) {
		t.Errorf("SetPlayPosition() on idle voice error = %v, want ErrInvalidChannel", err)
	}
}
