// SPDX-License-Identifier: EPL-2.0

package gain

import (
	"math"
	"testing"
)

func TestToInternal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		percent int
		want    int
	}{
		{name: "silence", percent: 0, want: Silence},
		{name: "negative", percent: -20, want: Silence},
		{name: "full", percent: 100, want: 0},
		{name: "over full", percent: 250, want: 0},
		{name: "half", percent: 50, want: -1000},
		{name: "quarter", percent: 25, want: -2000},
		{name: "one percent", percent: 1, want: -6644},
		{name: "eighty", percent: 80, want: -322},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToInternal(tt.percent); got != tt.want {
				t.Errorf("ToInternal(%d) = %d, want %d", tt.percent, got, tt.want)
			}
		})
	}
}

func TestVolumeRoundTrip(t *testing.T) {
	t.Parallel()

	for p := 1; p <= 100; p++ {
		got := FromInternal(ToInternal(p))
		want := float64(p) / 100.0
		if math.Abs(got-want) > want*1e-3 {
			t.Errorf("FromInternal(ToInternal(%d)) = %v, want %v", p, got, want)
		}
	}
}

func TestVolumeTableMonotonic(t *testing.T) {
	t.Parallel()

	for p := 1; p <= 100; p++ {
		if ToInternal(p) <= ToInternal(p-1) {
			t.Fatalf("ToInternal(%d) = %d, not above ToInternal(%d) = %d",
				p, ToInternal(p), p-1, ToInternal(p-1))
		}
	}
}

func TestFromFraction(t *testing.T) {
	t.Parallel()

	if got := FromFraction(1.0); got != 0 {
		t.Errorf("FromFraction(1.0) = %d, want 0", got)
	}
	if got := FromFraction(0.5); got != -1000 {
		t.Errorf("FromFraction(0.5) = %d, want -1000", got)
	}
	if got := FromFraction(0); got != Silence {
		t.Errorf("FromFraction(0) = %d, want %d", got, Silence)
	}
}

func TestToLinearAmplitude(t *testing.T) {
	t.Parallel()

	if got := ToLinearAmplitude(Silence); got != 0 {
		t.Errorf("ToLinearAmplitude(Silence) = %v, want 0", got)
	}
	if got := ToLinearAmplitude(0); got != 1 {
		t.Errorf("ToLinearAmplitude(0) = %v, want 1", got)
	}

	// -600 hundredths of a decibel is one halving on the tuned curve.
	got := ToLinearAmplitude(-600)
	if math.Abs(float64(got)-0.5) > 1e-5 {
		t.Errorf("ToLinearAmplitude(-600) = %v, want 0.5", got)
	}

	prev := ToLinearAmplitude(-9999)
	for g := -9000; g <= 0; g += 1000 {
		cur := ToLinearAmplitude(g)
		if cur <= prev {
			t.Errorf("ToLinearAmplitude(%d) = %v, not above %v", g, cur, prev)
		}
		prev = cur
	}
}

func TestPanPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pan     int
		x, y, z float32
	}{
		{pan: 0, x: 0, y: 0, z: 0},
		{pan: MaxPan, x: 1, y: 0, z: 1},
		{pan: -MaxPan, x: -1, y: 0, z: 1},
		{pan: 750, x: 0.5, y: 0, z: 1},
	}

	for _, tt := range tests {
		x, y, z := PanPosition(tt.pan)
		if x != tt.x || y != tt.y || z != tt.z {
			t.Errorf("PanPosition(%d) = (%v, %v, %v), want (%v, %v, %v)",
				tt.pan, x, y, z, tt.x, tt.y, tt.z)
		}
	}
}

func TestPitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pitch int
		want  float32
	}{
		{name: "minimum", pitch: MinPitch, want: 0},
		{name: "below minimum", pitch: 5, want: 0},
		{name: "unity", pitch: 1000, want: 1},
		{name: "maximum", pitch: MaxPitch, want: 3},
		{name: "above maximum", pitch: 5000000, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := PitchToMultiplier(tt.pitch)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("PitchToMultiplier(%d) = %v, want %v", tt.pitch, got, tt.want)
			}
		})
	}

	for _, p := range []int{100, 500, 1000, 2500, 44100} {
		back := MultiplierToPitch(PitchToMultiplier(p))
		if diff := back - p; diff < -1 || diff > 1 {
			t.Errorf("MultiplierToPitch(PitchToMultiplier(%d)) = %d", p, back)
		}
	}
}

func BenchmarkToLinearAmplitude(b *testing.B) {
	b.ReportAllocs()

	var out float32
	for i := range b.N {
		out = ToLinearAmplitude(-(i % 10000))
	}
	_ = out
}
