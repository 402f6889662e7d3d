// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{name: "start returns y1", y0: 3, y1: -1, y2: 4, y3: 9, x: 0, want: -1},
		{name: "end returns y2", y0: 3, y1: -1, y2: 4, y3: 9, x: 1, want: 4},
		{name: "linear ramp", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.25, want: 1.25},
		{name: "flat", y0: 0.5, y1: 0.5, y2: 0.5, y3: 0.5, x: 0.7, want: 0.5},
		{name: "symmetric step", y0: -1, y1: -1, y2: 1, y3: 1, x: 0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float32
		want int16
	}{
		{in: 0, want: 0},
		{in: 1, want: math.MaxInt16},
		{in: -1, want: -math.MaxInt16},
		{in: 0.5, want: 16383},
		{in: 7, want: math.MaxInt16},
		{in: -7, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.in); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDecodePCM(t *testing.T) {
	t.Parallel()

	eight := DecodePCM(8, []byte{0, 128, 192})
	if eight[0] != -1 || eight[1] != 0 || eight[2] != 0.5 {
		t.Errorf("DecodePCM(8) = %v, want [-1 0 0.5]", eight)
	}

	sixteen := DecodePCM(16, []byte{0x00, 0x80, 0x00, 0x40, 0xff})
	if len(sixteen) != 2 {
		t.Fatalf("DecodePCM(16) returned %d samples, want 2", len(sixteen))
	}
	if sixteen[0] != -1 || sixteen[1] != 0.5 {
		t.Errorf("DecodePCM(16) = %v, want [-1 0.5]", sixteen)
	}
}

func TestConversionsDoNotAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	allocs := testing.AllocsPerRun(1000, func() {
		_ = Float32ToInt16(CubicInterpolate(0.1, 0.2, 0.3, 0.4, 0.5))
	})
	if allocs > 0 {
		t.Errorf("conversion allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	b.ReportAllocs()

	var out float32
	for i := range b.N {
		out = CubicInterpolate(0.1, 0.5, 0.3, -0.2, float32(i%100)/100)
	}
	_ = out
}
