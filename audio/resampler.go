// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler converts its source to another sample rate with Catmull-Rom
// interpolation. The channel count is preserved. When downsampling a
// one-pole low-pass smooths the input before interpolation.
type Resampler struct {
	src  Source
	rate int
	ch   int
	step float64 // source frames per output frame

	// window holds frames t-1, t, t+1 and t+2 around the read position;
	// real marks which of them came from the source rather than padding.
	window [4][]float32
	real   [4]bool
	frac   float64
	primed bool
	done   bool

	in      []float32
	inPos   int
	inLen   int
	srcDone bool

	smooth bool
	warm   bool
	alpha  float32
	lp     []float32
}

func NewResampler(src Source, rate int) *Resampler {
	ch := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(rate)

	r := &Resampler{
		src:    src,
		rate:   rate,
		ch:     ch,
		step:   step,
		in:     make([]float32, 1024*ch),
		smooth: step > 1,
		alpha:  0.5,
		lp:     make([]float32, ch),
	}
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.ch }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next source frame into dst and reports whether one was
// available.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for empty := 0; r.inPos >= r.inLen; {
		if r.srcDone || empty >= maxEmptyReads {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.ch
		if r.inLen == 0 {
			empty++
		}

		if errors.Is(err, io.EOF) {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.ch])
	r.inPos += r.ch

	if r.smooth {
		if !r.warm {
			copy(r.lp, dst)
			r.warm = true
		}
		for c, v := range dst {
			r.lp[c] = r.alpha*v + (1-r.alpha)*r.lp[c]
			dst[c] = r.lp[c]
		}
	}

	return true, nil
}

// prime loads the first frames. Missing frames repeat the last real one.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}

	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = false, true

	for i := 2; i < 4; i++ {
		ok, err := r.pull(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	last := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = last

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples fills dst with frames at the target rate. len(dst) must be
// a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.ch != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	n := 0
	for n < len(dst) {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return n, err
			}
		}

		if r.done || !r.real[1] {
			r.done = true
			break
		}

		x := float32(r.frac)
		for c := range r.ch {
			dst[n+c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		n += r.ch
		r.frac += r.step
	}

	if r.done {
		return n, io.EOF
	}

	return n, nil
}
