// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Downmix averages every frame of its source into a single channel.
type Downmix struct {
	src Source
	in  []float32
}

func NewDownmix(src Source) *Downmix {
	return &Downmix{src: src}
}

func (d *Downmix) SampleRate() int { return d.src.SampleRate() }
func (d *Downmix) Channels() int   { return 1 }
func (d *Downmix) BufSize() int    { return d.src.BufSize() }

func (d *Downmix) Close() error {
	if err := d.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples writes at most len(dst) mono samples.
func (d *Downmix) ReadSamples(dst []float32) (int, error) {
	ch := d.src.Channels()
	if ch <= 1 || len(dst) == 0 {
		return d.src.ReadSamples(dst)
	}

	want := len(dst) * ch
	if cap(d.in) < want {
		d.in = make([]float32, want)
	}
	in := d.in[:want]

	n, err := d.src.ReadSamples(in)
	frames := n / ch
	scale := 1 / float32(ch)

	for f := range frames {
		var sum float32
		for _, v := range in[f*ch : (f+1)*ch] {
			sum += v
		}
		dst[f] = sum * scale
	}

	return frames, err
}
