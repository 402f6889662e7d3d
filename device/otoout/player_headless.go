// SPDX-License-Identifier: EPL-2.0

//go:build headless

package otoout

import (
	"sync"
	"time"
)

// Player is a silent stand-in that still drains the Renderer so voices
// progress and finish.
type Player struct {
	s       *stream
	mtx     sync.Mutex
	playing bool
	stop    chan struct{}
	done    chan struct{}
	period  time.Duration
}

func New(r Renderer, enc Encoding, bufferSize time.Duration) (*Player, error) {
	if bufferSize <= 0 {
		bufferSize = 20 * time.Millisecond
	}

	return &Player{
		s:      &stream{r: r, enc: enc},
		period: bufferSize,
	}, nil
}

func (p *Player) Start() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.playing {
		return
	}
	p.playing = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	frames := int(p.period.Seconds() * float64(p.s.r.SampleRate()))
	buf := make([]byte, frames*2*p.s.bytesPerSample())

	go func(stop, done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(p.period)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_, _ = p.s.Read(buf)
			}
		}
	}(p.stop, p.done)
}

func (p *Player) Pause() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.playing {
		return
	}
	p.playing = false
	close(p.stop)
	<-p.done
}

func (p *Player) IsPlaying() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.playing
}

func (p *Player) Err() error { return nil }

func (p *Player) Close() error {
	p.Pause()
	return nil
}
