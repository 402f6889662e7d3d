// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package otoout

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Renderer to the default output device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mtx    sync.Mutex
	closed bool
}

// New opens the output at r's sample rate. Only one oto context may exist
// per process.
func New(r Renderer, enc Encoding, bufferSize time.Duration) (*Player, error) {
	format := oto.FormatFloat32LE
	if enc == Int16 {
		format = oto.FormatSignedInt16LE
	}

	op := &oto.NewContextOptions{
		SampleRate:   r.SampleRate(),
		ChannelCount: 2,
		Format:       format,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio output: %w", err)
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(&stream{r: r, enc: enc}),
	}, nil
}

// Start begins pulling audio.
func (p *Player) Start() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.closed {
		p.player.Play()
	}
}

// Pause stops pulling audio without closing the output.
func (p *Player) Pause() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.closed {
		p.player.Pause()
	}
}

func (p *Player) IsPlaying() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return !p.closed && p.player.IsPlaying()
}

// Err reports an asynchronous output failure, if any.
func (p *Player) Err() error {
	if err := p.ctx.Err(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (p *Player) Close() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.player.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
