package ioutils

import (
	"image/png"
	"sync"
)

// bufferPool lets consecutive frame encodes reuse the encoder's scratch buffers.
type bufferPool struct {
	pool sync.Pool
}

func (p *bufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *bufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}
