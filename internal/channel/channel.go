// Package channel provides the bidirectional object channel layered over an
// established stream. Both handshake roles end up with one endpoint each;
// values written with Send on one side arrive in order at the other side's
// Recv.
package channel

import (
	"encoding/gob"
	"io"
	"sync"
)

// Channel is a typed message pipe over a byte stream. Send is safe for
// concurrent use; Recv must be called from one reader at a time.
type Channel struct {
	name string

	mu  sync.Mutex
	enc *gob.Encoder
	dec *gob.Decoder

	rw io.ReadWriter
}

// New builds a Channel over rw. The name is used only for diagnostics.
func New(name string, rw io.ReadWriter) *Channel {
	return &Channel{
		name: name,
		enc:  gob.NewEncoder(rw),
		dec:  gob.NewDecoder(rw),
		rw:   rw,
	}
}

// Name returns the diagnostic name given at construction.
func (c *Channel) Name() string { return c.name }

// Send writes one value to the peer.
func (c *Channel) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(v)
}

// Recv reads the next value from the peer into v.
func (c *Channel) Recv(v any) error {
	return c.dec.Decode(v)
}

// Close closes the underlying stream if it supports closing.
func (c *Channel) Close() error {
	if cl, ok := c.rw.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
