package transport

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"net"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"pact/internal/domain"
	"pact/internal/util/memzero"
)

const secretLabel = "pact-session-secret"

// ErrBadKexMessage is returned when the peer's key-agreement message does
// not carry a valid Curve25519 public key.
var ErrBadKexMessage = errors.New("invalid key agreement message")

// Conn adapts a raw byte stream into the typed connection the handshake
// engine consumes: gob object framing plus an X25519 key agreement.
type Conn struct {
	raw io.ReadWriteCloser

	// All reads go through one shared buffered reader. The gob decoder
	// must not buffer privately past message boundaries, or bytes meant
	// for the encrypted stream would be stranded when Stream() takes
	// over; bufio.Reader implements io.ByteReader, which keeps gob from
	// adding its own buffer.
	br  *bufio.Reader
	enc *gob.Encoder
	dec *gob.Decoder
}

// New wraps rw. The caller keeps ownership of closing via Close.
func New(rw io.ReadWriteCloser) *Conn {
	br := bufio.NewReader(rw)
	return &Conn{
		raw: rw,
		br:  br,
		enc: gob.NewEncoder(rw),
		dec: gob.NewDecoder(br),
	}
}

// Dial opens a TCP connection to addr and wraps it.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", addr, err)
	}
	return New(nc), nil
}

// WriteObject writes one gob-encoded value to the connection.
func (c *Conn) WriteObject(v any) error {
	return c.enc.Encode(v)
}

// ReadObject reads one gob-encoded value from the connection into v.
func (c *Conn) ReadObject(v any) error {
	return c.dec.Decode(v)
}

// kexMessage carries one side's ephemeral public key.
type kexMessage struct {
	Public []byte
}

// DeriveSecret runs an ephemeral X25519 exchange over the connection and
// returns a 32-byte session secret. The initiator writes its public key
// first; the responder reads first. A fresh key pair is generated per call,
// so two attempts never derive the same secret.
func (c *Conn) DeriveSecret(initiator bool) ([]byte, error) {
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return nil, err
	}
	defer memzero.Zero(priv)
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, err
	}

	var peer kexMessage
	if initiator {
		if err := c.WriteObject(kexMessage{Public: pub}); err != nil {
			return nil, fmt.Errorf("sending key agreement: %w", err)
		}
		if err := c.ReadObject(&peer); err != nil {
			return nil, fmt.Errorf("reading key agreement: %w", err)
		}
	} else {
		if err := c.ReadObject(&peer); err != nil {
			return nil, fmt.Errorf("reading key agreement: %w", err)
		}
		if err := c.WriteObject(kexMessage{Public: pub}); err != nil {
			return nil, fmt.Errorf("sending key agreement: %w", err)
		}
	}
	if len(peer.Public) != curve25519.PointSize {
		return nil, ErrBadKexMessage
	}

	shared, err := curve25519.X25519(priv, peer.Public)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadKexMessage, err)
	}
	defer memzero.Zero(shared)

	secret := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, nil, []byte(secretLabel)), secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// Stream exposes the raw stream for layering the encrypted channel. Reads
// continue through the shared buffered reader.
func (c *Conn) Stream() io.ReadWriter {
	return struct {
		io.Reader
		io.Writer
	}{c.br, c.raw}
}

// Close closes the underlying connection, aborting any blocked handshake.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// Compile-time assertion that Conn implements domain.Conn.
var _ domain.Conn = (*Conn)(nil)
