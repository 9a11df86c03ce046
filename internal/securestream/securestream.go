package securestream

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"pact/internal/util/memzero"
)

const (
	// frameMax bounds the plaintext carried by one AEAD frame.
	frameMax = 32 * 1024

	// keyLabel binds the OAEP wrapping and key expansion to this protocol.
	keyLabel = "pact-stream"
)

// ErrFrameTooLarge is returned when an incoming frame length exceeds the
// protocol bound, which indicates corruption or a hostile peer.
var ErrFrameTooLarge = errors.New("encrypted frame exceeds maximum size")

// Stream is a symmetric encrypted stream over an insecure byte stream, keyed
// from the local private key and the peer's public key. Each direction uses
// its own fresh stream key, wrapped for the receiving side with RSA-OAEP and
// expanded to a ChaCha20-Poly1305 key. Frames carry a counter nonce, so
// reordered, replayed or tampered frames fail authentication.
type Stream struct {
	w writer
	r reader
}

// New layers a Stream over rw. No I/O happens until the first Read or
// Write: the outbound key header is emitted lazily so both sides can
// construct their streams without coordinating.
func New(rw io.ReadWriter, local *rsa.PrivateKey, peer *rsa.PublicKey) *Stream {
	return &Stream{
		w: writer{out: rw, peer: peer},
		r: reader{in: rw, local: local},
	}
}

func (s *Stream) Write(p []byte) (int, error) { return s.w.write(p) }
func (s *Stream) Read(p []byte) (int, error)  { return s.r.read(p) }

// expand stretches a raw stream key into an AEAD key.
func expand(key []byte) (cipher.AEAD, error) {
	h := hkdf.New(sha256.New, key, nil, []byte(keyLabel+"-key"))
	k := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(h, k); err != nil {
		return nil, err
	}
	defer memzero.Zero(k)
	return chacha20poly1305.New(k)
}

func nonceFor(ctr uint64) []byte {
	nonce := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(nonce[4:], ctr)
	return nonce
}

type writer struct {
	out  io.Writer
	peer *rsa.PublicKey
	aead cipher.AEAD
	ctr  uint64
}

// init generates the outbound stream key and sends it wrapped under the
// peer's public key. Only the matching private key can unwrap it.
func (w *writer) init() error {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return err
	}
	defer memzero.Zero(key)

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, w.peer, key, []byte(keyLabel))
	if err != nil {
		return fmt.Errorf("wrapping stream key: %w", err)
	}
	hdr := make([]byte, 2+len(wrapped))
	binary.BigEndian.PutUint16(hdr, uint16(len(wrapped)))
	copy(hdr[2:], wrapped)
	if _, err := w.out.Write(hdr); err != nil {
		return fmt.Errorf("sending stream key: %w", err)
	}
	w.aead, err = expand(key)
	return err
}

func (w *writer) write(p []byte) (int, error) {
	if w.aead == nil {
		if err := w.init(); err != nil {
			return 0, err
		}
	}
	total := 0
	for len(p) > 0 {
		n := len(p)
		if n > frameMax {
			n = frameMax
		}
		ct := w.aead.Seal(nil, nonceFor(w.ctr), p[:n], nil)
		w.ctr++

		frame := make([]byte, 4+len(ct))
		binary.BigEndian.PutUint32(frame, uint32(len(ct)))
		copy(frame[4:], ct)
		if _, err := w.out.Write(frame); err != nil {
			return total, err
		}
		total += n
		p = p[n:]
	}
	return total, nil
}

type reader struct {
	in    io.Reader
	local *rsa.PrivateKey
	aead  cipher.AEAD
	ctr   uint64
	rest  []byte
}

func (r *reader) init() error {
	var hdr [2]byte
	if _, err := io.ReadFull(r.in, hdr[:]); err != nil {
		return fmt.Errorf("reading stream key: %w", err)
	}
	wrapped := make([]byte, binary.BigEndian.Uint16(hdr[:]))
	if _, err := io.ReadFull(r.in, wrapped); err != nil {
		return fmt.Errorf("reading stream key: %w", err)
	}
	key, err := rsa.DecryptOAEP(sha256.New(), nil, r.local, wrapped, []byte(keyLabel))
	if err != nil {
		return fmt.Errorf("unwrapping stream key: %w", err)
	}
	defer memzero.Zero(key)
	r.aead, err = expand(key)
	return err
}

func (r *reader) read(p []byte) (int, error) {
	if len(r.rest) > 0 {
		n := copy(p, r.rest)
		r.rest = r.rest[n:]
		return n, nil
	}
	if r.aead == nil {
		if err := r.init(); err != nil {
			return 0, err
		}
	}

	var hdr [4]byte
	if _, err := io.ReadFull(r.in, hdr[:]); err != nil {
		return 0, err
	}
	size := binary.BigEndian.Uint32(hdr[:])
	if size > frameMax+uint32(chacha20poly1305.Overhead) {
		return 0, ErrFrameTooLarge
	}
	ct := make([]byte, size)
	if _, err := io.ReadFull(r.in, ct); err != nil {
		return 0, err
	}
	pt, err := r.aead.Open(nil, nonceFor(r.ctr), ct, nil)
	if err != nil {
		return 0, fmt.Errorf("frame %d failed authentication: %w", r.ctr, err)
	}
	r.ctr++

	n := copy(p, pt)
	r.rest = pt[n:]
	return n, nil
}
