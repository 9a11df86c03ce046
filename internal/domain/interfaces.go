package domain

import (
	"crypto/x509"
	"io"
	"net/url"

	"pact/internal/channel"
)

// Conn is the untrusted byte-stream the handshake runs over. It provides
// typed read/write of handshake values and a key-agreement primitive that,
// given a role flag, yields the per-attempt shared secret.
type Conn interface {
	// WriteObject writes one structured value to the connection.
	WriteObject(v any) error

	// ReadObject reads one structured value from the connection into v.
	ReadObject(v any) error

	// DeriveSecret performs the key agreement over the connection and
	// returns the shared session secret. The initiator and responder take
	// opposite roles in the same two-message exchange; this flag is the
	// only place the two roles differ.
	DeriveSecret(initiator bool) ([]byte, error)

	// Stream exposes the raw byte stream so the encrypted channel can be
	// layered over it once the handshake approves the connection.
	Stream() io.ReadWriter
}

// Listener receives the progress of a handshake attempt and makes the key
// decisions. Implementations may be invoked concurrently across attempts and
// own whatever locking they need; the engine only promises that each method
// is called at most once per attempt, synchronously from that attempt.
type Listener interface {
	// LocalAddress returns our contact URL, sent to the peer in the
	// handshake message. An error aborts the attempt before anything is
	// sent.
	LocalAddress() (*url.URL, error)

	// OnConnecting is called after the peer's identity has been verified,
	// to decide whether we are willing to establish a channel. Return nil
	// to accept, or a refusal error (see protocol/handshake.Refuse) to
	// decline in a way whose reason the peer will learn.
	OnConnecting(peer *url.URL, cert *x509.Certificate) error

	// OnConnected is called exactly once when the encrypted channel is
	// fully established.
	OnConnected(ch *channel.Channel, cert *x509.Certificate) error
}

// IdentityStore persists the local identity key pair and certificate.
type IdentityStore interface {
	SaveIdentity(passphrase string, id Identity) error
	LoadIdentity(passphrase string) (Identity, error)
}

// IdentityService provisions and inspects the local identity.
type IdentityService interface {
	// LoadOrCreate loads the stored identity, or generates a key pair and
	// a self-signed certificate for subject if none exists yet.
	LoadOrCreate(passphrase, subject string) (Identity, Fingerprint, error)

	// Fingerprint returns the fingerprint of the stored identity.
	Fingerprint(passphrase string) (Fingerprint, error)
}
