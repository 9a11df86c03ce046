package domain

import (
	"crypto/rsa"
	"crypto/x509"
	"errors"
)

// Fingerprint is a short hex digest of a certificate public key, used for
// display and operator-facing authorization decisions.
type Fingerprint string

// Identity holds the long-lived key material of the local party: an X.509
// certificate carrying the public key, and the matching RSA private key.
//
// The certificate is only a carrier for the public key; whether the peer
// behind it is trusted is decided by the Listener, not by chain validation.
// An Identity is created once at startup and reused, read-only, across all
// concurrent handshake attempts.
type Identity struct {
	Certificate *x509.Certificate
	Key         *rsa.PrivateKey
}

var (
	// ErrNoIdentity is returned when no identity has been provisioned yet.
	ErrNoIdentity = errors.New("no identity provisioned")

	// ErrKeyMismatch is returned when the private key is not the pair of the
	// public key embedded in the certificate.
	ErrKeyMismatch = errors.New("private key does not match certificate public key")
)

// Validate checks the key-pairing invariant: Key must be the cryptographic
// pair of the public key embedded in Certificate.
func (id Identity) Validate() error {
	if id.Certificate == nil || id.Key == nil {
		return ErrNoIdentity
	}
	pub, ok := id.Certificate.PublicKey.(*rsa.PublicKey)
	if !ok {
		return ErrKeyMismatch
	}
	if pub.N.Cmp(id.Key.N) != 0 || pub.E != id.Key.E {
		return ErrKeyMismatch
	}
	return nil
}
