package crypto

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"errors"
)

// ErrNotRSA is returned when a peer certificate carries a non-RSA public key.
var ErrNotRSA = errors.New("certificate public key is not RSA")

// SignSecret signs the raw session secret with SHA1withRSA.
//
// SHA-1 here is a compatibility constant of the historical wire format: the
// signature only ever covers a fresh random secret that both sides already
// hold, so collision resistance of the digest is not load-bearing. Changing
// the algorithm requires a protocol version bump.
func SignSecret(key *rsa.PrivateKey, secret []byte) ([]byte, error) {
	digest := sha1.Sum(secret)
	return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA1, digest[:])
}

// VerifySecret verifies a SHA1withRSA signature over the session secret using
// the public key carried by cert.
func VerifySecret(cert *x509.Certificate, secret, sig []byte) error {
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return ErrNotRSA
	}
	digest := sha1.Sum(secret)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA1, digest[:], sig)
}
