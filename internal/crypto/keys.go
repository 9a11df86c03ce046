package crypto

import (
	"crypto/rand"
	"crypto/rsa"
)

// identityKeyBits is the modulus size of generated identity keys.
const identityKeyBits = 2048

// GenerateKey returns a fresh RSA key pair for a long-lived identity.
func GenerateKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, identityKeyBits)
}
