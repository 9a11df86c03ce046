package crypto

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
)

// Fingerprint returns a short hex fingerprint of a certificate's public key.
//
// It hashes the DER-encoded SubjectPublicKeyInfo with SHA-256 and truncates
// to 10 bytes (20 hex chars).
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return hex.EncodeToString(sum[:10])
}
