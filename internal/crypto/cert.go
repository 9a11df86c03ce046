package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"time"
)

// certValidity is the fixed validity window of synthesized certificates.
const certValidity = 365 * 24 * time.Hour

// SelfSigned synthesizes a short-lived self-signed certificate binding the
// key pair to subject (typically the local contact address string).
//
// The fields are fixed for interoperability with the historical format:
// serial number 1, validity exactly 365 days from now, SHA1withRSA
// signature. The certificate carries no chain; whether to trust the key
// behind it is the Listener's decision.
func SelfSigned(key *rsa.PrivateKey, subject string, now time.Time) (*x509.Certificate, error) {
	tmpl := x509.Certificate{
		SerialNumber:       big.NewInt(1),
		Subject:            pkix.Name{CommonName: subject, Country: []string{"US"}},
		NotBefore:          now,
		NotAfter:           now.Add(certValidity),
		SignatureAlgorithm: x509.SHA1WithRSA,
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("generating certificate: %w", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsing generated certificate: %w", err)
	}
	return cert, nil
}
