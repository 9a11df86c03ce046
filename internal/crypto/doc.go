// Package crypto exposes the minimal primitives used by pact.
//
// Contents
//
//   - RSA key generation for the long-lived identity (GenerateKey)
//   - SHA1withRSA signing and verification of the session secret
//     (SignSecret, VerifySecret)
//   - Self-signed X.509 certificate synthesis (SelfSigned)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// The SHA1withRSA signature algorithm is a wire-compatibility constant of
// the handshake protocol, not a free choice; see SignSecret. Callers should
// treat session secrets as sensitive and wipe them when practical to reduce
// lifetime in memory.
package crypto
