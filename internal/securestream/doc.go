// Package securestream wraps an insecure byte stream in authenticated
// encryption keyed from the two parties' long-lived RSA keys.
//
// # Design
//
// Each direction is keyed independently: the sender generates a fresh random
// stream key, wraps it with RSA-OAEP(SHA-256) under the receiver's public
// key, and sends the wrapped key as a small header before the first frame.
// The stream key is expanded with HKDF-SHA256 into a ChaCha20-Poly1305 key,
// and data then flows as length-prefixed AEAD frames with a monotonically
// increasing counter nonce.
//
// Confidentiality holds against anyone without the receiver's private key;
// frame authentication plus the counter nonce rejects tampering, replay and
// reordering within a stream. The handshake protocol above this layer is
// what binds the keys to verified identities.
package securestream
