// Package store persists the local identity on disk. The private key is
// sealed with a passphrase-derived key (scrypt + ChaCha20-Poly1305); the
// certificate is stored as plain PEM.
package store
