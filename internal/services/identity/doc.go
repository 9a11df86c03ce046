// Package identity provisions the local instance identity used by the
// handshake: an RSA key pair plus a self-signed certificate, loaded from or
// created in the backing store.
package identity
