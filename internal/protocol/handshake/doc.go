// Package handshake implements the mutual-authentication handshake that two
// parties run over an untrusted byte stream before establishing a channel.
//
// # Overview
//
// Each party holds a long-lived RSA key pair carried in an X.509 certificate.
// The certificate only transports the public key; it merely needs to be
// self-signed. Authentication hinges on each side signing a per-attempt
// session secret that both sides derive by key agreement over the
// connection, so a party that does not hold the private key matching the
// certificate it sent cannot produce an acceptable handshake message.
//
// # Flow
//
//	Initiator                                Responder
//	    |-- key agreement (two messages) -------|      both derive secret
//	    |-- Message{Identity,Address,Signature}>|
//	    |<- Message{Identity,Address,Signature}-|      both verify signature
//	    |           OnConnecting on both sides  |
//	    |-- Signal (accept or refuse) ----------|
//	    |<- Signal (accept or refuse) ----------|
//	    |== encrypted channel, OnConnected ====>|
//
// The two roles differ only in the flag passed to the connection's key
// agreement; every other step is identical.
//
// # Refusal
//
// A Listener declines a verified peer by returning a *RefusalError from
// OnConnecting. The reason string is sent to the peer, which surfaces it as
// its own *RefusalError with Remote set. A channel is established only if
// both sides signalled acceptance.
//
// # Errors
//
// ErrMissingIdentity, ErrMalformedAddress and ErrSignatureMismatch cover the
// protocol-violation and impersonation cases. All other failures wrap the
// underlying transport or crypto error. Every failure is terminal for the
// attempt; retrying means a fresh Run with a fresh session secret.
//
// # Security notes
//
// The session secret never crosses the wire, only its signature does. The
// engine performs no trust-chain validation of the peer certificate;
// authorization policy belongs entirely to the Listener. Refusal reasons are
// the only failure detail intentionally shared across the trust boundary.
package handshake
