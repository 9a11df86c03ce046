// Package transport provides the concrete connection the handshake engine
// runs over: gob object framing and an ephemeral X25519 key agreement on top
// of any byte stream, with TCP and websocket constructors.
package transport
