package handshake

// Message is the handshake payload exchanged once in each direction.
//
// The field names are part of the wire format and must not change without a
// protocol version bump: Identity carries the sender's certificate in DER
// form, Address its contact URL, and Signature the SHA1withRSA signature
// over the raw session secret.
type Message struct {
	Identity  []byte
	Address   string
	Signature []byte
}

// Signal is the accept/refuse notice exchanged after identity verification.
// The zero value is the explicit "accepted" marker.
type Signal struct {
	Refused bool
	Reason  string
}
