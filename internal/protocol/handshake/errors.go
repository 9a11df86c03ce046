package handshake

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentity is returned when the peer's handshake message
	// carries no certificate.
	ErrMissingIdentity = errors.New("peer did not present an identity")

	// ErrMalformedAddress is returned when the peer's address field does
	// not parse as an absolute URL.
	ErrMalformedAddress = errors.New("peer address is not a valid URL")

	// ErrSignatureMismatch is returned when the peer's signature over the
	// session secret does not verify under the certificate it presented.
	// This is the impersonation case and is logged distinctly from
	// ordinary transport failures.
	ErrSignatureMismatch = errors.New("handshake signature mismatch")
)

// RefusalError is the graceful-refusal outcome: one side's Listener declined
// the verified peer. Unlike every other failure, its Reason is deliberately
// disclosed to the other party.
type RefusalError struct {
	Reason string
	Remote bool // true when the refusal came from the peer
}

func (e *RefusalError) Error() string {
	if e.Remote {
		return fmt.Sprintf("connection refused by peer: %s", e.Reason)
	}
	return fmt.Sprintf("connection refused: %s", e.Reason)
}

// Refuse builds the error a Listener returns from OnConnecting to decline a
// connection in a way that lets the peer learn the reason.
func Refuse(reason string) *RefusalError {
	return &RefusalError{Reason: reason}
}

// IsRefusal reports whether err is a graceful refusal, returning it if so.
func IsRefusal(err error) (*RefusalError, bool) {
	var ref *RefusalError
	if errors.As(err, &ref) {
		return ref, true
	}
	return nil, false
}
