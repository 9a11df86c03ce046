package handshake

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"pact/internal/channel"
	"pact/internal/crypto"
	"pact/internal/domain"
	"pact/internal/securestream"
	"pact/internal/util/memzero"
)

// Role selects which side of the key agreement this engine drives. It is the
// only difference between the two ends of the protocol.
type Role int

const (
	Initiator Role = iota
	Responder
)

func (r Role) String() string {
	if r == Initiator {
		return "initiator"
	}
	return "responder"
}

// Result is the successful outcome of a handshake attempt.
type Result struct {
	Channel     *channel.Channel
	Peer        *x509.Certificate
	PeerAddress *url.URL
}

// Engine drives one side of the handshake. It is safe to reuse across many
// connections; each Run owns its attempt exclusively.
type Engine struct {
	identity domain.Identity
	role     Role
	listener domain.Listener
}

// New builds an engine for the given role. The identity's key-pairing
// invariant is checked up front so a misconfigured identity fails fast
// rather than mid-handshake.
func New(id domain.Identity, role Role, l domain.Listener) (*Engine, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("handshake: nil listener")
	}
	return &Engine{identity: id, role: role, listener: l}, nil
}

// Run executes one handshake attempt on conn. Any error is terminal for the
// attempt; callers who retry must do so on a fresh connection, which yields a
// fresh session secret. A *RefusalError (local or remote) is returned for
// graceful refusals; everything else is a protocol or transport failure.
func (e *Engine) Run(conn domain.Conn) (Result, error) {
	secret, err := conn.DeriveSecret(e.role == Initiator)
	if err != nil {
		return Result{}, fmt.Errorf("deriving session secret: %w", err)
	}
	defer memzero.Zero(secret)

	if err := e.send(conn, secret); err != nil {
		return Result{}, err
	}
	peer, addr, err := e.receive(conn, secret)
	if err != nil {
		return Result{}, err
	}
	ch, err := e.connect(conn, peer)
	if err != nil {
		return Result{}, err
	}
	return Result{Channel: ch, Peer: peer, PeerAddress: addr}, nil
}

// send signs the session secret and writes our handshake message. The local
// address is resolved first: if it is unavailable nothing is sent at all.
func (e *Engine) send(conn domain.Conn, secret []byte) error {
	addr, err := e.listener.LocalAddress()
	if err != nil {
		return fmt.Errorf("local address unavailable: %w", err)
	}
	sig, err := crypto.SignSecret(e.identity.Key, secret)
	if err != nil {
		return fmt.Errorf("signing session secret: %w", err)
	}
	msg := Message{
		Identity:  e.identity.Certificate.Raw,
		Address:   addr.String(),
		Signature: sig,
	}
	log.Debug().
		Stringer("role", e.role).
		Str("address", msg.Address).
		Msg("sending handshake message")
	if err := conn.WriteObject(msg); err != nil {
		return fmt.Errorf("sending handshake message: %w", err)
	}
	return nil
}

// receive reads and verifies the peer's handshake message, then runs the
// accept/refuse exchange. On success it returns the verified certificate and
// the peer's contact address.
func (e *Engine) receive(conn domain.Conn, secret []byte) (*x509.Certificate, *url.URL, error) {
	var msg Message
	if err := conn.ReadObject(&msg); err != nil {
		return nil, nil, fmt.Errorf("reading handshake message: %w", err)
	}
	if len(msg.Identity) == 0 {
		return nil, nil, ErrMissingIdentity
	}
	peer, err := x509.ParseCertificate(msg.Identity)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMissingIdentity, err)
	}
	addr, err := url.Parse(msg.Address)
	if err != nil || msg.Address == "" || addr.Scheme == "" {
		return nil, nil, fmt.Errorf("%w: %q", ErrMalformedAddress, msg.Address)
	}

	if err := crypto.VerifySecret(peer, secret, msg.Signature); err != nil {
		log.Warn().
			Stringer("role", e.role).
			Str("peer", msg.Address).
			Str("fingerprint", crypto.Fingerprint(peer)).
			Msg("handshake signature mismatch; possible impersonation attempt")
		return nil, nil, ErrSignatureMismatch
	}
	log.Debug().
		Stringer("role", e.role).
		Str("peer", msg.Address).
		Str("fingerprint", crypto.Fingerprint(peer)).
		Msg("peer identity verified")

	// The identity checks out; now the Listener decides whether we want to
	// talk to its owner at all.
	if err := e.listener.OnConnecting(addr, peer); err != nil {
		if ref, ok := IsRefusal(err); ok {
			// Tell the peer why, then abort this side too. We do not wait
			// for the peer's own signal: this side is unilaterally done.
			if werr := conn.WriteObject(Signal{Refused: true, Reason: ref.Reason}); werr != nil {
				log.Debug().Err(werr).Msg("could not deliver refusal to peer")
			}
			return nil, nil, ref
		}
		// Not a graceful refusal: fail the attempt without revealing the
		// reason to the peer.
		return nil, nil, fmt.Errorf("listener aborted handshake: %w", err)
	}
	if err := conn.WriteObject(Signal{}); err != nil {
		return nil, nil, fmt.Errorf("sending acceptance: %w", err)
	}

	// Both sides must accept. Block until the peer's decision arrives.
	var peerSignal Signal
	if err := conn.ReadObject(&peerSignal); err != nil {
		return nil, nil, fmt.Errorf("reading peer decision: %w", err)
	}
	if peerSignal.Refused {
		return nil, nil, &RefusalError{Reason: peerSignal.Reason, Remote: true}
	}
	return peer, addr, nil
}

// connect layers the encrypted stream over the raw connection, builds the
// object channel and hands it to the Listener.
func (e *Engine) connect(conn domain.Conn, peer *x509.Certificate) (*channel.Channel, error) {
	pub, ok := peer.PublicKey.(*rsa.PublicKey)
	if !ok {
		// Unreachable after signature verification, but connect must not
		// depend on that ordering.
		return nil, crypto.ErrNotRSA
	}
	stream := securestream.New(conn.Stream(), e.identity.Key, pub)
	ch := channel.New(e.role.String()+"-channel", stream)
	if err := e.listener.OnConnected(ch, peer); err != nil {
		return nil, fmt.Errorf("channel setup: %w", err)
	}
	return ch, nil
}
