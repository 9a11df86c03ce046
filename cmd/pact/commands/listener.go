package commands

import (
	"crypto/x509"
	"errors"
	"io"
	"net/url"

	"github.com/rs/zerolog/log"

	"pact/internal/channel"
	"pact/internal/crypto"
	"pact/internal/protocol/handshake"
)

// nodeListener is the CLI's handshake policy: optionally restrict peers to a
// fingerprint allow-list, then hand the channel to serve.
type nodeListener struct {
	addr  *url.URL
	allow map[string]bool // empty means accept any verified identity
	serve func(ch *channel.Channel) error
}

func newNodeListener(rawURL string, allow []string) (*nodeListener, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(allow))
	for _, fp := range allow {
		set[fp] = true
	}
	return &nodeListener{addr: u, allow: set}, nil
}

func (l *nodeListener) LocalAddress() (*url.URL, error) {
	if l.addr == nil {
		return nil, errors.New("local contact URL is not configured")
	}
	return l.addr, nil
}

func (l *nodeListener) OnConnecting(peer *url.URL, cert *x509.Certificate) error {
	fp := crypto.Fingerprint(cert)
	if len(l.allow) > 0 && !l.allow[fp] {
		return handshake.Refuse("certificate " + fp + " is not authorized")
	}
	log.Info().Str("peer", peer.String()).Str("fingerprint", fp).Msg("peer verified, accepting")
	return nil
}

func (l *nodeListener) OnConnected(ch *channel.Channel, cert *x509.Certificate) error {
	log.Info().Str("channel", ch.Name()).Str("fingerprint", crypto.Fingerprint(cert)).Msg("channel established")
	if l.serve == nil {
		return nil
	}
	return l.serve(ch)
}

// echoLoop answers every string message with itself until the peer hangs up.
func echoLoop(ch *channel.Channel) error {
	for {
		var msg string
		if err := ch.Recv(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		log.Debug().Str("msg", msg).Msg("echoing")
		if err := ch.Send(msg); err != nil {
			return err
		}
	}
}
