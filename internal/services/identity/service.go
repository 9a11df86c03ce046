package identity

import (
	"errors"
	"fmt"
	"time"

	"pact/internal/crypto"
	"pact/internal/domain"
)

// Service manages the local instance identity: the long-lived RSA key pair
// and the self-signed certificate that carries its public key. The identity
// is created once and then reused, read-only, by every handshake attempt.
type Service struct {
	store domain.IdentityStore
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore) *Service { return &Service{store: s} }

// LoadOrCreate returns the stored identity, generating and persisting a new
// one when none exists. The subject (normally the local contact address
// string) becomes the certificate's common name.
func (s *Service) LoadOrCreate(passphrase, subject string) (domain.Identity, domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err == nil {
		return id, domain.Fingerprint(crypto.Fingerprint(id.Certificate)), nil
	}
	if !errors.Is(err, domain.ErrNoIdentity) {
		return domain.Identity{}, "", err
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("generating identity key: %w", err)
	}
	cert, err := crypto.SelfSigned(key, subject, time.Now())
	if err != nil {
		return domain.Identity{}, "", err
	}
	id = domain.Identity{Certificate: cert, Key: key}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, "", err
	}
	return id, domain.Fingerprint(crypto.Fingerprint(cert)), nil
}

// Fingerprint returns the fingerprint of the stored identity's public key.
func (s *Service) Fingerprint(passphrase string) (domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(id.Certificate)), nil
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
