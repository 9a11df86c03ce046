package store

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pact/internal/domain"
)

const (
	keyFilename  = "identity.key.enc"
	certFilename = "identity.crt"
)

// FileStore persists the local identity under a directory: the private key
// as an encrypted keystore blob, the certificate as plain PEM (it is public
// material).
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// SaveIdentity writes the key and certificate to disk.
func (s *FileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, err := seal(passphrase, x509.MarshalPKCS1PrivateKey(id.Key))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, keyFilename), ct, 0o600); err != nil {
		return err
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: id.Certificate.Raw})
	return os.WriteFile(filepath.Join(s.dir, certFilename), certPEM, 0o644)
}

// LoadIdentity reads and decrypts the identity. It returns
// domain.ErrNoIdentity when nothing has been provisioned yet, and checks the
// key/certificate pairing invariant before returning.
func (s *FileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ct, err := os.ReadFile(filepath.Join(s.dir, keyFilename))
	if errors.Is(err, os.ErrNotExist) {
		return domain.Identity{}, domain.ErrNoIdentity
	}
	if err != nil {
		return domain.Identity{}, err
	}
	raw, err := open(passphrase, ct)
	if err != nil {
		return domain.Identity{}, err
	}
	key, err := x509.ParsePKCS1PrivateKey(raw)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parsing identity key: %w", err)
	}

	certPEM, err := os.ReadFile(filepath.Join(s.dir, certFilename))
	if err != nil {
		return domain.Identity{}, err
	}
	block, _ := pem.Decode(certPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		return domain.Identity{}, fmt.Errorf("malformed certificate file %s", certFilename)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parsing identity certificate: %w", err)
	}

	id := domain.Identity{Certificate: cert, Key: key}
	if err := id.Validate(); err != nil {
		return domain.Identity{}, err
	}
	return id, nil
}

// Compile-time assertion that FileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*FileStore)(nil)
