package store

import (
	"errors"
	"testing"
	"time"

	"pact/internal/crypto"
	"pact/internal/domain"
)

func testIdentity(t *testing.T) domain.Identity {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	cert, err := crypto.SelfSigned(key, "http://store.test/", time.Now())
	if err != nil {
		t.Fatalf("SelfSigned: %v", err)
	}
	return domain.Identity{Certificate: cert, Key: key}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewFileStore(t.TempDir())
	id := testIdentity(t)

	if err := s.SaveIdentity("correct horse", id); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	got, err := s.LoadIdentity("correct horse")
	if err != nil {
		t.Fatalf("LoadIdentity: %v", err)
	}
	if got.Key.N.Cmp(id.Key.N) != 0 {
		t.Fatal("loaded key differs from saved key")
	}
	if !got.Certificate.Equal(id.Certificate) {
		t.Fatal("loaded certificate differs from saved certificate")
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if err := s.SaveIdentity("right", testIdentity(t)); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}
	if _, err := s.LoadIdentity("wrong"); !errors.Is(err, ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestLoadMissingIdentity(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if _, err := s.LoadIdentity("whatever"); !errors.Is(err, domain.ErrNoIdentity) {
		t.Fatalf("err = %v, want ErrNoIdentity", err)
	}
}

func TestSaveRejectsMismatchedPair(t *testing.T) {
	s := NewFileStore(t.TempDir())
	a := testIdentity(t)
	b := testIdentity(t)

	bad := domain.Identity{Certificate: a.Certificate, Key: b.Key}
	if err := s.SaveIdentity("pw", bad); !errors.Is(err, domain.ErrKeyMismatch) {
		t.Fatalf("err = %v, want ErrKeyMismatch", err)
	}
}
