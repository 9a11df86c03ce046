package identity

import (
	"testing"

	"pact/internal/store"
)

func TestLoadOrCreateIsStable(t *testing.T) {
	svc := New(store.NewFileStore(t.TempDir()))

	id1, fp1, err := svc.LoadOrCreate("pw", "http://node.test:9090/")
	if err != nil {
		t.Fatalf("LoadOrCreate (fresh): %v", err)
	}
	if id1.Certificate.Subject.CommonName != "http://node.test:9090/" {
		t.Fatalf("subject CN = %q", id1.Certificate.Subject.CommonName)
	}

	// A second call must load the same identity, not mint a new one.
	id2, fp2, err := svc.LoadOrCreate("pw", "http://other.test/")
	if err != nil {
		t.Fatalf("LoadOrCreate (existing): %v", err)
	}
	if fp1 != fp2 {
		t.Fatalf("fingerprint changed across loads: %s != %s", fp1, fp2)
	}
	if !id2.Certificate.Equal(id1.Certificate) {
		t.Fatal("certificate changed across loads")
	}

	fp, err := svc.Fingerprint("pw")
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if fp != fp1 {
		t.Fatalf("Fingerprint = %s, want %s", fp, fp1)
	}
}
