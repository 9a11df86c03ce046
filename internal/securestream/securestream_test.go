package securestream

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"testing"
)

func testKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PrivateKey) {
	t.Helper()
	a, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	b, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return a, b
}

// onewayPipe joins a writer-side stream to a reader-side stream through an
// in-memory buffer.
type onewayPipe struct {
	bytes.Buffer
}

func TestRoundTrip(t *testing.T) {
	alice, bob := testKeys(t)
	var wire onewayPipe

	sender := New(&wire, alice, &bob.PublicKey)
	receiver := New(&wire, bob, &alice.PublicKey)

	msg := []byte("attack at dawn")
	if _, err := sender.Write(msg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := make([]byte, len(msg))
	if _, err := io.ReadFull(receiver, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("got %q", got)
	}
}

func TestLargePayloadSpansFrames(t *testing.T) {
	alice, bob := testKeys(t)
	var wire onewayPipe

	sender := New(&wire, alice, &bob.PublicKey)
	receiver := New(&wire, bob, &alice.PublicKey)

	big := make([]byte, 3*frameMax+17)
	if _, err := rand.Read(big); err != nil {
		t.Fatalf("rand: %v", err)
	}
	if n, err := sender.Write(big); err != nil || n != len(big) {
		t.Fatalf("Write = %d, %v", n, err)
	}
	got := make([]byte, len(big))
	if _, err := io.ReadFull(receiver, got); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, big) {
		t.Fatal("large payload corrupted in transit")
	}
}

func TestWrongPrivateKeyCannotRead(t *testing.T) {
	alice, bob := testKeys(t)
	eve, _ := testKeys(t)
	var wire onewayPipe

	sender := New(&wire, alice, &bob.PublicKey)
	if _, err := sender.Write([]byte("secret")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	eavesdropper := New(&wire, eve, &alice.PublicKey)
	buf := make([]byte, 6)
	if _, err := eavesdropper.Read(buf); err == nil {
		t.Fatal("a third party unwrapped the stream key")
	}
}

func TestTamperedFrameFailsAuthentication(t *testing.T) {
	alice, bob := testKeys(t)
	var wire onewayPipe

	sender := New(&wire, alice, &bob.PublicKey)
	if _, err := sender.Write([]byte("integrity matters")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Flip one bit in the last byte on the wire (inside the AEAD frame).
	raw := wire.Bytes()
	raw[len(raw)-1] ^= 0x01

	receiver := New(&wire, bob, &alice.PublicKey)
	buf := make([]byte, 32)
	if _, err := receiver.Read(buf); err == nil {
		t.Fatal("tampered frame decrypted cleanly")
	}
}
