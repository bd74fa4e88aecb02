package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

func TestEd25519_SignVerify(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	p, err := FromEd25519Seed(seed)
	if err != nil {
		t.Fatalf("FromEd25519Seed: %v", err)
	}
	if p.Alg() != AlgEd25519 {
		t.Fatalf("Alg: got %q", p.Alg())
	}

	msg := []byte("update envelope bytes")
	sig := SignEd25519(msg, priv)

	if err := Verify(p, msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify(p, []byte("other message"), sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Verify wrong message: got err=%v want ErrBadSignature", err)
	}

	sig[0] ^= 0x01
	if err := Verify(p, msg, sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Verify tampered sig: got err=%v want ErrBadSignature", err)
	}
}

func TestDilithium3_SignVerify(t *testing.T) {
	pub, priv, err := mode3.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	p, err := FromDilithium3PublicKey(pub)
	if err != nil {
		t.Fatalf("FromDilithium3PublicKey: %v", err)
	}
	if p.Alg() != AlgDilithium3 {
		t.Fatalf("Alg: got %q", p.Alg())
	}

	msg := []byte("update envelope bytes")
	sig, err := SignDilithium3(msg, priv)
	if err != nil {
		t.Fatalf("SignDilithium3: %v", err)
	}

	if err := Verify(p, msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := Verify(p, []byte("other"), sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("Verify wrong message: got err=%v want ErrBadSignature", err)
	}
}

func TestVerify_RejectsMalformedPrincipals(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
	}{
		{name: "no alg prefix", p: Principal("QUJD")},
		{name: "unknown alg", p: Principal("rsa:QUJD")},
		{name: "bad base64", p: Principal("ed25519:!!!")},
		{name: "wrong key size", p: Principal("ed25519:QUJD")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := Verify(tc.p, []byte("m"), []byte("s")); err == nil {
				t.Fatalf("expected error for principal %q", tc.p)
			}
		})
	}
}

func TestFromEd25519Seed_RejectsBadSeed(t *testing.T) {
	if _, err := FromEd25519Seed([]byte("short")); err == nil {
		t.Fatalf("expected error for short seed")
	}
}
