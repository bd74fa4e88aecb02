package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

var ErrBadSignature = errors.New("identity: signature verification failed")

// SignEd25519 signs sha256(message) with an Ed25519 private key.
func SignEd25519(message []byte, privateKey ed25519.PrivateKey) []byte {
	digest := sha256.Sum256(message)
	return ed25519.Sign(privateKey, digest[:])
}

// SignDilithium3 signs sha3-256(message) with a Dilithium3 private key.
func SignDilithium3(message []byte, privateKey *mode3.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("identity: missing private key")
	}
	digest := sha3.Sum256(message)
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(privateKey, digest[:], sig)
	return sig, nil
}

// Verify checks sig over message against the principal's public key, using
// the digest convention of the principal's algorithm (sha256 for ed25519,
// sha3-256 for dilithium3).
func Verify(p Principal, message, sig []byte) error {
	pub, err := p.PublicKeyBytes()
	if err != nil {
		return err
	}
	switch p.Alg() {
	case AlgEd25519:
		if len(pub) != ed25519.PublicKeySize {
			return fmt.Errorf("identity: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
		}
		digest := sha256.Sum256(message)
		if !ed25519.Verify(ed25519.PublicKey(pub), digest[:], sig) {
			return ErrBadSignature
		}
		return nil
	case AlgDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return fmt.Errorf("identity: malformed dilithium3 public key: %w", err)
		}
		digest := sha3.Sum256(message)
		if !mode3.Verify(&pk, digest[:], sig) {
			return ErrBadSignature
		}
		return nil
	default:
		return fmt.Errorf("identity: unsupported algorithm %q", p.Alg())
	}
}
