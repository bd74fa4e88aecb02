// Package identity models the principals that may act on the randomness
// state object, and the capability check that gates mutation to the single
// privileged system principal.
package identity

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// Principal identifies a caller as "<alg>:" + base64(public key).
// Supported algorithms: ed25519, dilithium3.
type Principal string

const (
	AlgEd25519    = "ed25519"
	AlgDilithium3 = "dilithium3"
)

// FromEd25519Seed returns the principal for an Ed25519 seed.
func FromEd25519Seed(seed []byte) (Principal, error) {
	if len(seed) != ed25519.SeedSize {
		return "", fmt.Errorf("identity: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return Principal(AlgEd25519 + ":" + base64.StdEncoding.EncodeToString(pub)), nil
}

// FromDilithium3PublicKey returns the principal for a Dilithium3 public key.
func FromDilithium3PublicKey(pub *mode3.PublicKey) (Principal, error) {
	if pub == nil {
		return "", fmt.Errorf("identity: missing public key")
	}
	b, err := pub.MarshalBinary()
	if err != nil {
		return "", err
	}
	return Principal(AlgDilithium3 + ":" + base64.StdEncoding.EncodeToString(b)), nil
}

// Alg returns the algorithm prefix of the principal, or "".
func (p Principal) Alg() string {
	i := strings.IndexByte(string(p), ':')
	if i < 0 {
		return ""
	}
	return string(p)[:i]
}

// PublicKeyBytes returns the decoded public key of the principal.
func (p Principal) PublicKeyBytes() ([]byte, error) {
	i := strings.IndexByte(string(p), ':')
	if i < 0 {
		return nil, fmt.Errorf("identity: malformed principal %q", string(p))
	}
	b, err := base64.StdEncoding.DecodeString(string(p)[i+1:])
	if err != nil {
		return nil, fmt.Errorf("identity: malformed principal key: %w", err)
	}
	return b, nil
}
