package cryptoengine

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// GenerateSigningKey creates a fresh Ed25519 keypair for signing audit
// log entries.
func GenerateSigningKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("cryptoengine: generate ed25519 key: %w", err)
	}
	return pub, priv, nil
}

// Sign produces a detached Ed25519 signature over data.
func Sign(priv ed25519.PrivateKey, data []byte) []byte {
	return ed25519.Sign(priv, data)
}

// Verify reports whether sig is a valid Ed25519 signature over data
// under pub. It never panics or returns an error on an invalid
// signature — a malformed signature is simply "not valid".
func Verify(pub ed25519.PublicKey, data, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, data, sig)
}
