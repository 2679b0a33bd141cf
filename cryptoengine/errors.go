package cryptoengine

import "errors"

// Boundary and decryption errors. These are the only sentinel errors
// this package exposes; callers should use errors.Is against them.
var (
	// ErrInvalidKeySize is returned when a key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.New("cryptoengine: invalid key size")
	// ErrInvalidNonceSize is returned when a nonce is not exactly NonceSize bytes.
	ErrInvalidNonceSize = errors.New("cryptoengine: invalid nonce size")
	// ErrDecryptionFailed covers tag mismatch, wrong key, and truncated
	// ciphertext alike — AEAD authentication failures are deliberately
	// indistinguishable from each other at this layer.
	ErrDecryptionFailed = errors.New("cryptoengine: decryption failed")
)
