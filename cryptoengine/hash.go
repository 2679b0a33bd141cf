package cryptoengine

import "crypto/sha256"

// Hash returns the 32-byte SHA-256 digest of data.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}
