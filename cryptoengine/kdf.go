package cryptoengine

import "golang.org/x/crypto/argon2"

// Argon2id parameters. These are fixed, not a runtime tunable: they
// are part of the on-disk/derivation compatibility surface and must
// never be changed without a versioned format bump.
const (
	ArgonTime    = 2
	ArgonMemory  = 65536 // KiB (64 MiB)
	ArgonThreads = 2
	ArgonKeyLen  = KeySize
)

// DeriveKey runs Argon2id over password with salt, returning a
// 32-byte key. The output length always equals ArgonKeyLen; salt may
// be any length the caller supplies (callers in this module use a
// 16-byte salt throughout).
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, ArgonTime, ArgonMemory, ArgonThreads, ArgonKeyLen)
}
