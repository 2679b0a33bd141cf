// Package mem provides helpers for wiping sensitive byte buffers from
// memory once they are no longer needed.
package mem

import "runtime"

// ClearBytes overwrites every byte of b with zero. It is a no-op for a
// nil or empty slice.
//
// A single zero-fill pass is sufficient for the in-process RAM this
// package targets (vault keys, reconstructed host secrets, decrypted
// plaintext); it is not a defense against cold-boot or DMA attacks.
func ClearBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	for i := range b {
		b[i] = 0
	}
	// Prevent the compiler from eliding the loop above as a dead store.
	runtime.KeepAlive(b)
}

// ClearAll wipes every slice passed in, in order.
func ClearAll(bs ...[]byte) {
	for _, b := range bs {
		ClearBytes(b)
	}
}
