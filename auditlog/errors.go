package auditlog

import "errors"

var (
	// ErrChainBroken is returned when a record's prev_hash does not match
	// the SHA-256 of the previous line as written.
	ErrChainBroken = errors.New("auditlog: chain broken")
	// ErrEntryCorrupt is returned when a record's current_hash does not
	// match the recomputed canonical hash.
	ErrEntryCorrupt = errors.New("auditlog: entry corrupt")
	// ErrSignatureInvalid is returned when a record's signature fails
	// Ed25519 verification against the supplied public key.
	ErrSignatureInvalid = errors.New("auditlog: signature invalid")
	// ErrLogIO wraps any failure reading or writing the log file.
	ErrLogIO = errors.New("auditlog: log I/O failed")
)
