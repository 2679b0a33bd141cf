package vault

import (
	"context"
	"crypto/ed25519"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ursafe/vault-engine/auditlog"
	"github.com/ursafe/vault-engine/vaultfile"
	"github.com/ursafe/vault-engine/verify"
)

// VolumeSignatureFunc returns an identifier for the removable medium
// mounted at mount. Host/volume identification is treated as an
// external collaborator: the core only ever consumes the string this
// returns, never computes one itself.
type VolumeSignatureFunc func(mount string) string

// Verify runs the six-step verification protocol without touching any
// session state.
func Verify(mount string, fingerprint FingerprintFunc, volumeSignature VolumeSignatureFunc) (verify.Result, error) {
	fpHex, err := fingerprint()
	if err != nil {
		return verify.Result{}, err
	}
	return verify.Check(mount, fpHex, volumeSignature(mount)), nil
}

// Initialize creates a new vault at mount. overwrite permits
// re-initializing a mount that already carries a vault.
func Initialize(ctx context.Context, mount, pin string, fingerprint FingerprintFunc, overwrite bool, hostChunkDir string, log *logrus.Logger) error {
	return NewSession(mount, hostChunkDir, log).Initialize(ctx, pin, fingerprint, overwrite)
}

// Unlock opens the vault at mount and returns its entries without
// exposing a session handle. The session is locked (key discarded)
// before returning.
func Unlock(ctx context.Context, mount, pin string, fingerprint FingerprintFunc, hostChunkDir string, log *logrus.Logger) (vaultfile.Entries, error) {
	s := NewSession(mount, hostChunkDir, log)
	entries, err := s.Unlock(ctx, pin, fingerprint)
	if err != nil {
		return nil, err
	}
	if lockErr := s.Lock(ctx); lockErr != nil {
		return nil, lockErr
	}
	return entries, nil
}

// Save re-derives the vault key from mount and pin, then writes
// entries, without ever exposing a session handle to the caller.
func Save(ctx context.Context, mount, pin string, entries vaultfile.Entries, fingerprint FingerprintFunc, hostChunkDir string, log *logrus.Logger) error {
	s := NewSession(mount, hostChunkDir, log)
	if _, err := s.Unlock(ctx, pin, fingerprint); err != nil {
		return err
	}
	return s.Save(ctx, entries)
}

// DeleteAll unlocks (proving PIN knowledge) then removes the vault
// and its host shares in full.
func DeleteAll(ctx context.Context, mount, pin string, fingerprint FingerprintFunc, hostChunkDir string, log *logrus.Logger) error {
	s := NewSession(mount, hostChunkDir, log)
	if _, err := s.Unlock(ctx, pin, fingerprint); err != nil {
		return err
	}
	return s.DeleteAll(ctx)
}

// LogAppend appends one record to the audit log at mount.
func LogAppend(mount, action string, signKey ed25519.PrivateKey, log *logrus.Logger) (auditlog.Record, error) {
	paths := logchainPath(mount)
	return auditlog.Append(paths, action, signKey, log)
}

// LogVerify walks and validates the audit log chain at mount.
func LogVerify(mount string, pubKey ed25519.PublicKey) (bool, error) {
	paths := logchainPath(mount)
	if _, err := auditlog.Verify(paths, pubKey); err != nil {
		return false, err
	}
	return true, nil
}

func logchainPath(mount string) string {
	return filepath.Join(vaultfile.PathsFor(mount).Dir, "logchain.json")
}
