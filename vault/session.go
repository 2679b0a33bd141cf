// Package vault implements the vault session state machine —
// Initialize, Unlock, Save, Lock, and DeleteAll — over the
// cryptoengine, shamir, hostshares, vaultfile, and verify building
// blocks, plus a flat set of package-level convenience functions for
// callers that don't want to manage a session handle.
package vault

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ursafe/vault-engine/cryptoengine"
	"github.com/ursafe/vault-engine/hostshares"
	"github.com/ursafe/vault-engine/security/mem"
	"github.com/ursafe/vault-engine/shamir"
	"github.com/ursafe/vault-engine/vaultfile"
)

// State is the session's position in the Closed -> Unlocked -> Closed
// machine.
type State int

const (
	Closed State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "Unlocked"
	}
	return "Closed"
}

const (
	saltSize       = 16
	hostSecretSize = 32
	totalShares    = 20
	threshold      = 10
	hostShareCount = 10
)

// FingerprintFunc returns the current host's fingerprint as a
// hex-encoded string. Host identification is treated as an external
// collaborator: the session only ever consumes the string this
// returns, hex-encoded to match how it is stored in metadata.
type FingerprintFunc func() (string, error)

// Session holds one vault's Closed/Unlocked state. It is not
// goroutine-safe and provides no locking: concurrent sessions against
// the same vault yield undefined data ordering and are unsupported.
type Session struct {
	mount        string
	hostChunkDir string
	log          *logrus.Logger

	state    State
	vaultKey []byte
}

// NewSession constructs a session bound to mount. hostChunkDir
// overrides the platform-default host share directory when non-empty
// (see hostshares.Dir); log may be nil to disable logging.
func NewSession(mount string, hostChunkDir string, log *logrus.Logger) *Session {
	return &Session{
		mount:        mount,
		hostChunkDir: hostshares.Dir(hostChunkDir),
		log:          log,
		state:        Closed,
	}
}

// State reports the session's current state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) fields(opID, op string) logrus.Fields {
	return logrus.Fields{"op_id": opID, "op": op, "mount": s.mount}
}

// Initialize creates a new vault at the session's mount: a fresh salt
// and host secret, Shamir-split 10-of-20 between the host share
// directory and metadata, and an empty encrypted container bound to
// pin, the current fingerprint, and this host. If .ursafe/ already
// exists at the mount, Initialize fails with ErrAlreadyInitialized
// unless overwrite is true.
func (s *Session) Initialize(ctx context.Context, pin string, fingerprint FingerprintFunc, overwrite bool) error {
	opID := uuid.NewString()
	log := s.log
	if log != nil {
		log.WithFields(s.fields(opID, "initialize")).Info("initializing vault")
	}

	paths := vaultfile.PathsFor(s.mount)

	if !overwrite {
		if _, err := os.Stat(paths.Dir); err == nil {
			return ErrAlreadyInitialized
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("vault: generate salt: %w", err)
	}
	hostSecret := make([]byte, hostSecretSize)
	if _, err := rand.Read(hostSecret); err != nil {
		return fmt.Errorf("vault: generate host secret: %w", err)
	}
	defer mem.ClearBytes(hostSecret)

	fpHex, err := fingerprint()
	if err != nil {
		return fmt.Errorf("vault: capture fingerprint: %w", err)
	}
	fpBytes, err := hex.DecodeString(fpHex)
	if err != nil {
		return fmt.Errorf("vault: decode fingerprint: %w", err)
	}

	shares, err := shamir.Split(hostSecret, totalShares, threshold)
	if err != nil {
		return fmt.Errorf("vault: split host secret: %w", err)
	}

	hostPart := shares[:hostShareCount]
	usbPart := shares[hostShareCount:]

	if err := mkdirMount(paths.Dir); err != nil {
		return err
	}

	if err := hostshares.Save(s.hostChunkDir, hostPart, log); err != nil {
		return err
	}

	usbChunksHex := make([]string, len(usbPart))
	for i, share := range usbPart {
		usbChunksHex[i] = hex.EncodeToString(share)
	}

	meta := vaultfile.Metadata{
		SaltHex:              hex.EncodeToString(salt),
		USBChunksHex:         usbChunksHex,
		SystemFingerprintHex: fpHex,
	}
	if err := vaultfile.WriteMetadata(paths.Metadata, meta); err != nil {
		return err
	}

	vaultKey := deriveVaultKey(pin, salt, hostSecret, fpBytes)
	defer mem.ClearBytes(vaultKey)

	raw, err := vaultfile.EncryptEntries(vaultKey, vaultfile.Entries{})
	if err != nil {
		return err
	}
	if err := vaultfile.WriteContainer(paths.Container, raw); err != nil {
		return err
	}

	s.state = Closed
	if log != nil {
		log.WithFields(s.fields(opID, "initialize")).Info("vault initialized")
	}
	return nil
}

// Unlock reads metadata, verifies the current fingerprint still
// matches what was stored at Initialize time, reconstructs the host
// secret from available Shamir shares, and decrypts the container.
// On success the session transitions to Unlocked and the decrypted
// entries are returned.
func (s *Session) Unlock(ctx context.Context, pin string, fingerprint FingerprintFunc) (vaultfile.Entries, error) {
	opID := uuid.NewString()
	log := s.log
	if log != nil {
		log.WithFields(s.fields(opID, "unlock")).Info("unlocking vault")
	}

	paths := vaultfile.PathsFor(s.mount)

	if _, err := os.Stat(paths.Metadata); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingArtifacts
		}
		return nil, ErrMediumGone
	}
	if _, err := os.Stat(paths.Container); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingArtifacts
		}
		return nil, ErrMediumGone
	}

	meta, err := vaultfile.ReadMetadata(paths.Metadata)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fpHex, err := fingerprint()
	if err != nil {
		return nil, fmt.Errorf("vault: capture fingerprint: %w", err)
	}
	if fpHex != meta.SystemFingerprintHex {
		if log != nil {
			log.WithFields(s.fields(opID, "unlock")).Warn("host fingerprint mismatch")
		}
		return nil, ErrHardwareMismatch
	}
	fpBytes, err := hex.DecodeString(fpHex)
	if err != nil {
		return nil, fmt.Errorf("vault: decode fingerprint: %w", err)
	}

	hostPart, err := hostshares.Load(s.hostChunkDir, hostShareCount, log)
	if err != nil {
		return nil, err
	}
	if len(hostPart) < threshold {
		if log != nil {
			log.WithFields(s.fields(opID, "unlock")).WithFields(logrus.Fields{"found": len(hostPart)}).Warn("insufficient host shares")
		}
		return nil, ErrMissingHostShares
	}

	salt, err := hex.DecodeString(meta.SaltHex)
	if err != nil {
		return nil, fmt.Errorf("%w: decode salt: %v", vaultfile.ErrMetadataCorrupt, err)
	}

	// Tie-break when more than threshold shares are available: host
	// shares first, then metadata shares, first `threshold` in
	// iteration order. Any combination of threshold shares reconstructs
	// correctly; this ordering only matters for determinism.
	candidates := make([][]byte, 0, len(hostPart)+len(meta.USBChunksHex))
	candidates = append(candidates, hostPart...)
	for _, h := range meta.USBChunksHex {
		share, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("%w: decode usb chunk: %v", vaultfile.ErrMetadataCorrupt, err)
		}
		candidates = append(candidates, share)
	}
	if len(candidates) < threshold {
		return nil, ErrMissingHostShares
	}

	hostSecret, err := shamir.Combine(candidates[:threshold])
	if err != nil {
		return nil, fmt.Errorf("vault: reconstruct host secret: %w", err)
	}
	defer mem.ClearBytes(hostSecret)

	vaultKey := deriveVaultKey(pin, salt, hostSecret, fpBytes)

	raw, err := vaultfile.ReadContainer(paths.Container)
	if err != nil {
		mem.ClearBytes(vaultKey)
		return nil, ErrMediumGone
	}

	entries, err := vaultfile.DecryptEntries(vaultKey, raw)
	if err != nil {
		mem.ClearBytes(vaultKey)
		if log != nil {
			log.WithFields(s.fields(opID, "unlock")).Warn("decryption failed: wrong pin or corrupt vault")
		}
		return nil, ErrWrongPinOrCorruptVault
	}

	s.vaultKey = vaultKey
	s.state = Unlocked
	if log != nil {
		log.WithFields(s.fields(opID, "unlock")).Info("vault unlocked")
	}
	return entries, nil
}

// Save requires Unlocked. It re-encrypts entries under the session's
// vault key with fresh nonce-bearing AEAD, overwrites the container,
// discards the key, and transitions to Closed.
func (s *Session) Save(ctx context.Context, entries vaultfile.Entries) error {
	if s.state != Unlocked {
		return ErrNotUnlocked
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	paths := vaultfile.PathsFor(s.mount)
	raw, err := vaultfile.EncryptEntries(s.vaultKey, entries)
	if err != nil {
		return err
	}

	if err := vaultfile.WriteContainer(paths.Container, raw); err != nil {
		s.closeAndWipe()
		return ErrMediumGone
	}

	s.closeAndWipe()
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"mount": s.mount, "op": "save"}).Info("vault saved")
	}
	return nil
}

// Lock requires Unlocked. It discards the session's key and
// transitions to Closed without writing anything.
func (s *Session) Lock(ctx context.Context) error {
	if s.state != Unlocked {
		return ErrNotUnlocked
	}
	s.closeAndWipe()
	return nil
}

// DeleteAll requires a successful Unlock beforehand (proves PIN
// knowledge) and removes .ursafe/ at the mount and the host share
// directory in full. Non-recoverable.
func (s *Session) DeleteAll(ctx context.Context) error {
	if s.state != Unlocked {
		return ErrNotUnlocked
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	paths := vaultfile.PathsFor(s.mount)
	if err := removeAll(paths.Dir); err != nil {
		return ErrMediumGone
	}
	if err := hostshares.DeleteAll(s.hostChunkDir, hostShareCount); err != nil {
		return err
	}
	if err := removeAll(s.hostChunkDir); err != nil {
		return fmt.Errorf("%w: remove %s: %v", hostshares.ErrHostIO, s.hostChunkDir, err)
	}

	s.closeAndWipe()
	if s.log != nil {
		s.log.WithFields(logrus.Fields{"mount": s.mount, "op": "delete_all"}).Warn("vault deleted")
	}
	return nil
}

func (s *Session) closeAndWipe() {
	mem.ClearBytes(s.vaultKey)
	s.vaultKey = nil
	s.state = Closed
}

// deriveVaultKey concatenates the KDF input in a fixed order:
// pin_bytes || salt || host_secret || fingerprint. This order is part
// of the on-disk compatibility surface and must never change silently.
func deriveVaultKey(pin string, salt, hostSecret, fingerprint []byte) []byte {
	material := make([]byte, 0, len(pin)+len(salt)+len(hostSecret)+len(fingerprint))
	material = append(material, []byte(pin)...)
	material = append(material, salt...)
	material = append(material, hostSecret...)
	material = append(material, fingerprint...)
	defer mem.ClearBytes(material)
	return cryptoengine.DeriveKey(material, salt)
}
