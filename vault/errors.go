package vault

import "errors"

var (
	// ErrMissingArtifacts is returned when .ursafe/, vault.enc, or
	// meta.json is absent where an operation expects it present.
	ErrMissingArtifacts = errors.New("vault: missing vault artifacts, needs init")
	// ErrHardwareMismatch is returned when the current host fingerprint
	// differs from the one stored at Initialize time. Fatal for this
	// operation on this host; raised before any decryption attempt so
	// it never leaks whether the PIN would have been correct.
	ErrHardwareMismatch = errors.New("vault: host fingerprint mismatch")
	// ErrMissingHostShares is returned when fewer than M host shares
	// can be loaded from the host share directory.
	ErrMissingHostShares = errors.New("vault: fewer than threshold host shares available")
	// ErrWrongPinOrCorruptVault is returned on any AEAD authentication
	// failure opening the vault container. It never distinguishes a
	// wrong PIN from a tampered ciphertext.
	ErrWrongPinOrCorruptVault = errors.New("vault: wrong pin or corrupt vault")
	// ErrMediumGone is returned when an expected filesystem path under
	// the mount disappears mid-operation.
	ErrMediumGone = errors.New("vault: removable medium disappeared")
	// ErrAlreadyInitialized is returned by Initialize when .ursafe/
	// already exists at the mount and no overwrite was requested.
	ErrAlreadyInitialized = errors.New("vault: vault already initialized at mount")
	// ErrNotUnlocked is returned by Save/Lock/DeleteAll when called on
	// a session that is not in the Unlocked state.
	ErrNotUnlocked = errors.New("vault: session is not unlocked")
)
