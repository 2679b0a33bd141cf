// Package verify implements a six-step verification protocol: given a
// mount path, decide whether a vault is present and well-formed
// without unlocking it.
package verify

import (
	"os"

	"github.com/ursafe/vault-engine/vaultfile"
)

// Reason codes identify which short-circuiting step of Check failed.
const (
	ReasonMountNotFound   = "MountNotFound"
	ReasonVaultNotFound   = "VaultNotFound"
	ReasonMetadataCorrupt = "MetadataCorrupt"
	ReasonCloneSuspected  = "CloneSuspected"
)

// Result is the structured outcome of Check.
type Result struct {
	Valid        bool
	Reason       string
	SystemMatch  bool
	USBSignature string
	Metadata     *vaultfile.Metadata
}

// Check runs the six-step verification protocol against mount.
// currentFingerprintHex and currentVolumeSignature are supplied by the
// caller: host and volume identification are treated as external
// collaborators, not part of this package. Pass the values the
// hostprobe package or an equivalent reports for the running host and
// the candidate removable medium.
func Check(mount string, currentFingerprintHex string, currentVolumeSignature string) Result {
	// Step 1: mount path exists and is a directory.
	info, err := os.Stat(mount)
	if err != nil || !info.IsDir() {
		return Result{Valid: false, Reason: ReasonMountNotFound}
	}

	paths := vaultfile.PathsFor(mount)

	// Step 2: {mount}/.ursafe/ exists.
	dirInfo, err := os.Stat(paths.Dir)
	if err != nil || !dirInfo.IsDir() {
		return Result{Valid: false, Reason: ReasonVaultNotFound}
	}

	// Step 3: vault.enc and meta.json both exist.
	if _, err := os.Stat(paths.Container); err != nil {
		return Result{Valid: false, Reason: ReasonVaultNotFound}
	}
	if _, err := os.Stat(paths.Metadata); err != nil {
		return Result{Valid: false, Reason: ReasonVaultNotFound}
	}

	// Step 4: meta.json parses and has the required fields.
	meta, err := vaultfile.ReadMetadata(paths.Metadata)
	if err != nil {
		return Result{Valid: false, Reason: ReasonMetadataCorrupt}
	}

	// Step 5: if a usb_signature is recorded, it must match the
	// current volume identifier.
	if meta.USBSignature != "" && meta.USBSignature != currentVolumeSignature {
		return Result{
			Valid:        false,
			Reason:       ReasonCloneSuspected,
			USBSignature: meta.USBSignature,
			Metadata:     &meta,
		}
	}

	// Step 6: fingerprint comparison is informational only; a
	// mismatch does not invalidate the vault here, it only blocks
	// Unlock.
	systemMatch := meta.SystemFingerprintHex == currentFingerprintHex

	return Result{
		Valid:        true,
		Reason:       "",
		SystemMatch:  systemMatch,
		USBSignature: meta.USBSignature,
		Metadata:     &meta,
	}
}
