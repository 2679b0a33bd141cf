// Package hostprobe is a ready-to-use, OS-probing reference
// implementation of the two identifier functions the vault core treats
// as external collaborators: a host fingerprint and a removable-medium
// volume signature. Nothing in vault or verify imports this package;
// callers wire its functions in explicitly when they don't want to
// write their own probing code.
package hostprobe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/host"
)

// SystemFingerprint returns the hex-SHA-256 of a stable host
// identifier: gopsutil's cross-platform HostID when available
// (backed by /etc/machine-id, the Windows MachineGuid registry key,
// or the macOS IOPlatformUUID, depending on OS), falling back to the
// hostname when HostID cannot be determined.
func SystemFingerprint() (string, error) {
	info, err := host.Info()
	if err == nil && info.HostID != "" {
		return hashHex(info.HostID), nil
	}

	name, hErr := os.Hostname()
	if hErr != nil {
		return "", fmt.Errorf("hostprobe: no host identifier available: %v / %v", err, hErr)
	}
	return hashHex(name), nil
}

// VolumeSignature returns an identifier for the removable medium
// mounted at mountPath. There is no portable, reliable way to read a
// USB volume serial from Go without OS-specific syscalls, so this
// always falls back to a stable hash of the mount path itself, using
// the FALLBACK-{hash(path)} convention.
func VolumeSignature(mountPath string) string {
	return "FALLBACK-" + hashHex(mountPath)
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
