// Package hostshares persists and retrieves the host's half of the
// Shamir share set in a private, OS-appropriate directory: one opaque
// file per share, named `.c_{i}`, in a directory exclusive to the
// account owner on POSIX.
package hostshares

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const dirPerm = 0700

// Dir returns the host share directory to use. override takes
// precedence when non-empty (vaultconfig.Config.HostChunkDir); it
// exists so tests and non-root development environments can redirect
// away from the hard-coded platform path without changing the
// on-disk share format.
func Dir(override string) string {
	if override != "" {
		return override
	}
	return defaultDir()
}

func shareFilename(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf(".c_%d", i))
}

// Save writes each share to {dir}/.c_{i} for i in 1..len(shares),
// creating dir with mode 0700 on POSIX if it does not already exist.
// Existing files with the same name are overwritten.
func Save(dir string, shares [][]byte, log *logrus.Logger) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrHostIO, dir, err)
	}
	if err := os.Chmod(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrHostIO, dir, err)
	}

	for i, share := range shares {
		path := shareFilename(dir, i+1)
		if err := os.WriteFile(path, share, 0600); err != nil {
			if log != nil {
				log.WithFields(logrus.Fields{"dir": dir, "index": i + 1}).WithError(err).Error("failed writing host share")
			}
			return fmt.Errorf("%w: write %s: %v", ErrHostIO, path, err)
		}
	}

	if log != nil {
		log.WithFields(logrus.Fields{"dir": dir, "count": len(shares)}).Info("host shares saved")
	}
	return nil
}

// Load reads up to count shares from {dir}/.c_1..{dir}/.c_count,
// silently skipping any file that does not exist. Order is preserved:
// the share for index i, if present, always precedes the share for
// index i+1 in the returned slice.
func Load(dir string, count int, log *logrus.Logger) ([][]byte, error) {
	shares := make([][]byte, 0, count)

	for i := 1; i <= count; i++ {
		path := shareFilename(dir, i)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("%w: read %s: %v", ErrHostIO, path, err)
		}
		shares = append(shares, data)
	}

	if log != nil {
		log.WithFields(logrus.Fields{"dir": dir, "found": len(shares), "requested": count}).Debug("host shares loaded")
	}
	return shares, nil
}

// DeleteAll removes every share file {dir}/.c_1..{dir}/.c_count,
// ignoring missing files. Used by the vault's DeleteAll operation.
func DeleteAll(dir string, count int) error {
	for i := 1; i <= count; i++ {
		path := shareFilename(dir, i)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: remove %s: %v", ErrHostIO, path, err)
		}
	}
	return nil
}
