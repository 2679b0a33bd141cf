package vaultfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ursafe/vault-engine/cryptoengine"
	"github.com/ursafe/vault-engine/security/mem"
)

const (
	// DirName is the hidden directory at the mount root holding all
	// vault artifacts.
	DirName = ".ursafe"
	// ContainerFileName is the encrypted vault's filename.
	ContainerFileName = "vault.enc"
	// MetadataFileName is the metadata descriptor's filename.
	MetadataFileName = "meta.json"
)

// Paths returns the conventional locations of the vault's on-disk
// artifacts given a mount root.
type Paths struct {
	Dir       string
	Container string
	Metadata  string
}

// PathsFor computes the standard layout under mount.
func PathsFor(mount string) Paths {
	dir := filepath.Join(mount, DirName)
	return Paths{
		Dir:       dir,
		Container: filepath.Join(dir, ContainerFileName),
		Metadata:  filepath.Join(dir, MetadataFileName),
	}
}

// EncryptEntries serializes entries to JSON and AEAD-seals them under
// key, returning the on-disk container layout: nonce‖ciphertext+tag.
// There is no header or version byte — readers depend on the fixed
// cryptoengine.NonceSize-byte prefix.
func EncryptEntries(key []byte, entries Entries) ([]byte, error) {
	plaintext, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("vaultfile: marshal entries: %w", err)
	}

	nonce, ciphertext, err := cryptoengine.Encrypt(key, plaintext)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(nonce)+len(ciphertext))
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptEntries splits the first cryptoengine.NonceSize bytes of raw
// off as the nonce and AEAD-opens the remainder under key, returning
// the parsed entries map. Any AEAD failure surfaces as
// ErrWrongPinOrCorrupt: this layer never reveals whether the cause was
// a wrong key or tampered ciphertext.
func DecryptEntries(key []byte, raw []byte) (Entries, error) {
	if len(raw) < cryptoengine.NonceSize {
		return nil, ErrWrongPinOrCorrupt
	}

	nonce := raw[:cryptoengine.NonceSize]
	ciphertext := raw[cryptoengine.NonceSize:]

	plaintext, err := cryptoengine.Decrypt(key, nonce, ciphertext)
	if err != nil {
		return nil, ErrWrongPinOrCorrupt
	}
	defer mem.ClearBytes(plaintext)

	var entries Entries
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return nil, ErrWrongPinOrCorrupt
	}
	return entries, nil
}

// WriteContainer atomically replaces the container file at path with
// data, using write-temp-then-rename so a crash mid-write never leaves
// a half-written, unparseable container.
func WriteContainer(path string, data []byte) error {
	return atomicWrite(path, data, 0600)
}

// ReadContainer reads the raw bytes of the container file at path.
func ReadContainer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	return data, nil
}

// WriteMetadata marshals and atomically writes meta to path.
func WriteMetadata(path string, meta Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("vaultfile: marshal metadata: %w", err)
	}
	return atomicWrite(path, data, 0600)
}

// ReadMetadata reads and parses the metadata file at path.
func ReadMetadata(path string) (Metadata, error) {
	var meta Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		if !errors.Is(err, ErrMetadataCorrupt) {
			err = fmt.Errorf("%w: %v", ErrMetadataCorrupt, err)
		}
		return meta, err
	}
	if err := meta.Validate(); err != nil {
		return meta, err
	}
	return meta, nil
}

// atomicWrite writes data to a temp file beside path and renames it
// into place. Rename is atomic on the same filesystem, which holds
// here since the temp file and target always share the vault's
// .ursafe/ directory.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMediumIO, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrMediumIO, err)
	}
	return nil
}
