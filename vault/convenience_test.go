package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursafe/vault-engine/vaultfile"
)

func TestConvenienceInitializeUnlockSave(t *testing.T) {
	ctx := context.Background()
	mount := t.TempDir()
	hostDir := filepath.Join(t.TempDir(), "chunks")
	fp := fixedFingerprint(testFingerprint)

	require.NoError(t, Initialize(ctx, mount, "1234-5678", fp, false, hostDir, nil))

	entries, err := Unlock(ctx, mount, "1234-5678", fp, hostDir, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = Save(ctx, mount, "1234-5678", vaultfile.Entries{
		"bank": {Label: "bank", Username: "bob", Password: "p4ss"},
	}, fp, hostDir, nil)
	require.NoError(t, err)

	entries2, err := Unlock(ctx, mount, "1234-5678", fp, hostDir, nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", entries2["bank"].Username)
}

func TestConvenienceVerifyBeforeAndAfterInit(t *testing.T) {
	ctx := context.Background()
	mount := t.TempDir()
	hostDir := filepath.Join(t.TempDir(), "chunks")
	fp := fixedFingerprint(testFingerprint)
	volSig := func(string) string { return "usb-sig" }

	result, err := Verify(mount, fp, volSig)
	require.NoError(t, err)
	assert.False(t, result.Valid)

	require.NoError(t, Initialize(ctx, mount, "1234-5678", fp, false, hostDir, nil))

	result2, err := Verify(mount, fp, volSig)
	require.NoError(t, err)
	assert.True(t, result2.Valid)
}

func TestConvenienceDeleteAll(t *testing.T) {
	ctx := context.Background()
	mount := t.TempDir()
	hostDir := filepath.Join(t.TempDir(), "chunks")
	fp := fixedFingerprint(testFingerprint)

	require.NoError(t, Initialize(ctx, mount, "1234-5678", fp, false, hostDir, nil))
	require.NoError(t, DeleteAll(ctx, mount, "1234-5678", fp, hostDir, nil))

	_, statErr := os.Stat(vaultfile.PathsFor(mount).Dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvenienceLogAppendAndVerify(t *testing.T) {
	mount := t.TempDir()
	require.NoError(t, os.MkdirAll(vaultfile.PathsFor(mount).Dir, 0700))

	_, err := LogAppend(mount, "initialize", nil, nil)
	require.NoError(t, err)
	_, err = LogAppend(mount, "unlock", nil, nil)
	require.NoError(t, err)

	ok, err := LogVerify(mount, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
