package cryptoengine

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	plaintext := []byte(`{"account":"github","password":"s3cr3t"}`)

	nonce, ciphertext, err := Encrypt(key, plaintext)
	require.NoError(t, err)
	assert.Len(t, nonce, NonceSize)

	got, err := Decrypt(key, nonce, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key := make([]byte, KeySize)
	wrongKey := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	_, err = rand.Read(wrongKey)
	require.NoError(t, err)

	nonce, ciphertext, err := Encrypt(key, []byte("hello world"))
	require.NoError(t, err)

	_, err = Decrypt(wrongKey, nonce, ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	nonce, ciphertext, err := Encrypt(key, []byte("hello world"))
	require.NoError(t, err)

	ciphertext[0] ^= 0xFF

	_, err = Decrypt(key, nonce, ciphertext)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestEncryptRejectsWrongKeySize(t *testing.T) {
	_, _, err := Encrypt([]byte("too-short"), []byte("data"))
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestDecryptRejectsWrongNonceSize(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	_, err = Decrypt(key, []byte("short"), []byte("ciphertext"))
	assert.ErrorIs(t, err, ErrInvalidNonceSize)
}

func TestTwoEncryptionsProduceDifferentNonces(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	n1, _, err := Encrypt(key, []byte("same plaintext"))
	require.NoError(t, err)
	n2, _, err := Encrypt(key, []byte("same plaintext"))
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}
