package cryptoengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateSigningKey()
	require.NoError(t, err)

	data := []byte("manifest line for the audit log")
	sig := Sign(priv, data)

	assert.True(t, Verify(pub, data, sig))
}

func TestVerifyFailsWithWrongKey(t *testing.T) {
	_, priv, err := GenerateSigningKey()
	require.NoError(t, err)
	otherPub, _, err := GenerateSigningKey()
	require.NoError(t, err)

	data := []byte("manifest line")
	sig := Sign(priv, data)

	assert.False(t, Verify(otherPub, data, sig))
}

func TestVerifyFailsWithTamperedData(t *testing.T) {
	pub, priv, err := GenerateSigningKey()
	require.NoError(t, err)

	sig := Sign(priv, []byte("original"))
	assert.False(t, Verify(pub, []byte("tampered"), sig))
}

func TestVerifyNeverPanicsOnGarbage(t *testing.T) {
	pub, _, err := GenerateSigningKey()
	require.NoError(t, err)

	assert.False(t, Verify(pub, []byte("data"), []byte("not-a-signature")))
	assert.False(t, Verify(nil, []byte("data"), []byte("sig")))
}

func TestHashIsStable(t *testing.T) {
	h1 := Hash([]byte("hello world"))
	h2 := Hash([]byte("hello world"))
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 32)
}
