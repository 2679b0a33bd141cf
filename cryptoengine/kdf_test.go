package cryptoengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey([]byte("my-pin"), salt)
	k2 := DeriveKey([]byte("my-pin"), salt)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, ArgonKeyLen)
}

func TestDeriveKeyDiffersByPassword(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey([]byte("pin-a"), salt)
	k2 := DeriveKey([]byte("pin-b"), salt)
	assert.NotEqual(t, k1, k2)
}

func TestDeriveKeyDiffersBySalt(t *testing.T) {
	k1 := DeriveKey([]byte("my-pin"), []byte("salt-one-16bytes"))
	k2 := DeriveKey([]byte("my-pin"), []byte("salt-two-16bytes"))
	assert.NotEqual(t, k1, k2)
}
