package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintString(t *testing.T) {
	assert.Equal(t, FingerprintString("SELECT ?"), FingerprintString("SELECT ?"))
	assert.NotEqual(t, FingerprintString("SELECT ?"), FingerprintString("SELECT ? "))
	// FNV-1a offset basis
	assert.Equal(t, uint64(0xcbf29ce484222325), FingerprintString(""))
}

func TestMix64(t *testing.T) {
	a, b := FingerprintString("oracle"), FingerprintString("SELECT ?")
	assert.Equal(t, Mix64(a, b), Mix64(a, b))
	assert.NotEqual(t, Mix64(a, b), Mix64(b, a))
}

func TestU64ToBytes(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 2}, U64ToBytes(0x0102))
}
