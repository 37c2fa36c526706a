package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"comparison password size", 16, 32},
		{"single byte", 1, 2},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandHexString(tt.size)
			require.NoError(t, err)
			assert.Len(t, s, tt.want)

			_, err = hex.DecodeString(s)
			assert.NoError(t, err, "result must be valid hex")
		})
	}
}

func TestMakeRandHexString_DiffersBetweenCalls(t *testing.T) {
	a, err := MakeRandHexString(16)
	require.NoError(t, err)
	b, err := MakeRandHexString(16)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerateRandByteArray(t *testing.T) {
	salt := GenerateRandByteArray(16)
	require.Len(t, salt, 16)
	assert.NotEqual(t, make([]byte, 16), salt, "16 random bytes are practically never all zero")
	assert.NotEqual(t, salt, GenerateRandByteArray(16))
	assert.Empty(t, GenerateRandByteArray(0))
}

func TestWipeByteArray(t *testing.T) {
	password := []byte("correct horse battery staple")
	WipeByteArray(password)
	assert.Equal(t, make([]byte, len(password)), password)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
