package lentag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		n    int
		want []byte
	}{
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x80}},
		{300, []byte{0x82, 0x01, 0x2C}},
		{0, []byte{0x00}},
	}
	for _, tt := range tests {
		got, err := Encode(tt.n)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(1 << 33)
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128, 255, 300, 65535, 1 << 20, 1<<32 - 1} {
		enc, err := Encode(n)
		require.NoError(t, err)

		got, consumed, err := Decode(enc)
		require.NoError(t, err)
		require.Equal(t, n, got)
		require.Equal(t, len(enc), consumed)
	}
}

func TestDecodeRejectsZeroExtensionBytes(t *testing.T) {
	_, _, err := Decode([]byte{0x80})
	require.Error(t, err)
}

func TestDecodeRejectsTooManyExtensionBytes(t *testing.T) {
	_, _, err := Decode([]byte{0x85, 1, 2, 3, 4, 5})
	require.Error(t, err)
}

func TestReadLengthTagDisambiguatesZero(t *testing.T) {
	ok := ReadLengthTag([]byte{0x00})
	require.True(t, ok.Valid)
	require.Equal(t, 0, ok.Length)

	rejected := ReadLengthTag([]byte{0x80})
	require.False(t, rejected.Valid)
}
