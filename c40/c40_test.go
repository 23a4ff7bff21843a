package c40

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeSingleTriple(t *testing.T) {
	// "AB<": v=(14,15,3), I16 = 1600*14+40*15+3+1 = 22400+600+3+1 = 23004 = 0x59DC
	got, err := Encode("AB<")
	require.NoError(t, err)
	require.Equal(t, []byte{0x59, 0xDC}, got)
}

func TestEncodeTrailingPair(t *testing.T) {
	// "AB": v=(14,15), I16 = 1600*14+40*15+1 = 23001 = 0x59D9
	got, err := Encode("AB")
	require.NoError(t, err)
	require.Equal(t, []byte{0x59, 0xD9}, got)
}

func TestEncodeTrailingSingle(t *testing.T) {
	got, err := Encode("A")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFE, 'A' + 1}, got)
}

func TestEncodeUnknownCharacter(t *testing.T) {
	_, err := Encode("ab")
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"AB<", "AB", "A", "",
		"ABCDEFGHIJ", "0123456789", "MUSTERMANN<<ERIKA",
		"AAAAAA<<<<<<",
	}
	for _, s := range tests {
		enc, err := Encode(s)
		require.NoError(t, err)
		require.Len(t, enc, ((len(s)+2)/3)*2)

		dec, err := Decode(enc)
		require.NoError(t, err)

		// "<" and space collapse onto the same C40 value; the round-trip
		// only preserves "<" since that is the seal convention on decode.
		require.Equal(t, s, dec)
	}
}

func TestDecodeOddLength(t *testing.T) {
	_, err := Decode([]byte{0x01})
	require.Error(t, err)
}

func TestDecodeEscapeUnderflow(t *testing.T) {
	_, err := Decode([]byte{0xFE, 0x00})
	require.Error(t, err)
}
