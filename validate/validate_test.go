package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphanumericRejectsLowercaseAndBracket(t *testing.T) {
	require.Error(t, Alphanumeric("abc"))
	require.Error(t, Alphanumeric("["))
	require.NoError(t, Alphanumeric("AB12<"))
}

func TestNumeric(t *testing.T) {
	require.NoError(t, Numeric("01234"))
	require.Error(t, Numeric("12A"))
}

func TestLength(t *testing.T) {
	require.NoError(t, Length("ABC", 1, 3))
	require.Error(t, Length("", 1, 3))
	require.Error(t, Length("ABCD", 1, 3))
}

func TestIntegerRange(t *testing.T) {
	require.NoError(t, IntegerRange(0, 1, 1))
	require.Error(t, IntegerRange(256, 1, 1))
	require.Error(t, IntegerRange(0, 2, 2))
	require.NoError(t, IntegerRange(256, 2, 2))
}

func TestUTF8RejectsOverlong2Byte(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	require.Error(t, UTF8(string([]byte{0xC0, 0x80})))
	require.Error(t, UTF8(string([]byte{0xC1, 0xBF})))
}

func TestUTF8RejectsOverlong3Byte(t *testing.T) {
	require.Error(t, UTF8(string([]byte{0xE0, 0x80, 0x80})))
}

func TestUTF8RejectsTruncatedContinuation(t *testing.T) {
	require.Error(t, UTF8(string([]byte{0xE2, 0x82})))
}

func TestUTF8RejectsFiveByteLead(t *testing.T) {
	require.Error(t, UTF8(string([]byte{0xF8, 0x80, 0x80, 0x80, 0x80})))
}

func TestUTF8RejectsSurrogate(t *testing.T) {
	require.Error(t, UTF8(string([]byte{0xED, 0xA0, 0x80})))
}

func TestUTF8AcceptsWellFormed(t *testing.T) {
	require.NoError(t, UTF8("MUSTERMANN"))
	require.NoError(t, UTF8("Müller"))
	require.NoError(t, UTF8("日本語"))
}

func TestHeaderRejectsLeadingFiller(t *testing.T) {
	require.Error(t, Header("<DE", "DE", "01", "ABC12"))
}

func TestHeaderRejectsSingleLetterGap(t *testing.T) {
	require.Error(t, Header("D<E", "DE", "01", "ABC12"))
}

func TestHeaderAcceptsValid(t *testing.T) {
	require.NoError(t, Header("D", "DE", "01", "ABC12"))
	require.NoError(t, Header("D<<", "DE", "01", "ABC12"))
}
