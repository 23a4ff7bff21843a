package tlv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferGrows(t *testing.T) {
	buf := NewBuffer(0)
	buf.WriteByte(0x01)
	buf.Write([]byte{0x02, 0x03})
	require.Equal(t, []byte{0x01, 0x02, 0x03}, buf.Bytes())
	require.Equal(t, 3, buf.Len())
}

func TestCursorReadN(t *testing.T) {
	c := NewCursor([]byte{0xAA, 0xBB, 0xCC, 0xDD}, 1)
	b, err := c.ReadN(2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xBB, 0xCC}, b)
	require.Equal(t, 3, c.Pos())
}

func TestCursorReadNOutOfBounds(t *testing.T) {
	c := NewCursor([]byte{0x01}, 0)
	_, err := c.ReadN(5)
	require.Error(t, err)
}

func TestCursorReadDERLength(t *testing.T) {
	c := NewCursor([]byte{0x82, 0x01, 0x2C, 0xFF}, 0)
	n, err := c.ReadDERLength()
	require.NoError(t, err)
	require.Equal(t, 300, n)
	require.Equal(t, 3, c.Pos())
}

func TestCursorReadRawLength(t *testing.T) {
	c := NewCursor([]byte{72, 0xFF}, 0)
	n, err := c.ReadRawLength()
	require.NoError(t, err)
	require.Equal(t, 72, n)
	require.Equal(t, 1, c.Pos())
}
