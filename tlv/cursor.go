package tlv

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/lentag"
)

// Cursor reads a byte slice sequentially with bounds checking on every
// operation, replacing the source's manual pos_bytes arithmetic.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a Cursor over data starting at offset start.
func NewCursor(data []byte, start int) *Cursor {
	return &Cursor{data: data, pos: start}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining reports whether there is at least one more unread byte.
func (c *Cursor) Remaining() bool {
	return c.pos < len(c.data)
}

// PeekByte returns the byte at the cursor without advancing it.
func (c *Cursor) PeekByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("%w: read past end of profile at offset %d", errs.ErrInvalidHeader, c.pos)
	}

	return c.data[c.pos], nil
}

// ReadByte returns the byte at the cursor and advances it by one.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.PeekByte()
	if err != nil {
		return 0, err
	}
	c.pos++

	return b, nil
}

// ReadN returns the next n bytes and advances the cursor by n.
func (c *Cursor) ReadN(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, fmt.Errorf("%w: cannot read %d bytes at offset %d (len %d)", errs.ErrInvalidHeader, n, c.pos, len(c.data))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// ReadRawLength reads a single raw byte as a length value, used by the
// legacy single-byte length-tag layout (ArrivalAttestation,
// SocialInsuranceCard). See spec design note on the length-tag asymmetry.
func (c *Cursor) ReadRawLength() (int, error) {
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}

	return int(b), nil
}

// ReadDERLength reads a §4.2 DER-style length tag (short or long form) and
// advances the cursor past it.
func (c *Cursor) ReadDERLength() (int, error) {
	if c.pos >= len(c.data) {
		return 0, fmt.Errorf("%w: no bytes left for length tag", errs.ErrInvalidLengthTag)
	}

	result := lentag.ReadLengthTag(c.data[c.pos:])
	if !result.Valid {
		return 0, fmt.Errorf("%w: malformed length tag at offset %d", errs.ErrInvalidLengthTag, c.pos)
	}
	c.pos += result.TagLength

	return result.Length, nil
}
