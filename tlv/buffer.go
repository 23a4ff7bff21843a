// Package tlv provides the append-only buffer and bounds-checked cursor used
// to assemble and parse the tag-length-value feature blocks of a Digital
// Seal. It replaces the original C implementation's hand-computed offset
// arithmetic (spec design note: manual TLV bookkeeping) with two small
// abstractions that cannot produce an off-by-one: Buffer only ever grows, and
// Cursor only ever reads within bounds it tracks itself.
package tlv

// Buffer is an append-only byte sequence. It mirrors the growth strategy of
// mebo's internal byte-buffer pool, but drops pooling: Digital Seals are
// small (a few hundred bytes) and encoded one at a time, so reuse would add
// complexity without a measurable benefit.
type Buffer struct {
	b []byte
}

// NewBuffer creates a Buffer with capacity hint.
func NewBuffer(capHint int) *Buffer {
	return &Buffer{b: make([]byte, 0, capHint)}
}

// WriteByte appends a single byte.
func (buf *Buffer) WriteByte(c byte) {
	buf.b = append(buf.b, c)
}

// Write appends data.
func (buf *Buffer) Write(data []byte) {
	buf.b = append(buf.b, data...)
}

// Len returns the number of bytes written so far.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Bytes returns the accumulated bytes. The returned slice aliases the
// buffer's storage and must not be modified by the caller.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}
