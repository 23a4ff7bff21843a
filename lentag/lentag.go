// Package lentag implements the DER-TLV (ITU-T X.690) length encoding used to
// frame Digital Seal feature values and the trailing signature block.
package lentag

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
)

// Result is the outcome of reading a length tag: the decoded length, how many
// bytes the tag itself occupied, and whether the tag was well-formed.
//
// A zero-value Result with Valid=false disambiguates "rejected tag" from "a
// legitimately encoded length of zero", which a bare int return cannot: see
// ReadLengthTag.
type Result struct {
	Length    int
	TagLength int
	Valid     bool
}

// Encode produces the DER length-tag bytes for n. Values under 128 use the
// one-byte short form; larger values use the long form: a leading 0x80|k byte
// followed by k big-endian bytes, where k is the minimum number of bytes
// needed to represent n (1-4). n requiring more than 4 bytes is rejected.
func Encode(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", errs.ErrInvalidLengthTag, n)
	}
	if n < 128 {
		return []byte{byte(n)}, nil
	}

	var be []byte
	for v := n; v > 0; v >>= 8 {
		be = append([]byte{byte(v)}, be...)
	}
	if len(be) > 4 {
		return nil, fmt.Errorf("%w: length %d needs more than 4 extension bytes", errs.ErrInvalidLengthTag, n)
	}

	return append([]byte{0x80 | byte(len(be))}, be...), nil
}

// Decode reads a length tag starting at b[0] and returns the decoded length
// and the number of bytes consumed.
func Decode(b []byte) (length int, consumed int, err error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: empty length tag", errs.ErrInvalidLengthTag)
	}

	first := b[0]
	if first&0x80 == 0 {
		return int(first), 1, nil
	}

	n := int(first & 0x7F)
	if n < 1 || n > 4 {
		return 0, 0, fmt.Errorf("%w: long-form length tag has %d extension bytes", errs.ErrInvalidLengthTag, n)
	}
	if len(b) < 1+n {
		return 0, 0, fmt.Errorf("%w: truncated long-form length tag", errs.ErrInvalidLengthTag)
	}

	length = 0
	for i := 0; i < n; i++ {
		length = length<<8 | int(b[1+i])
	}

	return length, 1 + n, nil
}

// ReadLengthTag is the tagged-result form of Decode: it never overloads 0 to
// mean both "valid length 0" and "rejected tag", unlike a bare int return
// that treats the read_length_tag(...)==0 sentinel ambiguously.
func ReadLengthTag(b []byte) Result {
	length, consumed, err := Decode(b)
	if err != nil {
		return Result{Valid: false}
	}

	return Result{Length: length, TagLength: consumed, Valid: true}
}
