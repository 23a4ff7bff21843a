// Package c40 implements the C40 text compression scheme used by the Digital
// Seal header and alphanumeric feature fields (part of the Data Matrix
// specification, ISO/IEC 16022). Three characters of a restricted alphabet
// pack into two bytes.
package c40

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
)

// alphabet is the 40-entry C40 value table: index is the C40 value, value is
// the ASCII character it represents. Value 3 is the seal's "<" convention
// (space on encode, "<" on decode); values 4-13 are digits; values 14-39 are
// uppercase letters.
var alphabet = [40]byte{
	0: 0, 1: 0, 2: 0, // shift values, unused by this codec
	3:  '<',
	4:  '0', 5: '1', 6: '2', 7: '3', 8: '4', 9: '5', 10: '6', 11: '7', 12: '8', 13: '9',
	14: 'A', 15: 'B', 16: 'C', 17: 'D', 18: 'E', 19: 'F', 20: 'G', 21: 'H', 22: 'I', 23: 'J',
	24: 'K', 25: 'L', 26: 'M', 27: 'N', 28: 'O', 29: 'P', 30: 'Q', 31: 'R', 32: 'S', 33: 'T',
	34: 'U', 35: 'V', 36: 'W', 37: 'X', 38: 'Y', 39: 'Z',
}

// reverseAlphabet maps an ASCII character back to its C40 value. It is built
// once from alphabet so the two tables can never drift apart.
var reverseAlphabet = buildReverse()

func buildReverse() map[byte]int {
	m := make(map[byte]int, 38)
	for v := 3; v < 40; v++ {
		m[alphabet[v]] = v
	}
	// The seal convention treats a literal space the same as "<" on encode.
	m[' '] = 3

	return m
}

// value returns the C40 value for c, or an error if c is not in the alphabet.
func value(c byte) (int, error) {
	v, ok := reverseAlphabet[c]
	if !ok {
		return 0, fmt.Errorf("%w: character %q has no C40 mapping", errs.ErrC40ValueUnknown, c)
	}

	return v, nil
}

// Encode compresses s into C40 bytes. Input is processed in triplets; a
// trailing pair is packed with v3=0, and a single trailing character is
// emitted as the two-byte escape (0xFE, ascii+1). Output length is always
// ceil(len(s)/3)*2 bytes.
func Encode(s string) ([]byte, error) {
	out := make([]byte, 0, ((len(s)+2)/3)*2)

	for i := 0; i < len(s); i += 3 {
		remaining := len(s) - i
		switch {
		case remaining >= 3:
			v1, err := value(s[i])
			if err != nil {
				return nil, err
			}
			v2, err := value(s[i+1])
			if err != nil {
				return nil, err
			}
			v3, err := value(s[i+2])
			if err != nil {
				return nil, err
			}
			i16 := 1600*v1 + 40*v2 + v3 + 1
			out = append(out, byte(i16/256), byte(i16%256))
		case remaining == 2:
			v1, err := value(s[i])
			if err != nil {
				return nil, err
			}
			v2, err := value(s[i+1])
			if err != nil {
				return nil, err
			}
			i16 := 1600*v1 + 40*v2 + 1
			out = append(out, byte(i16/256), byte(i16%256))
		default: // remaining == 1
			out = append(out, 0xFE, s[i]+1)
		}
	}

	return out, nil
}

// Decode expands C40 bytes back into a string. Input is processed in byte
// pairs; a high byte of 0xFE is the one-character escape. Decoded C40 value
// 3 is emitted as "<" per the seal convention, matching Encode's treatment of
// "<" and space as the same input value.
func Decode(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: c40 input length %d is not even", errs.ErrC40ValueUnknown, len(b))
	}

	out := make([]byte, 0, len(b)*3/2)

	for i := 0; i < len(b); i += 2 {
		hi, lo := b[i], b[i+1]
		if hi == 0xFE {
			if lo == 0 {
				return "", fmt.Errorf("%w: c40 escape byte underflows", errs.ErrC40ValueUnknown)
			}
			out = append(out, lo-1)

			continue
		}

		v16 := int(hi)*256 + int(lo)
		if v16 < 1 {
			return "", fmt.Errorf("%w: c40 value %d out of range", errs.ErrC40ValueUnknown, v16)
		}
		u := v16 - 1
		u1, u2, u3 := u/1600, (u%1600)/40, u%40

		c1, err := char(u1)
		if err != nil {
			return "", err
		}
		c2, err := char(u2)
		if err != nil {
			return "", err
		}

		if u3 == 0 {
			out = append(out, c1, c2)

			continue
		}

		c3, err := char(u3)
		if err != nil {
			return "", err
		}
		out = append(out, c1, c2, c3)
	}

	return string(out), nil
}

func char(v int) (byte, error) {
	if v < 3 || v >= 40 {
		return 0, fmt.Errorf("%w: decoded c40 value %d out of range", errs.ErrC40ValueUnknown, v)
	}

	return alphabet[v], nil
}
