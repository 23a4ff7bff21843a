package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/lentag"
	"github.com/jabcode/jabpro/validate"
)

// validateAgainstSchema checks spec invariants 1 and 2: feature count/names
// match the schema, and each value conforms to its declared type and length.
func validateAgainstSchema(schema Schema, features []FeatureValue) error {
	if len(features) != len(schema.Features) {
		return fmt.Errorf("%w: profile has %d features, schema wants %d", errs.ErrInvalidFeatureCount, len(features), len(schema.Features))
	}

	for i, fs := range schema.Features {
		fv := features[i]
		if fv.Name != fs.Name {
			return fmt.Errorf("%w: feature %d is %q, schema wants %q", errs.ErrFeatureDataDoesNotMatchProfile, i, fv.Name, fs.Name)
		}

		switch fs.ValueType {
		case Alphanumeric:
			if err := validate.Length(fv.Str, fs.MinLength, fs.MaxLength); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueLength, fs.Name, err)
			}
			if err := validate.Alphanumeric(fv.Str); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueType, fs.Name, err)
			}
		case Numeric:
			if err := validate.Length(fv.Str, fs.MinLength, fs.MaxLength); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueLength, fs.Name, err)
			}
			if err := validate.Numeric(fv.Str); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueType, fs.Name, err)
			}
		case BinaryUtf8:
			if err := validate.Length(fv.Str, fs.MinLength, fs.MaxLength); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueLength, fs.Name, err)
			}
			if err := validate.UTF8(fv.Str); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueType, fs.Name, err)
			}
		case Integer:
			if err := validate.IntegerRange(fv.Int, fs.MinLength, fs.MaxLength); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueLength, fs.Name, err)
			}
		case DateValue:
			if err := fv.Date.Validate(); err != nil {
				return fmt.Errorf("%w: %s: %v", errs.ErrInvalidDate, fs.Name, err)
			}
		}
	}

	return nil
}

// writeTag writes a tag byte followed by a length tag and the value bytes.
// useDER selects the §4.2 multi-byte length codec; otherwise a single raw
// length byte is written (legacy AAD/SIC layout, design note 1).
func writeTag(out []byte, tag byte, value []byte, useDER bool) ([]byte, error) {
	out = append(out, tag)

	if useDER {
		lt, err := lentag.Encode(len(value))
		if err != nil {
			return nil, err
		}
		out = append(out, lt...)
	} else {
		if len(value) > 0xFF {
			return nil, fmt.Errorf("%w: value of length %d does not fit in a single raw length byte", errs.ErrInvalidLengthTag, len(value))
		}
		out = append(out, byte(len(value)))
	}

	return append(out, value...), nil
}
