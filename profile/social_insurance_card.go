package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/tlv"
	"github.com/jabcode/jabpro/validate"
)

const (
	tagSIN          = 0x01
	tagSurname      = 0x02
	tagFirstName    = 0x03
	tagNameAtBirth  = 0x04
)

// socialInsuranceCardCodec implements the SocialInsuranceCard profile. Its
// name-at-birth feature is physically omitted from the wire bytes whenever
// it is byte-equal to surname; when it is absent from the wire, decode
// reports it as equal to surname (spec invariant 1c: implementations may
// pick either reading, this one fixes "absent" as a copy of surname).
type socialInsuranceCardCodec struct{}

func (c socialInsuranceCardCodec) Schema() Schema {
	return Schema{
		Type: header.SocialInsuranceCard,
		Features: []FeatureSchema{
			{Name: "Social insurance number", MinLength: 12, MaxLength: 12, Required: true, ValueType: Alphanumeric, Tag: tagSIN},
			{Name: "Surname", MinLength: 1, MaxLength: 90, Required: true, ValueType: BinaryUtf8, Tag: tagSurname},
			{Name: "First name", MinLength: 1, MaxLength: 90, Required: true, ValueType: BinaryUtf8, Tag: tagFirstName},
			{Name: "Name at birth", MinLength: 1, MaxLength: 90, Required: false, ValueType: BinaryUtf8, Tag: tagNameAtBirth},
		},
		Crypto: genericCrypto(),
	}
}

func (c socialInsuranceCardCodec) EncodeFeatures(features []FeatureValue) ([]byte, error) {
	schema := c.Schema()
	// Name at birth may be left empty (it then decodes as surname), which the
	// generic schema validation would reject, so it is not used here: check
	// the feature count and the names of the other three fields, then each
	// name's length and UTF-8 form, name-at-birth's only when present.
	if len(features) != len(schema.Features) {
		return nil, fmt.Errorf("%w: profile has %d features, schema wants %d", errs.ErrInvalidFeatureCount, len(features), len(schema.Features))
	}
	for i, fs := range schema.Features[:3] {
		if features[i].Name != fs.Name {
			return nil, fmt.Errorf("%w: feature %d is %q, schema wants %q", errs.ErrFeatureDataDoesNotMatchProfile, i, features[i].Name, fs.Name)
		}
	}

	sin, err := c40.Encode(features[0].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: social insurance number: %v", errs.ErrC40ValueUnknown, err)
	}
	if len(sin) == 0 || len(features[0].Str) != 12 {
		return nil, fmt.Errorf("%w: social insurance number must be 12 characters", errs.ErrInvalidValueLength)
	}

	surname := []byte(features[1].Str)
	firstName := []byte(features[2].Str)
	nameAtBirth := []byte(features[3].Str)

	if err := lengthCheckUtf8("surname", surname, 1, 90); err != nil {
		return nil, err
	}
	if err := lengthCheckUtf8("first name", firstName, 1, 90); err != nil {
		return nil, err
	}
	if len(nameAtBirth) > 0 {
		if err := lengthCheckUtf8("name at birth", nameAtBirth, 1, 90); err != nil {
			return nil, err
		}
	}

	// Name at birth is dropped entirely from the wire when it matches
	// surname byte-for-byte (source: social_incurance_card.c:138-144).
	omit := string(nameAtBirth) == string(surname)

	var out []byte
	if out, err = writeTag(out, tagSIN, sin, false); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagSurname, surname, false); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagFirstName, firstName, false); err != nil {
		return nil, err
	}
	if !omit && len(nameAtBirth) > 0 {
		if out, err = writeTag(out, tagNameAtBirth, nameAtBirth, false); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func lengthCheckUtf8(field string, value []byte, min, max int) error {
	if len(value) < min || len(value) > max {
		return fmt.Errorf("%w: %s length %d outside [%d, %d]", errs.ErrInvalidValueLength, field, len(value), min, max)
	}
	if err := validate.UTF8(string(value)); err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrInvalidValueType, field, err)
	}

	return nil
}

func (c socialInsuranceCardCodec) DecodeFeatures(data []byte, start int) ([]FeatureValue, int, error) {
	schema := c.Schema()
	features := make([]FeatureValue, len(schema.Features))
	for i, fs := range schema.Features {
		features[i] = FeatureValue{Name: fs.Name, Type: fs.ValueType}
	}

	cur := tlv.NewCursor(data, start)
	required := 0

	for cur.Remaining() {
		tag, err := cur.PeekByte()
		if err != nil {
			return nil, 0, err
		}
		if tag == 0xFF {
			break
		}
		if _, err := cur.ReadByte(); err != nil {
			return nil, 0, err
		}

		length, err := cur.ReadRawLength()
		if err != nil {
			return nil, 0, err
		}
		value, err := cur.ReadN(length)
		if err != nil {
			return nil, 0, err
		}

		switch tag {
		case tagSIN:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: social insurance number: %v", errs.ErrC40ValueUnknown, derr)
			}
			features[0].Str = s
			required++
		case tagSurname:
			features[1].Str = string(value)
			required++
		case tagFirstName:
			features[2].Str = string(value)
			required++
		case tagNameAtBirth:
			features[3].Str = string(value)
		default:
			// unknown feature: skip
		}
	}

	if required != 3 {
		return nil, 0, fmt.Errorf("%w: decoded %d of 3 required features", errs.ErrRequiredFeatureNotFound, required)
	}

	// Name at birth absent on the wire implies it equals surname.
	if features[3].Str == "" {
		features[3].Str = features[1].Str
	}

	return features, cur.Pos(), nil
}
