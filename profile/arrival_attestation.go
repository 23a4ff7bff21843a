package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/tlv"
)

const tagARZNumber = 0x03

// arrivalAttestationCodec implements the ArrivalAttestation profile. Its
// length tags are a single raw byte rather than the §4.2 DER codec (design
// note / open question 1): every field in this legacy layout is short
// enough that the distinction is invisible on the wire, but decode must
// match the source's raw-byte convention exactly, not the DER one.
type arrivalAttestationCodec struct{}

func (c arrivalAttestationCodec) Schema() Schema {
	return Schema{
		Type: header.ArrivalAttestation,
		Features: []FeatureSchema{
			{Name: "Machine readable zone", MinLength: 72, MaxLength: 72, Required: true, ValueType: Alphanumeric, Tag: tagMRZ},
			{Name: "ARZ-number", MinLength: 12, MaxLength: 12, Required: true, ValueType: Alphanumeric, Tag: tagARZNumber},
		},
		Crypto: genericCrypto(),
	}
}

func (c arrivalAttestationCodec) EncodeFeatures(features []FeatureValue) ([]byte, error) {
	if err := validateAgainstSchema(c.Schema(), features); err != nil {
		return nil, err
	}

	mrz, err := c40.Encode(features[0].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: machine readable zone: %v", errs.ErrC40ValueUnknown, err)
	}
	arz, err := c40.Encode(features[1].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: arz-number: %v", errs.ErrC40ValueUnknown, err)
	}

	var out []byte
	if out, err = writeTag(out, tagMRZ, mrz, false); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagARZNumber, arz, false); err != nil {
		return nil, err
	}

	return out, nil
}

func (c arrivalAttestationCodec) DecodeFeatures(data []byte, start int) ([]FeatureValue, int, error) {
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
		case tagMRZ:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: machine readable zone: %v", errs.ErrC40ValueUnknown, derr)
			}
			features[0].Str = s
			required++
		case tagARZNumber:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: arz-number: %v", errs.ErrC40ValueUnknown, derr)
			}
			features[1].Str = s
			required++
		default:
			// unknown feature: skip
		}
	}

	if required != len(schema.Features) {
		return nil, 0, fmt.Errorf("%w: decoded %d of %d required features", errs.ErrRequiredFeatureNotFound, required, len(schema.Features))
	}

	return features, cur.Pos(), nil
}
