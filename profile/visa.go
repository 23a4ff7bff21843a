package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/tlv"
)

const (
	tagVisaMRZ      = 0x02
	tagVisaDuration = 0x04
	tagVisaPassport = 0x05
)

// mrzWireLength is how much of the MRZ is actually C40-encoded onto the
// wire for Visa ("Visa type B"): the remaining 8 characters are always "<"
// on decode (design note / open question 5). Data in those 8 positions
// cannot be recovered once encoded.
const mrzWireLength = 64

// durationUnknown and durationAirTransit are the two legal sentinel triples
// for Visa's duration-of-stay feature.
const (
	durationUnknown    = 0xFF
	durationAirTransit = 0xFE
)

// visaCodec implements the Visa profile: 5 declared features (MRZ,
// duration-day, duration-month, duration-year, passport number) even though
// the three duration components share one wire tag (source: visa.c).
type visaCodec struct{}

func (c visaCodec) Schema() Schema {
	return Schema{
		Type: header.Visa,
		Features: []FeatureSchema{
			{Name: "Machine readable zone", MinLength: 72, MaxLength: 72, Required: true, ValueType: Alphanumeric, Tag: tagVisaMRZ},
			{Name: "Duration of stay day", MinLength: 1, MaxLength: 1, Required: true, ValueType: Integer, Tag: tagVisaDuration},
			{Name: "Duration of stay month", MinLength: 1, MaxLength: 1, Required: true, ValueType: Integer, Tag: tagVisaDuration},
			{Name: "Duration of stay year", MinLength: 1, MaxLength: 1, Required: true, ValueType: Integer, Tag: tagVisaDuration},
			{Name: "Passport number", MinLength: 9, MaxLength: 9, Required: true, ValueType: Alphanumeric, Tag: tagVisaPassport},
		},
		Crypto: CryptoInfo{
			Hash:      []CryptoAlgo{{Algo: "SHA-224", SizeBits: 224, ValidFrom: 2021, ValidTill: 2025}},
			Signature: []CryptoAlgo{{Algo: "brainpoolP224r1", SizeBits: 448, ValidFrom: 2021, ValidTill: 2025}},
		},
	}
}

func (c visaCodec) EncodeFeatures(features []FeatureValue) ([]byte, error) {
	if err := validateAgainstSchema(c.Schema(), features); err != nil {
		return nil, err
	}

	day, month, year := features[1].Int, features[2].Int, features[3].Int
	if err := checkDurationTriple(day, month, year); err != nil {
		return nil, err
	}

	mrzFull := features[0].Str
	mrzWire, err := c40.Encode(mrzFull[:mrzWireLength])
	if err != nil {
		return nil, fmt.Errorf("%w: machine readable zone: %v", errs.ErrC40ValueUnknown, err)
	}
	passport, err := c40.Encode(features[4].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: passport number: %v", errs.ErrC40ValueUnknown, err)
	}

	duration := []byte{byte(day), byte(month), byte(year)}

	var out []byte
	if out, err = writeTag(out, tagVisaMRZ, mrzWire, true); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagVisaDuration, duration, true); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagVisaPassport, passport, true); err != nil {
		return nil, err
	}

	return out, nil
}

// checkDurationTriple enforces the Visa duration sentinel rule: all-unknown
// and all-air-transit are legal; any other mixture involving 0xFF is
// WrongInput (spec S5).
func checkDurationTriple(day, month, year uint64) error {
	allFF := day == durationUnknown && month == durationUnknown && year == durationUnknown
	anyFF := day == durationUnknown || month == durationUnknown || year == durationUnknown
	if anyFF && !allFF {
		return fmt.Errorf("%w: duration of stay has a mixed 0xFF sentinel", errs.ErrWrongInput)
	}

	return nil
}

func (c visaCodec) DecodeFeatures(data []byte, start int) ([]FeatureValue, int, error) {
	schema := c.Schema()
	features := make([]FeatureValue, len(schema.Features))
	for i, fs := range schema.Features {
		features[i] = FeatureValue{Name: fs.Name, Type: fs.ValueType}
	}

	cur := tlv.NewCursor(data, start)
	found := map[byte]bool{}

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

		length, err := cur.ReadDERLength()
		if err != nil {
			return nil, 0, err
		}
		value, err := cur.ReadN(length)
		if err != nil {
			return nil, 0, err
		}

		switch tag {
		case tagVisaMRZ:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: machine readable zone: %v", errs.ErrC40ValueUnknown, derr)
			}
			for len(s) < 72 {
				s += "<"
			}
			features[0].Str = s
			found[tagVisaMRZ] = true
		case tagVisaDuration:
			if len(value) != 3 {
				return nil, 0, fmt.Errorf("%w: duration of stay must be 3 bytes, got %d", errs.ErrInvalidValueLength, len(value))
			}
			if err := checkDurationTriple(uint64(value[0]), uint64(value[1]), uint64(value[2])); err != nil {
				return nil, 0, err
			}
			features[1].Int = uint64(value[0])
			features[2].Int = uint64(value[1])
			features[3].Int = uint64(value[2])
			found[tagVisaDuration] = true
		case tagVisaPassport:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: passport number: %v", errs.ErrC40ValueUnknown, derr)
			}
			features[4].Str = s
			found[tagVisaPassport] = true
		default:
			// unknown feature: skip
		}
	}

	if !found[tagVisaMRZ] || !found[tagVisaDuration] || !found[tagVisaPassport] {
		return nil, 0, fmt.Errorf("%w: visa profile is missing a required feature", errs.ErrRequiredFeatureNotFound)
	}

	return features, cur.Pos(), nil
}
