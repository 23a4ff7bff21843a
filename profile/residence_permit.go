package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/tlv"
)

const (
	tagMRZ            = 0x02
	tagPassportNumber = 0x03
)

// mrzPassportCodec implements the identical 2-feature (MRZ, passport number)
// layout shared by ResidencePermit and SupplementarySheet (design note:
// table-driven dispatch instead of duplicated per-type logic — the two
// profiles differ only in their header discriminator, not their feature
// layout).
type mrzPassportCodec struct {
	pt header.ProfileType
}

func (c mrzPassportCodec) Schema() Schema {
	return Schema{
		Type: c.pt,
		Features: []FeatureSchema{
			{Name: "Machine readable zone", MinLength: 72, MaxLength: 72, Required: true, ValueType: Alphanumeric, Tag: tagMRZ},
			{Name: "Passport number", MinLength: 9, MaxLength: 9, Required: true, ValueType: Alphanumeric, Tag: tagPassportNumber},
		},
		Crypto: genericCrypto(),
	}
}

func (c mrzPassportCodec) EncodeFeatures(features []FeatureValue) ([]byte, error) {
	if err := validateAgainstSchema(c.Schema(), features); err != nil {
		return nil, err
	}

	mrz, err := c40.Encode(features[0].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: machine readable zone: %v", errs.ErrC40ValueUnknown, err)
	}
	passport, err := c40.Encode(features[1].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: passport number: %v", errs.ErrC40ValueUnknown, err)
	}

	var out []byte
	if out, err = writeTag(out, tagMRZ, mrz, true); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagPassportNumber, passport, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c mrzPassportCodec) DecodeFeatures(data []byte, start int) ([]FeatureValue, int, error) {
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

		length, err := cur.ReadDERLength()
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
		case tagPassportNumber:
			s, derr := c40.Decode(value)
			if derr != nil {
				return nil, 0, fmt.Errorf("%w: passport number: %v", errs.ErrC40ValueUnknown, derr)
			}
			features[1].Str = s
			required++
		default:
			// unknown feature: skip, per spec feature iteration protocol
		}
	}

	if required != len(schema.Features) {
		return nil, 0, fmt.Errorf("%w: decoded %d of %d required features", errs.ErrRequiredFeatureNotFound, required, len(schema.Features))
	}

	return features, cur.Pos(), nil
}

// genericCrypto is the crypto metadata shared by every profile except Visa
// and the sticker profiles (source: encoder.h HASH_ALGO/SIGN_ALGO, valid
// 2016-2025).
func genericCrypto() CryptoInfo {
	return CryptoInfo{
		Hash:      []CryptoAlgo{{Algo: "SHA-256", SizeBits: 256, ValidFrom: 2016, ValidTill: 2025}},
		Signature: []CryptoAlgo{{Algo: "brainpoolP256r1", SizeBits: 512, ValidFrom: 2016, ValidTill: 2025}},
	}
}
