package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/tlv"
)

const (
	tagDocumentNumber      = 0x01
	tagMunicipalityCode    = 0x02
	tagPostalCode          = 0x03
)

// addressStickerCodec implements the compact 3-feature, all-C40, §4.2
// length-tag layout shared by AddressStickerIdCard and
// PlaceOfResidenceStickerPassport (source: place_of_residence_sticker.c;
// AddressStickerIdCard has no dedicated source file in the retrieved
// original and is modeled on the same layout — see SPEC_FULL.md §4).
type addressStickerCodec struct {
	pt header.ProfileType
}

func (c addressStickerCodec) Schema() Schema {
	return Schema{
		Type: c.pt,
		Features: []FeatureSchema{
			{Name: "Document number", MinLength: 9, MaxLength: 9, Required: true, ValueType: Alphanumeric, Tag: tagDocumentNumber},
			{Name: "Official municipality code number", MinLength: 8, MaxLength: 8, Required: true, ValueType: Numeric, Tag: tagMunicipalityCode},
			{Name: "Postal code", MinLength: 5, MaxLength: 5, Required: true, ValueType: Numeric, Tag: tagPostalCode},
		},
		// Mixed crypto: generic hash, sticker-specific signature (source:
		// place_of_residence_sticker.c + encoder.h SIGN_ALGO_STICKER).
		Crypto: CryptoInfo{
			Hash:      []CryptoAlgo{{Algo: "SHA-256", SizeBits: 256, ValidFrom: 2021, ValidTill: 2025}},
			Signature: []CryptoAlgo{{Algo: "brainpoolP224r1", SizeBits: 448, ValidFrom: 2021, ValidTill: 2025}},
		},
	}
}

func (c addressStickerCodec) EncodeFeatures(features []FeatureValue) ([]byte, error) {
	if err := validateAgainstSchema(c.Schema(), features); err != nil {
		return nil, err
	}

	doc, err := c40.Encode(features[0].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: document number: %v", errs.ErrC40ValueUnknown, err)
	}
	muni, err := c40.Encode(features[1].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: official municipality code number: %v", errs.ErrC40ValueUnknown, err)
	}
	postal, err := c40.Encode(features[2].Str)
	if err != nil {
		return nil, fmt.Errorf("%w: postal code: %v", errs.ErrC40ValueUnknown, err)
	}

	var out []byte
	if out, err = writeTag(out, tagDocumentNumber, doc, true); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagMunicipalityCode, muni, true); err != nil {
		return nil, err
	}
	if out, err = writeTag(out, tagPostalCode, postal, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c addressStickerCodec) DecodeFeatures(data []byte, start int) ([]FeatureValue, int, error) {
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

		var idx int
		switch tag {
		case tagDocumentNumber:
			idx = 0
		case tagMunicipalityCode:
			idx = 1
		case tagPostalCode:
			idx = 2
		default:
			continue // unknown feature: skip
		}

		s, derr := c40.Decode(value)
		if derr != nil {
			return nil, 0, fmt.Errorf("%w: %s: %v", errs.ErrC40ValueUnknown, schema.Features[idx].Name, derr)
		}
		features[idx].Str = s
		required++
	}

	if required != len(schema.Features) {
		return nil, 0, fmt.Errorf("%w: decoded %d of %d required features", errs.ErrRequiredFeatureNotFound, required, len(schema.Features))
	}

	return features, cur.Pos(), nil
}
