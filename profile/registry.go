package profile

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
)

// Codec encodes and decodes the feature region of one profile type. Encode
// operates on a Profile's Features in schema order; Decode starts reading at
// the first byte after the header and stops at the 0xFF signature marker or
// end of input.
type Codec interface {
	Schema() Schema
	EncodeFeatures(features []FeatureValue) ([]byte, error)
	DecodeFeatures(data []byte, start int) (features []FeatureValue, next int, err error)
}

// registry is a table keyed by ProfileType, replacing the source's chained
// equality dispatch (design note: profile dispatch).
var registry = map[header.ProfileType]Codec{
	header.Visa:                            visaCodec{},
	header.ArrivalAttestation:              arrivalAttestationCodec{},
	header.SocialInsuranceCard:             socialInsuranceCardCodec{},
	header.ResidencePermit:                 mrzPassportCodec{pt: header.ResidencePermit},
	header.SupplementarySheet:              mrzPassportCodec{pt: header.SupplementarySheet},
	header.AddressStickerIdCard:            addressStickerCodec{pt: header.AddressStickerIdCard},
	header.PlaceOfResidenceStickerPassport: addressStickerCodec{pt: header.PlaceOfResidenceStickerPassport},
}

// Lookup returns the Codec registered for pt.
func Lookup(pt header.ProfileType) (Codec, error) {
	c, ok := registry[pt]
	if !ok {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedProfileType, pt)
	}

	return c, nil
}

// ListSupported returns every profile type this registry can encode/decode.
func ListSupported() []header.ProfileType {
	out := make([]header.ProfileType, 0, len(registry))
	for pt := range registry {
		out = append(out, pt)
	}

	return out
}

// Template returns a blank Profile for pt: header zero-valued, features
// present with names/types from the schema but empty values, ready for the
// caller to populate before Encode.
func Template(pt header.ProfileType) (Profile, error) {
	c, err := Lookup(pt)
	if err != nil {
		return Profile{}, err
	}

	schema := c.Schema()
	features := make([]FeatureValue, len(schema.Features))
	for i, fs := range schema.Features {
		features[i] = FeatureValue{Name: fs.Name, Type: fs.ValueType}
	}

	return Profile{Type: pt, Features: features, Crypto: schema.Crypto}, nil
}
