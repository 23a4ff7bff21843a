package profile

import (
	"strings"
	"testing"

	"github.com/jabcode/jabpro/header"
	"github.com/stretchr/testify/require"
)

func mrz72() string {
	return strings.Repeat("A", 72)
}

func TestResidencePermitRoundTrip(t *testing.T) {
	c, err := Lookup(header.ResidencePermit)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Machine readable zone", Type: Alphanumeric, Str: mrz72()},
		{Name: "Passport number", Type: Alphanumeric, Str: "ABC123456"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)
	enc = append(enc, 0xFF)

	dec, next, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, len(enc)-1, next)
	require.Equal(t, features[0].Str, dec[0].Str)
	require.Equal(t, features[1].Str, dec[1].Str)
}

func TestSupplementarySheetSharesResidencePermitLayout(t *testing.T) {
	rp, err := Lookup(header.ResidencePermit)
	require.NoError(t, err)
	ss, err := Lookup(header.SupplementarySheet)
	require.NoError(t, err)
	require.Equal(t, rp.Schema().Features, ss.Schema().Features)
}

func TestArrivalAttestationRoundTrip(t *testing.T) {
	c, err := Lookup(header.ArrivalAttestation)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Machine readable zone", Type: Alphanumeric, Str: mrz72()},
		{Name: "ARZ-number", Type: Alphanumeric, Str: "ABC123456789"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)
	enc = append(enc, 0xFF)

	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, features[0].Str, dec[0].Str)
	require.Equal(t, features[1].Str, dec[1].Str)
}

func TestSocialInsuranceCardOmitsNameAtBirthWhenEqualToSurname(t *testing.T) {
	c, err := Lookup(header.SocialInsuranceCard)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Social insurance number", Type: Alphanumeric, Str: "123456789012"},
		{Name: "Surname", Type: BinaryUtf8, Str: "MUELLER"},
		{Name: "First name", Type: BinaryUtf8, Str: "ERIKA"},
		{Name: "Name at birth", Type: BinaryUtf8, Str: "MUELLER"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)

	// tag 0x04 must not appear on the wire.
	require.NotContains(t, enc, byte(0x04))

	enc = append(enc, 0xFF)
	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, "MUELLER", dec[3].Str) // implied equal to surname
}

func TestSocialInsuranceCardKeepsDifferingNameAtBirth(t *testing.T) {
	c, err := Lookup(header.SocialInsuranceCard)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Social insurance number", Type: Alphanumeric, Str: "123456789012"},
		{Name: "Surname", Type: BinaryUtf8, Str: "MUELLER"},
		{Name: "First name", Type: BinaryUtf8, Str: "ERIKA"},
		{Name: "Name at birth", Type: BinaryUtf8, Str: "SCHMIDT"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)
	enc = append(enc, 0xFF)

	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, "SCHMIDT", dec[3].Str)
}

func TestVisaRoundTripAndMRZTruncation(t *testing.T) {
	c, err := Lookup(header.Visa)
	require.NoError(t, err)

	mrz := strings.Repeat("A", 64) + strings.Repeat("B", 8)
	features := []FeatureValue{
		{Name: "Machine readable zone", Type: Alphanumeric, Str: mrz},
		{Name: "Duration of stay day", Type: Integer, Int: 15},
		{Name: "Duration of stay month", Type: Integer, Int: 6},
		{Name: "Duration of stay year", Type: Integer, Int: 1},
		{Name: "Passport number", Type: Alphanumeric, Str: "P12345678"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)
	enc = append(enc, 0xFF)

	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	// First 64 chars preserved, last 8 forced to "<".
	require.Equal(t, strings.Repeat("A", 64)+strings.Repeat("<", 8), dec[0].Str)
	require.Equal(t, uint64(15), dec[1].Int)
	require.Equal(t, uint64(6), dec[2].Int)
	require.Equal(t, uint64(1), dec[3].Int)
	require.Equal(t, "P12345678", dec[4].Str)
}

func TestVisaDurationSentinels(t *testing.T) {
	c, err := Lookup(header.Visa)
	require.NoError(t, err)

	base := func(day, month, year uint64) []FeatureValue {
		return []FeatureValue{
			{Name: "Machine readable zone", Type: Alphanumeric, Str: mrz72()},
			{Name: "Duration of stay day", Type: Integer, Int: day},
			{Name: "Duration of stay month", Type: Integer, Int: month},
			{Name: "Duration of stay year", Type: Integer, Int: year},
			{Name: "Passport number", Type: Alphanumeric, Str: "P12345678"},
		}
	}

	// S5: all-unknown is legal.
	_, err = c.EncodeFeatures(base(0xFF, 0xFF, 0xFF))
	require.NoError(t, err)

	// all-air-transit is legal.
	_, err = c.EncodeFeatures(base(0xFE, 0xFE, 0xFE))
	require.NoError(t, err)

	// mixed 0xFF sentinel is WrongInput.
	_, err = c.EncodeFeatures(base(0xFF, 0x05, 0xFF))
	require.Error(t, err)
}

func TestAddressStickerIdCardRoundTrip(t *testing.T) {
	c, err := Lookup(header.AddressStickerIdCard)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Document number", Type: Alphanumeric, Str: "ABC123456"},
		{Name: "Official municipality code number", Type: Numeric, Str: "12345678"},
		{Name: "Postal code", Type: Numeric, Str: "54321"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)
	enc = append(enc, 0xFF)

	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, features[0].Str, dec[0].Str)
	require.Equal(t, features[1].Str, dec[1].Str)
	require.Equal(t, features[2].Str, dec[2].Str)
}

func TestPlaceOfResidenceStickerSharesAddressStickerLayout(t *testing.T) {
	a, err := Lookup(header.AddressStickerIdCard)
	require.NoError(t, err)
	p, err := Lookup(header.PlaceOfResidenceStickerPassport)
	require.NoError(t, err)
	require.Equal(t, a.Schema().Features, p.Schema().Features)
}

func TestDecodeSkipsUnknownFeatureTags(t *testing.T) {
	c, err := Lookup(header.ResidencePermit)
	require.NoError(t, err)

	features := []FeatureValue{
		{Name: "Machine readable zone", Type: Alphanumeric, Str: mrz72()},
		{Name: "Passport number", Type: Alphanumeric, Str: "ABC123456"},
	}
	enc, err := c.EncodeFeatures(features)
	require.NoError(t, err)

	// Splice in an unknown tag/length/value before the terminator.
	enc = append(enc, 0x09, 0x02, 0xAB, 0xCD, 0xFF)

	dec, _, err := c.DecodeFeatures(enc, 0)
	require.NoError(t, err)
	require.Equal(t, features[0].Str, dec[0].Str)
}

func TestTemplateReturnsSchemaShapedBlank(t *testing.T) {
	p, err := Template(header.Visa)
	require.NoError(t, err)
	require.Len(t, p.Features, 5)
	require.Equal(t, "Machine readable zone", p.Features[0].Name)
}

func TestListSupportedHasAllSevenProfiles(t *testing.T) {
	require.Len(t, ListSupported(), 7)
}
