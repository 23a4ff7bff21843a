package header

import (
	"testing"

	"github.com/jabcode/jabpro/datecode"
	"github.com/stretchr/testify/require"
)

func sampleInfoLegacy() Info {
	return Info{
		IssuingCountry: "D",
		SignerCountry:  "DE",
		SignerID:       "01",
		CertificateRef: "ABC12",
		IssueDate:      datecode.Date{Year: 2022, Month: 2, Day: 9},
		SignatureDate:  datecode.Date{Year: 2022, Month: 2, Day: 10},
	}
}

func sampleInfoCurrent() Info {
	return Info{
		IssuingCountry: "D",
		SignerCountry:  "DE",
		SignerID:       "01",
		CertificateRef: "ABCDE12345",
		IssueDate:      datecode.Date{Year: 2022, Month: 2, Day: 9},
		SignatureDate:  datecode.Date{Year: 2022, Month: 2, Day: 10},
	}
}

func TestArrivalAttestationDiscriminator(t *testing.T) {
	// S4 — encoding an ArrivalAttestation profile yields header bytes ending
	// in ... 0xFD 0x02.
	b, err := Encode(sampleInfoLegacy(), ArrivalAttestation)
	require.NoError(t, err)
	require.Equal(t, byte(0xFD), b[len(b)-2])
	require.Equal(t, byte(0x02), b[len(b)-1])

	info, pt, headerLen, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, ArrivalAttestation, pt)
	require.Equal(t, len(b), headerLen)
	require.Equal(t, "D", info.IssuingCountry)
	require.Equal(t, "DE", info.SignerCountry)
	require.Equal(t, "01", info.SignerID)
	require.Equal(t, "ABC12", info.CertificateRef)
}

func TestRoundTripAllProfiles(t *testing.T) {
	tests := []struct {
		pt   ProfileType
		info Info
	}{
		{ArrivalAttestation, sampleInfoLegacy()},
		{SocialInsuranceCard, sampleInfoLegacy()},
		{Visa, sampleInfoCurrent()},
		{ResidencePermit, sampleInfoCurrent()},
		{SupplementarySheet, sampleInfoCurrent()},
		{AddressStickerIdCard, sampleInfoCurrent()},
		{PlaceOfResidenceStickerPassport, sampleInfoCurrent()},
	}
	for _, tt := range tests {
		b, err := Encode(tt.info, tt.pt)
		require.NoError(t, err, tt.pt)

		info, pt, headerLen, err := Decode(b)
		require.NoError(t, err, tt.pt)
		require.Equal(t, tt.pt, pt)
		require.Equal(t, len(b), headerLen)
		require.Equal(t, tt.info.SignerCountry, info.SignerCountry)
		require.Equal(t, tt.info.SignerID, info.SignerID)
		require.Equal(t, tt.info.CertificateRef, info.CertificateRef)
		require.Equal(t, tt.info.IssueDate, info.IssueDate)
		require.Equal(t, tt.info.SignatureDate, info.SignatureDate)
	}
}

func TestDecodeToleratesTrailingFeatureAndSignatureBytes(t *testing.T) {
	b, err := Encode(sampleInfoCurrent(), Visa)
	require.NoError(t, err)
	b = append(b, 0x02, 0x48, 0xFF, 0xFF, 0xFF)

	_, pt, headerLen, err := Decode(b)
	require.NoError(t, err)
	require.Equal(t, Visa, pt)
	require.Less(t, headerLen, len(b))
}

func TestEncodeRejectsUnsupportedProfileType(t *testing.T) {
	_, err := Encode(sampleInfoCurrent(), ProfileType(99))
	require.Error(t, err)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, _, _, err := Decode([]byte{0x00, 0x03})
	require.Error(t, err)
}

func TestDecodeRejectsUnknownDiscriminator(t *testing.T) {
	b, err := Encode(sampleInfoCurrent(), Visa)
	require.NoError(t, err)
	b[len(b)-1] = 0xEE

	_, _, _, err = Decode(b)
	require.Error(t, err)
}

func TestCertificateRefLengthTooLongForTwoDigits(t *testing.T) {
	info := sampleInfoCurrent()
	big := make([]byte, 100)
	for i := range big {
		big[i] = 'A'
	}
	info.CertificateRef = string(big)

	_, err := Encode(info, Visa)
	require.Error(t, err)
}
