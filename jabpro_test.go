package jabpro

import (
	"strings"
	"testing"

	"github.com/jabcode/jabpro/datecode"
	"github.com/jabcode/jabpro/header"
	"github.com/stretchr/testify/require"
)

func TestEndToEndArrivalAttestation(t *testing.T) {
	p, err := ProfileTemplate(header.ArrivalAttestation)
	require.NoError(t, err)

	p.Header = header.Info{
		IssuingCountry: "D",
		SignerCountry:  "DE",
		SignerID:       "01",
		CertificateRef: "ABC12",
		IssueDate:      datecode.Date{Year: 2022, Month: 2, Day: 9},
		SignatureDate:  datecode.Date{Year: 2022, Month: 2, Day: 10},
	}
	p.Features[0].Str = strings.Repeat("A", 72)
	p.Features[1].Str = "ABC123456789"

	profileBytes, err := EncodeProfile(p)
	require.NoError(t, err)

	sig := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	full, err := AppendSignature(profileBytes, sig)
	require.NoError(t, err)

	gotProfileBytes, gotSig, err := ParseSeal(full, len(sig))
	require.NoError(t, err)
	require.Equal(t, sig, gotSig)

	decoded, err := DecodeProfile(gotProfileBytes)
	require.NoError(t, err)
	require.Equal(t, header.ArrivalAttestation, decoded.Type)
	require.Equal(t, p.Features[1].Str, decoded.Features[1].Str)
}

func TestListSupportedProfilesHasSeven(t *testing.T) {
	require.Len(t, ListSupportedProfiles(), 7)
}
