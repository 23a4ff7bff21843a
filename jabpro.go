// Package jabpro provides encoding and decoding of Digital Seals as defined
// by BSI TR-03137: compact, binary, signed representations of the data
// printed on identity documents (visas, residence permits, social insurance
// cards, arrival attestations, and address/place-of-residence stickers).
//
// # Core Features
//
//   - Seven document profiles: Visa, ArrivalAttestation, SocialInsuranceCard,
//     ResidencePermit, SupplementarySheet, AddressStickerIdCard, and
//     PlaceOfResidenceStickerPassport
//   - C40 text compression, DER-style length-tag framing (ArrivalAttestation
//     and SocialInsuranceCard use a single raw length byte instead), and a
//     packed date codec
//   - Explicit (value, error) returns everywhere — no process-wide last-error
//     state to synchronize across goroutines
//   - Metadata-only crypto declarations per profile; this package never
//     computes or verifies a signature
//   - An optional archive package for batching many encoded seals into one
//     compressed, hash-indexed container
//
// # Basic Usage
//
// Populating and encoding a profile:
//
//	p, err := jabpro.ProfileTemplate(header.ResidencePermit)
//	p.Header = header.Info{ ... }
//	p.Features[0].Str = mrz  // "Machine readable zone"
//	p.Features[1].Str = passportNumber
//
//	profileBytes, err := jabpro.EncodeProfile(p)
//	seal, err := jabpro.AppendSignature(profileBytes, signature)
//
// Parsing a seal back:
//
//	profileBytes, sig, err := jabpro.ParseSeal(seal, len(signature))
//	p, err := jabpro.DecodeProfile(profileBytes)
package jabpro

import (
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/profile"
	"github.com/jabcode/jabpro/seal"
)

// ListSupportedProfiles returns every profile type this library can encode
// and decode.
func ListSupportedProfiles() []header.ProfileType {
	return profile.ListSupported()
}

// ProfileTemplate returns a blank profile.Profile for pt: feature slots
// present with their names and declared types but empty values, ready for a
// caller to populate before EncodeProfile.
func ProfileTemplate(pt header.ProfileType) (profile.Profile, error) {
	return profile.Template(pt)
}

// EncodeProfile validates p and encodes it to its wire bytes: header
// followed by the feature region, with no signature suffix.
func EncodeProfile(p profile.Profile) ([]byte, error) {
	return seal.EncodeProfile(p)
}

// AppendSignature produces a complete seal from encoded profile bytes and a
// signature: profile || 0xFF || length_tag(len(sig)) || sig.
func AppendSignature(profileBytes, sig []byte) ([]byte, error) {
	return seal.AppendSignature(profileBytes, sig)
}

// DecodeHeader parses just the header of a seal, tolerating the presence of
// a feature region and signature suffix past it.
func DecodeHeader(sealBytes []byte) (header.Info, header.ProfileType, error) {
	return seal.DecodeHeader(sealBytes)
}

// ParseSeal splits a seal into its profile and signature parts, given the
// expected signature length.
func ParseSeal(sealBytes []byte, sigLen int) (profileBytes, sig []byte, err error) {
	return seal.ParseSeal(sealBytes, sigLen)
}

// DecodeProfile parses a full profile (header plus feature region) into a
// populated profile.Profile.
func DecodeProfile(profileBytes []byte) (profile.Profile, error) {
	return seal.DecodeProfile(profileBytes)
}
