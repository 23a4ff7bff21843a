// Package seal assembles and parses complete Digital Seals: header || features
// || 0xFF || length-tag || signature. It wires together header, profile, and
// lentag to provide the top-level encode/decode/parse operations spec.md §6
// describes as the core's external interface.
package seal

import (
	"fmt"

	"github.com/jabcode/jabpro/errs"
	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/lentag"
	"github.com/jabcode/jabpro/profile"
	"github.com/jabcode/jabpro/validate"
)

// EncodeProfile validates and encodes p into its profile bytes (header plus
// feature region, no signature suffix).
func EncodeProfile(p profile.Profile) ([]byte, error) {
	if err := validate.Header(p.Header.IssuingCountry, p.Header.SignerCountry, p.Header.SignerID, p.Header.CertificateRef); err != nil {
		return nil, err
	}
	if err := p.Header.IssueDate.Validate(); err != nil {
		return nil, err
	}
	if err := p.Header.SignatureDate.Validate(); err != nil {
		return nil, err
	}

	codec, err := profile.Lookup(p.Type)
	if err != nil {
		return nil, err
	}

	headerBytes, err := header.Encode(p.Header, p.Type)
	if err != nil {
		return nil, err
	}

	featureBytes, err := codec.EncodeFeatures(p.Features)
	if err != nil {
		return nil, err
	}

	return append(headerBytes, featureBytes...), nil
}

// AppendSignature produces a complete seal from a profile and its signature:
// profile || 0xFF || length_tag(len(sig)) || sig.
func AppendSignature(profileBytes, sig []byte) ([]byte, error) {
	lt, err := lentag.Encode(len(sig))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(profileBytes)+1+len(lt)+len(sig))
	out = append(out, profileBytes...)
	out = append(out, 0xFF)
	out = append(out, lt...)
	out = append(out, sig...)

	return out, nil
}

// ParseSeal splits a seal into its profile and signature parts, given the
// expected signature length sigLen. It locates the signature marker by
// walking backward from the end of the seal rather than forward from the
// header, since the signature's own length-tag size depends on sigLen, not
// on parsing the feature region.
func ParseSeal(sealBytes []byte, sigLen int) (profileBytes, sig []byte, err error) {
	if sigLen < 0 {
		return nil, nil, fmt.Errorf("%w: negative signature length", errs.ErrInvalidSignatureLength)
	}

	lt, err := lentag.Encode(sigLen)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errs.ErrInvalidSignatureLength, err)
	}
	n := len(lt)

	markerPos := len(sealBytes) - sigLen - n - 1
	if markerPos < 0 {
		return nil, nil, fmt.Errorf("%w: seal shorter than declared signature", errs.ErrSignatureNotFound)
	}
	if sealBytes[markerPos] != 0xFF {
		return nil, nil, fmt.Errorf("%w: no 0xFF marker at expected offset %d", errs.ErrSignatureTagNotFound, markerPos)
	}

	length, consumed, err := lentag.Decode(sealBytes[markerPos+1:])
	if err != nil {
		return nil, nil, err
	}
	if consumed != n || length != sigLen {
		return nil, nil, fmt.Errorf("%w: signature length tag decodes to %d, want %d", errs.ErrInvalidSignatureLength, length, sigLen)
	}

	profileBytes = sealBytes[:markerPos]
	sig = sealBytes[markerPos+1+n:]

	return profileBytes, sig, nil
}

// DecodeHeader runs the §4.4 header codec over seal, tolerating the presence
// of a feature region and signature suffix past the header.
func DecodeHeader(sealBytes []byte) (header.Info, header.ProfileType, error) {
	info, pt, _, err := header.Decode(sealBytes)
	return info, pt, err
}

// DecodeProfile parses a full profile (header plus feature region, no
// signature suffix) into a populated profile.Profile.
func DecodeProfile(profileBytes []byte) (profile.Profile, error) {
	info, pt, headerLen, err := header.Decode(profileBytes)
	if err != nil {
		return profile.Profile{}, err
	}

	codec, err := profile.Lookup(pt)
	if err != nil {
		return profile.Profile{}, err
	}

	features, _, err := codec.DecodeFeatures(profileBytes, headerLen)
	if err != nil {
		return profile.Profile{}, err
	}

	return profile.Profile{
		Type:     pt,
		Header:   info,
		Features: features,
		Crypto:   codec.Schema().Crypto,
	}, nil
}
