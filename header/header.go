// Package header implements the Digital Seal header codec: magic byte,
// version, issuing country, signer/certificate-reference block, the two
// packed dates, and the feature-reference/document-type discriminator pair
// that identifies the profile.
package header

import (
	"fmt"

	"github.com/jabcode/jabpro/c40"
	"github.com/jabcode/jabpro/datecode"
	"github.com/jabcode/jabpro/errs"
)

const magic = 0xDC

// fixedLength is the size in bytes of every header field except the
// variable-length signer/cert-ref block: magic(1) + version(1) + country(2)
// + issue date(3) + signature date(3) + feature_ref(1) + doc_type(1).
const fixedLength = 12

// Info is the decoded, profile-independent content of a header.
type Info struct {
	IssuingCountry string
	SignerCountry  string
	SignerID       string
	CertificateRef string
	IssueDate      datecode.Date
	SignatureDate  datecode.Date
}

// Encode produces the wire bytes for a header identifying profile type pt.
// The feature region begins right after the returned bytes, so their length
// is the header length.
func Encode(info Info, pt ProfileType) ([]byte, error) {
	d, ok := discriminators[pt]
	if !ok {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnsupportedProfileType, pt)
	}

	countryPadded := padRight(info.IssuingCountry, 3)
	countryBytes, err := c40.Encode(countryPadded)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing country: %v", errs.ErrInvalidHeader, err)
	}

	signerBlock, err := encodeSignerBlock(info, d.version)
	if err != nil {
		return nil, err
	}

	issueDateBytes, err := datecode.Encode(info.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: issue date: %v", errs.ErrInvalidHeader, err)
	}
	sigDateBytes, err := datecode.Encode(info.SignatureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: signature date: %v", errs.ErrInvalidHeader, err)
	}

	out := make([]byte, 0, fixedLength+len(signerBlock))
	out = append(out, magic, byte(d.version))
	out = append(out, countryBytes...)
	out = append(out, signerBlock...)
	out = append(out, issueDateBytes...)
	out = append(out, sigDateBytes...)
	out = append(out, d.featureRef, d.docType)

	return out, nil
}

// encodeSignerBlock encodes the signer_country/signer_id/certificate_ref
// portion of the header, which differs by header version (spec §4.4, §9
// design note 2).
func encodeSignerBlock(info Info, v Version) ([]byte, error) {
	switch v {
	case VersionLegacy:
		if len(info.CertificateRef) != 5 {
			return nil, fmt.Errorf("%w: legacy certificate ref must be exactly 5 characters, got %d", errs.ErrInvalidHeader, len(info.CertificateRef))
		}
		plain := info.SignerCountry + info.SignerID + info.CertificateRef
		return c40.Encode(plain)
	case VersionCurrent:
		if len(info.CertificateRef) > 99 {
			return nil, fmt.Errorf("%w: certificate ref length %d cannot be expressed as 2 decimal digits", errs.ErrInvalidHeader, len(info.CertificateRef))
		}
		head := fmt.Sprintf("%s%s%02d", info.SignerCountry, info.SignerID, len(info.CertificateRef))
		headBytes, err := c40.Encode(head)
		if err != nil {
			return nil, fmt.Errorf("%w: signer block: %v", errs.ErrInvalidHeader, err)
		}
		refBytes, err := c40.Encode(info.CertificateRef)
		if err != nil {
			return nil, fmt.Errorf("%w: certificate ref: %v", errs.ErrInvalidHeader, err)
		}
		return append(headBytes, refBytes...), nil
	default:
		return nil, fmt.Errorf("%w: version 0x%02X", errs.ErrUnsupportedHeaderVersion, byte(v))
	}
}

// Decode parses a header from the start of seal and returns its content, the
// identified profile type, and the number of bytes the header occupied.
// seal may have a feature region and signature suffix following the header;
// only the header's own bytes are consumed.
func Decode(seal []byte) (Info, ProfileType, int, error) {
	if len(seal) < 2 || seal[0] != magic {
		return Info{}, 0, 0, fmt.Errorf("%w: missing magic byte", errs.ErrInvalidHeader)
	}

	v := Version(seal[1])
	if v != VersionLegacy && v != VersionCurrent {
		return Info{}, 0, 0, fmt.Errorf("%w: 0x%02X", errs.ErrUnsupportedHeaderVersion, byte(v))
	}

	if len(seal) < 4 {
		return Info{}, 0, 0, fmt.Errorf("%w: truncated before issuing country", errs.ErrInvalidHeader)
	}
	countryPadded, err := c40.Decode(seal[2:4])
	if err != nil {
		return Info{}, 0, 0, fmt.Errorf("%w: issuing country: %v", errs.ErrInvalidHeader, err)
	}

	info := Info{IssuingCountry: unpadRight(countryPadded)}

	signerCountry, signerID, certRef, signerBlockLen, err := decodeSignerBlock(seal[4:], v)
	if err != nil {
		return Info{}, 0, 0, err
	}
	info.SignerCountry = signerCountry
	info.SignerID = signerID
	info.CertificateRef = certRef

	pos := 4 + signerBlockLen
	if len(seal) < pos+8 {
		return Info{}, 0, 0, fmt.Errorf("%w: truncated before dates/discriminator", errs.ErrInvalidHeader)
	}

	issueDate, err := datecode.Decode(seal[pos : pos+3])
	if err != nil {
		return Info{}, 0, 0, fmt.Errorf("%w: issue date: %v", errs.ErrInvalidHeader, err)
	}
	sigDate, err := datecode.Decode(seal[pos+3 : pos+6])
	if err != nil {
		return Info{}, 0, 0, fmt.Errorf("%w: signature date: %v", errs.ErrInvalidHeader, err)
	}
	info.IssueDate = issueDate
	info.SignatureDate = sigDate

	featureRef := seal[pos+6]
	docType := seal[pos+7]

	pt, ok := profileByDiscriminator[discriminator{v, featureRef, docType}]
	if !ok {
		return Info{}, 0, 0, fmt.Errorf("%w: (0x%02X, 0x%02X, 0x%02X)", errs.ErrUnknownProfileType, byte(v), featureRef, docType)
	}

	headerLen := pos + 8

	return info, pt, headerLen, nil
}

// decodeSignerBlock decodes the signer_country/signer_id/certificate_ref
// block starting at data[0], returning the decoded fields and the number of
// bytes consumed.
func decodeSignerBlock(data []byte, v Version) (signerCountry, signerID, certRef string, consumed int, err error) {
	switch v {
	case VersionLegacy:
		if len(data) < 6 {
			return "", "", "", 0, fmt.Errorf("%w: truncated legacy signer block", errs.ErrInvalidHeader)
		}
		plain, derr := c40.Decode(data[:6])
		if derr != nil {
			return "", "", "", 0, fmt.Errorf("%w: legacy signer block: %v", errs.ErrInvalidHeader, derr)
		}
		if len(plain) != 9 {
			return "", "", "", 0, fmt.Errorf("%w: legacy signer block decoded to %d characters, want 9", errs.ErrInvalidHeader, len(plain))
		}

		return plain[0:2], plain[2:4], plain[4:9], 6, nil
	case VersionCurrent:
		if len(data) < 4 {
			return "", "", "", 0, fmt.Errorf("%w: truncated current signer block head", errs.ErrInvalidHeader)
		}
		head, derr := c40.Decode(data[:4])
		if derr != nil {
			return "", "", "", 0, fmt.Errorf("%w: signer block head: %v", errs.ErrInvalidHeader, derr)
		}
		if len(head) != 6 {
			return "", "", "", 0, fmt.Errorf("%w: signer block head decoded to %d characters, want 6", errs.ErrInvalidHeader, len(head))
		}

		refLen, perr := parseTwoDigitDecimal(head[4:6])
		if perr != nil {
			return "", "", "", 0, perr
		}

		refByteLen := ((refLen + 2) / 3) * 2
		if len(data) < 4+refByteLen {
			return "", "", "", 0, fmt.Errorf("%w: truncated certificate ref", errs.ErrInvalidHeader)
		}
		ref, derr := c40.Decode(data[4 : 4+refByteLen])
		if derr != nil {
			return "", "", "", 0, fmt.Errorf("%w: certificate ref: %v", errs.ErrInvalidHeader, derr)
		}
		if len(ref) != refLen {
			return "", "", "", 0, fmt.Errorf("%w: certificate ref decoded to %d characters, want %d", errs.ErrInvalidHeader, len(ref), refLen)
		}

		return head[0:2], head[2:4], ref, 4 + refByteLen, nil
	default:
		return "", "", "", 0, fmt.Errorf("%w: version 0x%02X", errs.ErrUnsupportedHeaderVersion, byte(v))
	}
}

// parseTwoDigitDecimal decodes the 2-character decimal certificate-ref
// length written by encodeSignerBlock. The source's decoder instead computed
// (d0-'0')*16+(d1-'0') for this field, which only agrees with true decimal
// for single-digit lengths; this reimplementation uses true decimal
// throughout so encode and decode agree for every representable length (see
// design note: legacy vs current cert-ref length encoding).
func parseTwoDigitDecimal(s string) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("%w: certificate ref length %q is not 2 decimal digits", errs.ErrInvalidHeader, s)
	}

	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += "<"
	}

	return s
}

func unpadRight(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '<' {
		i--
	}

	return s[:i]
}
