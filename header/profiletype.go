package header

import "fmt"

// ProfileType enumerates the seven Digital Seal document profiles. Each
// value maps bijectively to a (version, feature_ref, document_type)
// discriminator triple via the discriminators table below — a table keyed by
// ProfileType rather than the source's chained equality checks (design
// note: profile dispatch).
type ProfileType uint8

const (
	Visa ProfileType = iota
	ArrivalAttestation
	SocialInsuranceCard
	ResidencePermit
	SupplementarySheet
	AddressStickerIdCard
	PlaceOfResidenceStickerPassport
)

func (p ProfileType) String() string {
	switch p {
	case Visa:
		return "Visa"
	case ArrivalAttestation:
		return "ArrivalAttestation"
	case SocialInsuranceCard:
		return "SocialInsuranceCard"
	case ResidencePermit:
		return "ResidencePermit"
	case SupplementarySheet:
		return "SupplementarySheet"
	case AddressStickerIdCard:
		return "AddressStickerIdCard"
	case PlaceOfResidenceStickerPassport:
		return "PlaceOfResidenceStickerPassport"
	default:
		return fmt.Sprintf("ProfileType(%d)", uint8(p))
	}
}

// Version is the Digital Seal header version byte.
type Version byte

const (
	VersionLegacy  Version = 0x02
	VersionCurrent Version = 0x03
)

// discriminator is the (version, feature_ref, document_type) triple that
// identifies a profile on the wire.
type discriminator struct {
	version    Version
	featureRef byte
	docType    byte
}

var discriminators = map[ProfileType]discriminator{
	ArrivalAttestation:              {VersionLegacy, 0xFD, 0x02},
	SocialInsuranceCard:             {VersionLegacy, 0xFC, 0x04},
	Visa:                            {VersionCurrent, 0x5D, 0x01},
	ResidencePermit:                 {VersionCurrent, 0xFB, 0x06},
	SupplementarySheet:              {VersionCurrent, 0xFA, 0x06},
	AddressStickerIdCard:            {VersionCurrent, 0xF9, 0x08},
	PlaceOfResidenceStickerPassport: {VersionCurrent, 0xF8, 0x0A},
}

var profileByDiscriminator = func() map[discriminator]ProfileType {
	m := make(map[discriminator]ProfileType, len(discriminators))
	for pt, d := range discriminators {
		m[d] = pt
	}

	return m
}()
