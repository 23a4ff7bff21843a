// Package profile implements the per-document-type feature schemas and TLV
// codecs for the seven Digital Seal profiles, and the registry that routes
// encode/decode calls to the right one.
package profile

import (
	"github.com/jabcode/jabpro/datecode"
	"github.com/jabcode/jabpro/header"
)

// FeatureType is the declared value kind of a feature.
type FeatureType uint8

const (
	Alphanumeric FeatureType = iota
	Numeric
	Integer
	DateValue
	Binary
	BinaryUtf8
)

// FeatureSchema describes one feature slot in a profile's fixed layout.
type FeatureSchema struct {
	Name      string
	MinLength int
	MaxLength int
	Required  bool
	ValueType FeatureType
	Tag       byte
}

// FeatureValue is a populated (or, for a template, empty) feature slot. Only
// the field matching ValueType is meaningful.
type FeatureValue struct {
	Name  string
	Type  FeatureType
	Str   string
	Int   uint64
	Date  datecode.Date
}

// CryptoAlgo names one hash or signature algorithm a profile may use, as
// metadata only: this package never computes or verifies a signature.
type CryptoAlgo struct {
	Algo      string
	SizeBits  int
	ValidFrom int
	ValidTill int
}

// CryptoInfo lists the hash and signature algorithms declared for a profile.
type CryptoInfo struct {
	Hash      []CryptoAlgo
	Signature []CryptoAlgo
}

// Schema is a profile's static shape: its feature slots in wire order and
// its crypto metadata.
type Schema struct {
	Type     header.ProfileType
	Features []FeatureSchema
	Crypto   CryptoInfo
}

// Profile is a populated profile: header content, feature values in schema
// order, and crypto metadata (copied from the schema; never mutated by
// decode).
type Profile struct {
	Type     header.ProfileType
	Header   header.Info
	Features []FeatureValue
	Crypto   CryptoInfo
}
