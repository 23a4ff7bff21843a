package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/jabcode/jabpro/header"
	"github.com/jabcode/jabpro/lentag"
	"github.com/jabcode/jabpro/tlv"
)

// Option configures a Bundle at construction time. Bundle only ever takes
// one kind of option, so this stays a plain function type rather than the
// interface/Func[T] machinery a bigger options surface would need.
type Option func(*Bundle) error

// WithCompression selects the compression codec a Bundle uses when
// marshaling. The default is CompressionNone.
func WithCompression(t CompressionType) Option {
	return func(b *Bundle) error {
		codec, err := GetCodec(t)
		if err != nil {
			return err
		}
		b.compressionType = t
		b.codec = codec

		return nil
	}
}

// Bundle is an in-memory, hash-indexed collection of encoded seals (profile
// bytes plus signature, i.e. the output of seal.AppendSignature), batched
// together for compressed storage or transfer.
type Bundle struct {
	compressionType CompressionType
	codec           Codec
	order           []uint64
	entries         map[uint64][]byte
}

// NewBundle creates an empty Bundle configured by opts.
func NewBundle(opts ...Option) (*Bundle, error) {
	b := &Bundle{
		compressionType: CompressionNone,
		codec:           NewNoOpCompressor(),
		entries:         make(map[uint64][]byte),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// identityKey hashes the (issuing_country, signer_id, certificate_ref)
// tuple that identifies a seal's issuing document with xxHash64, the same
// algorithm mebo uses for its metric identifiers.
func identityKey(info header.Info) uint64 {
	return xxhash.Sum64String(info.IssuingCountry + "|" + info.SignerID + "|" + info.CertificateRef)
}

// Add inserts sealBytes under the identity key derived from info, replacing
// any existing entry for the same identity.
func (b *Bundle) Add(info header.Info, sealBytes []byte) uint64 {
	id := identityKey(info)
	if _, exists := b.entries[id]; !exists {
		b.order = append(b.order, id)
	}
	b.entries[id] = sealBytes

	return id
}

// Lookup returns the seal bytes stored for info's identity, if any.
func (b *Bundle) Lookup(info header.Info) ([]byte, bool) {
	v, ok := b.entries[identityKey(info)]

	return v, ok
}

// Len returns the number of seals currently held.
func (b *Bundle) Len() int {
	return len(b.entries)
}

// Marshal serializes every entry as id(8 bytes big-endian) || length_tag ||
// seal_bytes, concatenated in insertion order, then compresses the result
// with the configured codec.
func (b *Bundle) Marshal() ([]byte, Stats, error) {
	buf := tlv.NewBuffer(0)

	for _, id := range b.order {
		sealBytes := b.entries[id]

		var idBytes [8]byte
		binary.BigEndian.PutUint64(idBytes[:], id)
		buf.Write(idBytes[:])

		lt, err := lentag.Encode(len(sealBytes))
		if err != nil {
			return nil, Stats{}, err
		}
		buf.Write(lt)
		buf.Write(sealBytes)
	}

	raw := buf.Bytes()
	compressed, err := b.codec.Compress(raw)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("archive: compress: %w", err)
	}

	stats := Stats{
		Algorithm:      b.compressionType,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(compressed)),
	}

	return compressed, stats, nil
}

// Unmarshal decompresses data with the Bundle's configured codec and
// replaces the Bundle's contents with the entries it contains.
func (b *Bundle) Unmarshal(data []byte) error {
	raw, err := b.codec.Decompress(data)
	if err != nil {
		return fmt.Errorf("archive: decompress: %w", err)
	}

	entries := make(map[uint64][]byte)
	var order []uint64

	cur := tlv.NewCursor(raw, 0)
	for cur.Remaining() {
		idBytes, err := cur.ReadN(8)
		if err != nil {
			return fmt.Errorf("archive: truncated entry id: %w", err)
		}
		id := binary.BigEndian.Uint64(idBytes)

		length, err := cur.ReadDERLength()
		if err != nil {
			return fmt.Errorf("archive: truncated entry length: %w", err)
		}

		sealBytes, err := cur.ReadN(length)
		if err != nil {
			return fmt.Errorf("archive: truncated entry payload: %w", err)
		}

		if _, exists := entries[id]; !exists {
			order = append(order, id)
		}
		entries[id] = append([]byte(nil), sealBytes...)
	}

	b.entries = entries
	b.order = order

	return nil
}
