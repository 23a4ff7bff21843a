// Package archive bundles many encoded Digital Seals into one compressed,
// hash-indexed container — the kind of batch an issuing authority produces
// when it prints a run of documents together. It is new functionality (not
// part of the core codec spec.md describes) adapted from the teacher
// library's blob-bundling concept to give every pack-level compression and
// hashing dependency a concrete home; see SPEC_FULL.md §3.
package archive

import "fmt"

// CompressionType selects the codec a Bundle uses to compress its payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a byte payload.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte payload produced by the matching
// Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCompressor(),
	CompressionZstd: NewZstdCompressor(),
	CompressionS2:   NewS2Compressor(),
	CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
func GetCodec(t CompressionType) (Codec, error) {
	c, ok := builtinCodecs[t]
	if !ok {
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}

	return c, nil
}

// Stats reports the outcome of compressing one bundle payload.
type Stats struct {
	Algorithm      CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns CompressedSize/OriginalSize; values below 1.0 indicate
// successful compression.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}
