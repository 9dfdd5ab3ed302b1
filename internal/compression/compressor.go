package compression

import (
	"errors"
	"fmt"
)

// ErrUnknownCompression - the requested compression type has no codec.
var ErrUnknownCompression = errors.New("unknown compression type")

// Compressor - interface for data compression and decompression.
type Compressor interface {
	// Compress - compresses the input bytes.
	Compress(data []byte) ([]byte, error)
	// Decompress - reverses Compress.
	Decompress(data []byte) ([]byte, error)
}

// CompressionType - name of a supported codec.
type CompressionType string

const (
	Gzip  CompressionType = "gzip"
	Zstd  CompressionType = "zstd"
	Bzip2 CompressionType = "bzip2"
	Flate CompressionType = "flate"
)

// Types - the supported codecs, in a stable order.
func Types() []CompressionType {
	return []CompressionType{Bzip2, Flate, Gzip, Zstd}
}

// New - creates a codec for the given compression type.
func New(ct CompressionType) (Compressor, error) {
	switch ct {
	case Gzip:
		return new(GzipCompressor), nil
	case Zstd:
		return new(ZstdCompressor), nil
	case Bzip2:
		return new(Bzip2Compressor), nil
	case Flate:
		return new(FlateCompressor), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, ct)
}
