package fieldcrypt

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// maxDecompressedSize bounds what a single stored value may expand to (64MB).
const maxDecompressedSize = 64 << 20

// zstdCodec pairs a reusable encoder and decoder. Both are safe for
// concurrent EncodeAll/DecodeAll calls.
type zstdCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// sharedZstd builds the codec on first use.
var sharedZstd = sync.OnceValues(func() (*zstdCodec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecompressedSize))
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &zstdCodec{enc: enc, dec: dec}, nil
})

// compressZstd compresses a plaintext before padding.
func compressZstd(data []byte) ([]byte, error) {
	codec, err := sharedZstd()
	if err != nil {
		return nil, err
	}
	return codec.enc.EncodeAll(data, nil), nil
}

// decompressZstd reverses compressZstd. Corrupt frames and output beyond
// maxDecompressedSize both report ErrDecompressionFailed.
func decompressZstd(data []byte) ([]byte, error) {
	codec, err := sharedZstd()
	if err != nil {
		return nil, err
	}
	out, err := codec.dec.DecodeAll(data, nil)
	if err != nil || len(out) > maxDecompressedSize {
		return nil, ErrDecompressionFailed
	}
	return out, nil
}
