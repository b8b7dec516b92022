package fieldcrypt

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressZstd_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"small text", []byte("hello world")},
		{"empty", []byte{}},
		{"large text", []byte(strings.Repeat("hello world ", 1000))},
		{"json-like", []byte(`{"name":"test","values":[1,2,3],"nested":{"a":"b"}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := compressZstd(tt.data)
			require.NoError(t, err)

			decompressed, err := decompressZstd(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.data, decompressed))
		})
	}
}

func TestDecompressZstd_Garbage(t *testing.T) {
	_, err := decompressZstd([]byte("definitely not a zstd frame"))
	require.ErrorIs(t, err, ErrDecompressionFailed)
	require.Equal(t, KindDecryption, KindOf(err))
}

func TestWithCompression_RoundTrip(t *testing.T) {
	cipher := testCipher(t, WithCompression())

	for _, tag := range []string{"", "fixed-tag"} {
		for _, v := range []string{"", examplePlain, strings.Repeat("compress me ", 500)} {
			s, err := cipher.ProtectString(v, tag)
			require.NoError(t, err)

			plain, err := cipher.UnprotectString(s, tag)
			require.NoError(t, err)
			require.Equal(t, v, plain)
		}
	}
}

func TestWithCompression_ShrinksRepetitiveValues(t *testing.T) {
	value := strings.Repeat("aaaaaaaaaa", 1000)

	plain, err := testCipher(t).ProtectString(value, "tag")
	require.NoError(t, err)
	compressed, err := testCipher(t, WithCompression()).ProtectString(value, "tag")
	require.NoError(t, err)

	require.Less(t, len(compressed), len(plain)/10)
}

func TestWithCompression_IsStoreWide(t *testing.T) {
	// Values written without compression cannot be read by a compressing cipher.
	s, err := testCipher(t).ProtectString(examplePlain, "tag")
	require.NoError(t, err)

	_, err = testCipher(t, WithCompression()).UnprotectString(s, "tag")
	require.ErrorIs(t, err, ErrDecompressionFailed)

	raw, _ := base64.StdEncoding.DecodeString(s)
	require.Len(t, raw, 32)
}
