package fieldcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelope_EncodeDecode(t *testing.T) {
	data := []byte{0x00, 0x01, 0xfe, 0xff}

	s := encodeEnvelope(data)
	require.Equal(t, "AAH+/w==", s) // standard alphabet, padded

	decoded, err := decodeEnvelope(s)
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"illegal character", "not base64!"},
		{"url alphabet", "AAH-_w=="},
		{"missing padding", "AAH+/w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEnvelope(tt.input)
			require.ErrorIs(t, err, ErrDecode)
			require.Equal(t, KindDecode, KindOf(err))
		})
	}
}

func TestSplitEnvelope_Deterministic(t *testing.T) {
	mode := resolveIV("tag", "")
	data := make([]byte, 32)

	iv, ciphertext, err := splitEnvelope(data, mode)
	require.NoError(t, err)
	require.Nil(t, iv)
	require.Len(t, ciphertext, 32)
}

func TestSplitEnvelope_Random(t *testing.T) {
	mode := resolveIV("", "")
	data := make([]byte, 48)
	data[0] = 0xaa
	data[16] = 0xbb

	iv, ciphertext, err := splitEnvelope(data, mode)
	require.NoError(t, err)
	require.Len(t, iv, ivSize)
	require.Equal(t, byte(0xaa), iv[0])
	require.Len(t, ciphertext, 32)
	require.Equal(t, byte(0xbb), ciphertext[0])
}

func TestSplitEnvelope_Truncated(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		size int
	}{
		{"deterministic empty", "tag", 0},
		{"deterministic short", "tag", 15},
		{"random empty", "", 0},
		{"random iv only", "", 16},
		{"random short block", "", 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := splitEnvelope(make([]byte, tt.size), resolveIV(tt.tag, ""))
			require.ErrorIs(t, err, ErrTruncated)
			require.Equal(t, KindDecode, KindOf(err))
		})
	}
}
