package fieldcrypt

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithSecret_CopiesInput(t *testing.T) {
	secret := []byte("mutable secret")
	cipher, err := New(WithSecret(string(secret)), WithIterations(testIterations))
	require.NoError(t, err)

	secret[0] = 'X'
	require.Equal(t, "mutable secret", string(cipher.config.secret))
}

func TestWithSecret_LastWins(t *testing.T) {
	cipher, err := New(WithSecret("first"), WithSecret("second"))
	require.NoError(t, err)
	require.Equal(t, "second", string(cipher.config.secret))
}

func TestWithGlobalIV(t *testing.T) {
	cipher := testCipher(t, WithGlobalIV(exampleGlobalIV))
	require.Equal(t, exampleGlobalIV, cipher.config.globalIV)
}

func TestWithIterations(t *testing.T) {
	cipher := testCipher(t, WithIterations(2500))
	require.Equal(t, 2500, cipher.config.iterations)
}

func TestWithIterations_ChangesCiphertext(t *testing.T) {
	a, err := testCipher(t).ProtectString(examplePlain, "tag")
	require.NoError(t, err)
	b, err := testCipher(t, WithIterations(testIterations+1)).ProtectString(examplePlain, "tag")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestWithCompression(t *testing.T) {
	require.True(t, testCipher(t, WithCompression()).config.compression)
	require.False(t, testCipher(t).config.compression)
}

func TestWithEmptyStringAsNull(t *testing.T) {
	require.True(t, testCipher(t, WithEmptyStringAsNull()).config.emptyStringAsNull)
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cipher := testCipher(t, WithLogger(logger))
	require.Same(t, logger, cipher.config.logger)

	// nil keeps the default
	cipher = testCipher(t, WithLogger(nil))
	require.NotNil(t, cipher.config.logger)
}
