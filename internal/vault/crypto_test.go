package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"session token", "sess_0123456789abcdef"},
		{"api key", "lin_api_0123456789abcdef"},
		{"empty token", ""},
		{"unicode", "tøkén-ñ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := encryptToken(tt.token, "machine-password")
			require.NoError(t, err)

			got, err := decryptToken(blob, "machine-password")
			require.NoError(t, err)
			assert.Equal(t, tt.token, got)
		})
	}
}

func TestDecryptWrongPasswordFails(t *testing.T) {
	blob, err := encryptToken("secret-token", "right-password")
	require.NoError(t, err)

	got, err := decryptToken(blob, "wrong-password")
	require.Error(t, err, "wrong password must fail, never return corrupted plaintext")
	assert.Empty(t, got)
}

func TestEncryptRegeneratesSalt(t *testing.T) {
	first, err := encryptToken("same-token", "pw")
	require.NoError(t, err)
	second, err := encryptToken("same-token", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt, second.Salt, "salt must be fresh on every write")
	assert.NotEqual(t, first.Data, second.Data, "re-encrypting the same token must produce a different blob")
}

func TestDecryptCorruptBlobFails(t *testing.T) {
	blob, err := encryptToken("secret-token", "pw")
	require.NoError(t, err)

	corrupt := *blob
	corrupt.Data = "not base64!!!"
	_, err = decryptToken(&corrupt, "pw")
	assert.Error(t, err)

	truncated := *blob
	truncated.Data = "AAAA"
	_, err = decryptToken(&truncated, "pw")
	assert.Error(t, err)
}
