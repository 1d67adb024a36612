package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/royreznik/linear-cli/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ConfigDir:       dir,
		CredentialsFile: filepath.Join(dir, "credentials.json"),
		APIKeyFile:      filepath.Join(dir, "auth"),
		ProjectFile:     filepath.Join(dir, "project.json"),
		KeyringService:  "linear-cli-test",
		KeyringUser:     "linear-user",
	}
}

func testVault(t *testing.T, cfg *config.Config) *Vault {
	t.Helper()
	return NewWithMachineID(cfg, func() string { return "test-machine-id" })
}

func TestSaveSessionTokenRoundTripViaKeyring(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t)
	v := testVault(t, cfg)

	require.NoError(t, v.SaveSessionToken("session-token-1"))

	token, err := v.Token()
	require.NoError(t, err)
	assert.Equal(t, "session-token-1", token)

	// The keyring accepted the write, so no encrypted file is created.
	_, err = os.Stat(cfg.CredentialsFile)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveSessionTokenFallsBackToEncryptedFile(t *testing.T) {
	keyring.MockInitWithError(errors.New("secret store unavailable"))
	cfg := testConfig(t)
	v := testVault(t, cfg)

	require.NoError(t, v.SaveSessionToken("session-token-2"))

	// The write landed in the encrypted file, and reads still find it
	// even though the keyring errors on every call.
	_, err := os.Stat(cfg.CredentialsFile)
	require.NoError(t, err)

	token, err := v.Token()
	require.NoError(t, err)
	assert.Equal(t, "session-token-2", token)
}

func TestAPIKeyWinsOverSessionToken(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t)
	v := testVault(t, cfg)

	require.NoError(t, v.SaveSessionToken("stale-session-token"))
	require.NoError(t, v.SaveAPIKey("lin_api_explicit"))

	token, err := v.Token()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_explicit", token, "API key file has unconditional read priority")
}

func TestAPIKeyFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	keyring.MockInit()
	cfg := testConfig(t)
	v := testVault(t, cfg)

	require.NoError(t, v.SaveAPIKey("lin_api_secret"))

	info, err := os.Stat(cfg.APIKeyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenEmptyWhenNothingStored(t *testing.T) {
	keyring.MockInit()
	v := testVault(t, testConfig(t))

	token, err := v.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestKeyringReadFailureFallsThrough(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus is down"))
	cfg := testConfig(t)
	v := testVault(t, cfg)

	// Seed the encrypted file directly through the fallback store.
	require.NoError(t, v.encrypted.Set("fallback-token"))

	token, err := v.Token()
	require.NoError(t, err)
	assert.Equal(t, "fallback-token", token)
}

func TestCorruptEncryptedFileIsFatal(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig(t)
	v := testVault(t, cfg)

	require.NoError(t, os.WriteFile(cfg.CredentialsFile, []byte("{not json"), 0o600))

	_, err := v.Token()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr, "corrupt last-resort storage must not be a silent miss")
}

func TestEncryptedFileWrongMachineIDIsFatal(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret store"))
	cfg := testConfig(t)

	writer := NewWithMachineID(cfg, func() string { return "machine-a" })
	require.NoError(t, writer.SaveSessionToken("tok"))

	reader := NewWithMachineID(cfg, func() string { return "machine-b" })
	_, err := reader.Token()
	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestClearErasesEveryLayer(t *testing.T) {
	tests := []struct {
		name string
		seed func(t *testing.T, v *Vault)
	}{
		{
			name: "keyring only",
			seed: func(t *testing.T, v *Vault) {
				require.NoError(t, v.keyring.Set("in-keyring"))
			},
		},
		{
			name: "encrypted file only",
			seed: func(t *testing.T, v *Vault) {
				require.NoError(t, v.encrypted.Set("in-file"))
			},
		},
		{
			name: "api key only",
			seed: func(t *testing.T, v *Vault) {
				require.NoError(t, v.SaveAPIKey("lin_api_x"))
			},
		},
		{
			name: "all layers",
			seed: func(t *testing.T, v *Vault) {
				require.NoError(t, v.keyring.Set("in-keyring"))
				require.NoError(t, v.encrypted.Set("in-file"))
				require.NoError(t, v.SaveAPIKey("lin_api_x"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyring.MockInit()
			v := testVault(t, testConfig(t))
			tt.seed(t, v)

			require.NoError(t, v.Clear())

			token, err := v.Token()
			require.NoError(t, err)
			assert.Empty(t, token, "clear must leave no layer with a live credential")
		})
	}
}

func TestClearIgnoresKeyringFailure(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret store"))
	v := testVault(t, testConfig(t))
	require.NoError(t, v.encrypted.Set("tok"))

	require.NoError(t, v.Clear())
}

func TestProjectStoreRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	store := NewProjectStore(cfg)

	require.NoError(t, store.Save(DefaultProject{ID: "p1", Name: "Project 1"}))

	got, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "Project 1", got.Name)

	require.NoError(t, store.Clear())
	got, err = store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectStoreAbsentMeansNoDefault(t *testing.T) {
	store := NewProjectStore(testConfig(t))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing an absent record is not an error.
	require.NoError(t, store.Clear())
}

func TestProjectStoreInvalidRecordIsFatal(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{oops"},
		{"missing name", `{"id":"p1"}`},
		{"missing id", `{"name":"Project 1"}`},
		{"wrong shape", `["p1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			require.NoError(t, os.WriteFile(cfg.ProjectFile, []byte(tt.data), 0o644))

			_, err := NewProjectStore(cfg).Get()
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
		})
	}
}

func TestProjectStoreOverwritesWholesale(t *testing.T) {
	cfg := testConfig(t)
	store := NewProjectStore(cfg)

	require.NoError(t, store.Save(DefaultProject{ID: "p1", Name: "First"}))
	require.NoError(t, store.Save(DefaultProject{ID: "p2", Name: "Second"}))

	data, err := os.ReadFile(cfg.ProjectFile)
	require.NoError(t, err)
	var record map[string]string
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, map[string]string{"id": "p2", "name": "Second"}, record)
}
