package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	cfg := Default()

	assert.True(t, strings.HasSuffix(cfg.ConfigDir, filepath.Join(".config", AppName)))
	assert.Equal(t, filepath.Join(cfg.ConfigDir, "credentials.json"), cfg.CredentialsFile)
	assert.Equal(t, filepath.Join(cfg.ConfigDir, "project.json"), cfg.ProjectFile)
	assert.True(t, strings.HasSuffix(cfg.APIKeyFile, "."+AppName+"-auth"))
	assert.Equal(t, AppName, cfg.KeyringService)
	assert.Equal(t, "linear-user", cfg.KeyringUser)
	assert.Equal(t, DefaultAPIEndpoint, cfg.APIEndpoint)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_endpoint: https://linear.example.com/graphql\ntimeout: 90s\n",
	), 0o644))

	cfg := Default()
	cfg.applyFileOverrides(path)

	assert.Equal(t, "https://linear.example.com/graphql", cfg.APIEndpoint)
	assert.Equal(t, DefaultAuthEndpoint, cfg.AuthEndpoint, "unset keys keep their defaults")
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestFileOverridesMissingFile(t *testing.T) {
	cfg := Default()
	cfg.applyFileOverrides(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, DefaultAPIEndpoint, cfg.APIEndpoint)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestEnsureConfigDir(t *testing.T) {
	cfg := Default()
	cfg.ConfigDir = filepath.Join(t.TempDir(), "nested", "config")

	require.NoError(t, cfg.EnsureConfigDir())
	info, err := os.Stat(cfg.ConfigDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
