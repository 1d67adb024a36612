// Package vault stores and retrieves the active Linear credential across
// three layered backends: a dedicated plaintext API key file, the platform
// secret store, and a password-encrypted file keyed off the machine
// identity. The layers are tried in a fixed priority order with an explicit
// per-layer failure policy.
package vault

import (
	"errors"

	"github.com/royreznik/linear-cli/internal/config"
	"github.com/royreznik/linear-cli/internal/machineid"
)

// readLayer pairs a storage layer with its read failure policy. Layers
// marked failOpen fall through to the next layer on error; the rest surface
// a fatal ConfigError.
type readLayer struct {
	store    credentialStore
	failOpen bool
}

// Vault owns all access to the on-disk credential files and the platform
// secret store entry. No other component touches these paths directly.
type Vault struct {
	apiKeyFile credentialStore
	keyring    credentialStore
	encrypted  credentialStore

	readOrder []readLayer
}

// New builds a Vault over the paths and identifiers in cfg. The machine
// identity is resolved lazily, on the first encrypted-file operation.
func New(cfg *config.Config) *Vault {
	resolver := machineid.New()
	return NewWithMachineID(cfg, resolver.ID)
}

// NewWithMachineID is New with an explicit machine identity source, for
// tests that need a deterministic encryption password.
func NewWithMachineID(cfg *config.Config, machineID func() string) *Vault {
	v := &Vault{
		apiKeyFile: &apiKeyFileStore{path: cfg.APIKeyFile},
		keyring:    &keyringStore{service: cfg.KeyringService, user: cfg.KeyringUser},
		encrypted:  &encryptedFileStore{path: cfg.CredentialsFile, password: machineID},
	}
	// Read priority: API key file wins unconditionally, secret store
	// failures fall through, encrypted-file failures are fatal.
	v.readOrder = []readLayer{
		{store: v.apiKeyFile, failOpen: false},
		{store: v.keyring, failOpen: true},
		{store: v.encrypted, failOpen: false},
	}
	return v
}

// Token returns the active credential, trying each storage layer in
// priority order until one yields a non-empty value. An empty string with a
// nil error means no credential is stored anywhere.
func (v *Vault) Token() (string, error) {
	for _, layer := range v.readOrder {
		token, err := layer.store.Get()
		if err != nil {
			if layer.failOpen {
				continue
			}
			return "", configErr("failed to read credentials from "+layer.store.Name(), err)
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}

// SaveSessionToken stores a session token. The platform secret store is
// attempted first; any failure there is discarded and the token is written
// to the encrypted file instead. Only a fallback failure reaches the
// caller.
func (v *Vault) SaveSessionToken(token string) error {
	if err := v.keyring.Set(token); err == nil {
		return nil
	}
	if err := v.encrypted.Set(token); err != nil {
		return configErr("failed to save credentials", err)
	}
	return nil
}

// SaveAPIKey stores a long-lived API key in the dedicated key file,
// readable only by the owning user. The session-token layers are left
// untouched; on read the key file always wins over them.
func (v *Vault) SaveAPIKey(key string) error {
	if err := v.apiKeyFile.Set(key); err != nil {
		return configErr("failed to save API key", err)
	}
	return nil
}

// Clear erases the credential from every layer. All three deletions are
// attempted unconditionally so no layer can keep a live credential after
// logout; secret store failures are ignored, file deletion failures are
// reported.
func (v *Vault) Clear() error {
	_ = v.keyring.Delete()

	errEncrypted := v.encrypted.Delete()
	errAPIKey := v.apiKeyFile.Delete()
	if err := errors.Join(errEncrypted, errAPIKey); err != nil {
		return configErr("failed to clear credentials", err)
	}
	return nil
}
