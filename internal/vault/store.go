package vault

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

// credentialStore is the uniform capability interface every storage layer
// implements. Get returns "" with a nil error when no credential is stored;
// a non-nil error means the layer was reachable but failed. The vault's
// read order decides, per layer, whether a failure falls through or is
// fatal.
type credentialStore interface {
	Name() string
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// apiKeyFileStore is the dedicated plaintext API key file. It represents an
// explicit, user-provided long-lived credential, so it is written with
// owner-only permissions and wins over every other layer on read.
type apiKeyFileStore struct {
	path string
}

func (s *apiKeyFileStore) Name() string { return "api key file" }

func (s *apiKeyFileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *apiKeyFileStore) Set(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	// WriteFile only applies the mode to new files; enforce it on rewrite.
	return os.Chmod(s.path, 0o600)
}

func (s *apiKeyFileStore) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// keyringStore wraps the platform secret store under a fixed service and
// account name.
type keyringStore struct {
	service string
	user    string
}

func (s *keyringStore) Name() string { return "platform secret store" }

func (s *keyringStore) Get() (string, error) {
	token, err := keyring.Get(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *keyringStore) Set(token string) error {
	return keyring.Set(s.service, s.user, token)
}

func (s *keyringStore) Delete() error {
	err := keyring.Delete(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// encryptedFileStore persists the session token encrypted with a key derived
// from the machine identity. It is the storage of last resort: a blob that
// exists but cannot be read or decrypted is an error, never a silent miss.
type encryptedFileStore struct {
	path     string
	password func() string
}

func (s *encryptedFileStore) Name() string { return "encrypted credentials file" }

func (s *encryptedFileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var blob encryptedBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return "", err
	}
	return decryptToken(&blob, s.password())
}

func (s *encryptedFileStore) Set(token string) error {
	blob, err := encryptToken(token, s.password())
	if err != nil {
		return err
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *encryptedFileStore) Delete() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
