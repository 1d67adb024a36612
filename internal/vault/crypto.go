package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize      = 16
	keySize       = 32
	kdfIterations = 100000
)

// encryptedBlob is the on-disk shape of the encrypted credentials file.
// Data holds base64(nonce || ciphertext); Salt holds the base64 KDF salt.
type encryptedBlob struct {
	Data string `json:"data"`
	Salt string `json:"salt"`
}

// deriveKey stretches a password into an AES-256 key with PBKDF2-HMAC-SHA256.
func deriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
}

// encryptToken seals a token with a key derived from the password and a
// fresh random salt. The salt is regenerated on every call, so encrypting
// the same token twice produces different blobs.
func encryptToken(token, password string) (*encryptedBlob, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(token), nil)
	return &encryptedBlob{
		Data: base64.StdEncoding.EncodeToString(sealed),
		Salt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// decryptToken opens a blob with a key derived from the password and the
// blob's stored salt. A wrong password fails authentication; it never
// returns corrupted plaintext silently.
func decryptToken(blob *encryptedBlob, password string) (string, error) {
	salt, err := base64.StdEncoding.DecodeString(blob.Salt)
	if err != nil {
		return "", fmt.Errorf("decoding salt: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(blob.Data)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("initializing cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("initializing cipher: %w", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():], nil)
	if err != nil {
		return "", fmt.Errorf("decrypting token: %w", err)
	}
	return string(plaintext), nil
}
