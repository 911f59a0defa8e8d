// Package secrets encrypts integration setting values at rest. API keys and
// webhook secrets never reach the database in plain text.
package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
)

var (
	// ErrEmptyKey means no master key was configured.
	ErrEmptyKey = errors.New("secrets: master key is empty")
	// ErrMalformedCiphertext means the stored value is not a valid sealed box.
	ErrMalformedCiphertext = errors.New("secrets: malformed ciphertext")
)

// AEADCipher seals setting values with XChaCha20-Poly1305. The master key
// string is stretched to the cipher key size with SHA-256; ciphertexts are
// base64 strings of nonce followed by sealed payload.
type AEADCipher struct {
	key [chacha20poly1305.KeySize]byte
}

// NewAEADCipher creates a new AEADCipher from the master key string.
func NewAEADCipher(masterKey string) (*AEADCipher, error) {
	if masterKey == "" {
		return nil, ErrEmptyKey
	}
	c := &AEADCipher{key: sha256.Sum256([]byte(masterKey))}
	return c, nil
}

// Encrypt seals a plaintext value. Each call uses a fresh random nonce, so
// equal plaintexts produce different ciphertexts.
func (c *AEADCipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", fmt.Errorf("secrets: init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secrets: generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
func (c *AEADCipher) Decrypt(ciphertext string) (string, error) {
	sealed, err := base64.RawStdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", fmt.Errorf("secrets: init cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, payload := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, payload, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	return string(plaintext), nil
}

// Ensure AEADCipher implements the SettingsCipher port
var _ appintegration.SettingsCipher = (*AEADCipher)(nil)
