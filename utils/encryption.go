package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Cipher encrypts sensitive profile fields with AES-256-GCM.
type Cipher struct {
	gcm cipher.AEAD
}

// NewCipher accepts a base64 encoded or raw 32 byte key.
func NewCipher(key string) (*Cipher, error) {
	if key == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is not set")
	}

	keyBytes, err := base64.StdEncoding.DecodeString(key)
	if err != nil || len(keyBytes) != 32 {
		keyBytes = []byte(key)
	}

	// Ensure the key is 32 bytes for AES-256
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes for AES-256, got %d bytes", len(keyBytes))
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher block: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Cipher{gcm: gcm}, nil
}

// Encrypt encrypts the given data using AES-256-GCM
func (c *Cipher) Encrypt(data string) (string, error) {
	if data == "" {
		return "", nil
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := c.gcm.Seal(nonce, nonce, []byte(data), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts the given encrypted data using AES-256-GCM
func (c *Cipher) Decrypt(encryptedData string) (string, error) {
	if encryptedData == "" {
		return "", nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	nonceSize := c.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt data: %w", err)
	}

	return string(plaintext), nil
}

// MaskTail keeps the last visible characters of s and masks the rest.
func MaskTail(s string, visible int) string {
	if len(s) <= visible {
		return s
	}
	return strings.Repeat("X", len(s)-visible) + s[len(s)-visible:]
}
