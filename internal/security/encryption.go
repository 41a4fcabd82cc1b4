// Package security wraps document content for at-rest storage: symmetric
// encryption, metadata tagging, and plaintext hashing for tamper detection.
//
// The content hash is computed over the plaintext before encryption and is the
// sole integrity oracle at decryption time. A mismatch signals corruption or
// tampering and is surfaced as a distinct error, never silently ignored.
package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/pbkdf2"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// Service provides at-rest encryption and integrity verification for document
// content. The key is fixed at construction and read-only afterwards, so a
// single Service may be used concurrently without locking.
type Service struct {
	key       []byte
	ephemeral bool
}

// NewService creates a Service from the configured secret. The secret is
// stretched into a 256-bit key with PBKDF2-SHA256.
//
// When the secret is empty a cryptographically random key is generated
// instead. That key is not persisted: anything encrypted with it becomes
// unrecoverable on restart. The condition is logged loudly as an operational
// hazard, never hidden.
func NewService(secret string) (*Service, error) {
	if secret != "" {
		key := pbkdf2.Key(
			[]byte(secret),
			[]byte(constants.KeyDerivationSalt),
			constants.KeyDerivationIterations,
			constants.EncryptionKeyLength,
			sha256.New,
		)
		return &Service{key: key}, nil
	}

	key := make([]byte, constants.EncryptionKeyLength)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("%w: failed to generate fallback key: %v", utils.ErrMissingEncryptionKey, err)
	}

	log.Warn().
		Str("env_var", constants.EnvEncryptionKey).
		Msg("DOCUMENT_ENCRYPTION_KEY is not set; generated an ephemeral key. Encrypted data will be UNRECOVERABLE after restart. Do not run production this way.")

	return &Service{key: key, ephemeral: true}, nil
}

// IsEphemeral reports whether the service runs on a generated, non-persisted key.
func (s *Service) IsEphemeral() bool {
	return s.ephemeral
}

// Encrypt wraps content for at-rest storage using AES-256-CBC with a fresh
// random IV per call. Binary content is base64 encoded before encryption so the
// plaintext handed to the cipher is text-safe; Metadata.ContentType records the
// encoding so Decrypt can reverse it.
func (s *Service) Encrypt(content []byte, contentType string) (*models.EncryptedPayload, error) {
	if contentType != constants.ContentTypeText && contentType != constants.ContentTypeBinary {
		return nil, fmt.Errorf("unknown content type %q", contentType)
	}

	plaintext := content
	if contentType == constants.ContentTypeBinary {
		plaintext = []byte(base64.StdEncoding.EncodeToString(content))
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	iv := make([]byte, constants.EncryptionIVLength)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to create IV: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return &models.EncryptedPayload{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
		Metadata: models.EncryptionMetadata{
			Algorithm:    constants.EncryptionAlgorithm,
			EncryptedAt:  time.Now(),
			ContentType:  contentType,
			OriginalSize: len(content),
		},
		ContentHash: Hash(content),
	}, nil
}

// EncryptText wraps a text transcript for at-rest storage.
func (s *Service) EncryptText(text string) (*models.EncryptedPayload, error) {
	return s.Encrypt([]byte(text), constants.ContentTypeText)
}

// EncryptBinary wraps binary document bytes for at-rest storage.
func (s *Service) EncryptBinary(content []byte) (*models.EncryptedPayload, error) {
	return s.Encrypt(content, constants.ContentTypeBinary)
}

// Decrypt reverses Encrypt and verifies the payload's integrity. It fails
// loudly: an undecodable payload, an empty plaintext where the original was
// non-empty, and a content hash mismatch are all distinct errors, never empty
// or garbage output. A hash mismatch is reported as an integrity error, which
// callers must treat as non-recoverable.
func (s *Service) Decrypt(payload *models.EncryptedPayload) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(payload.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	iv, err := base64.StdEncoding.DecodeString(payload.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode IV: %w", err)
	}

	if len(iv) != constants.EncryptionIVLength {
		return nil, errors.New("invalid IV length")
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("ciphertext is not a whole number of blocks")
	}

	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	content := plaintext
	if payload.Metadata.ContentType == constants.ContentTypeBinary {
		content, err = base64.StdEncoding.DecodeString(string(plaintext))
		if err != nil {
			return nil, fmt.Errorf("failed to decode binary content: %w", err)
		}
	}

	// An empty result where the original was non-empty is a corruption signal,
	// not a valid empty document.
	if len(content) == 0 && payload.Metadata.OriginalSize > 0 {
		return nil, utils.NewIntegrityMismatchError("decrypted content is empty but original size was non-zero")
	}

	if !VerifyIntegrity(content, payload.ContentHash) {
		return nil, utils.NewIntegrityMismatchError(
			fmt.Sprintf("content hash mismatch (stored %s)", payload.ContentHash))
	}

	return content, nil
}

// Hash computes the hex-encoded SHA-256 digest of content. The digest is taken
// over the plaintext, not the ciphertext, so integrity checks are independent
// of encryption correctness.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// VerifyIntegrity reports whether content matches a previously computed digest.
func VerifyIntegrity(content []byte, digest string) bool {
	return Hash(content) == digest
}

// pkcs7Pad appends PKCS#7 padding up to the cipher block size.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad validates and strips PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padLen], nil
}
