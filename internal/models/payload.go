package models

import "time"

// EncryptionMetadata describes how a payload was encrypted so that decryption
// can reverse the process, including any pre-encoding of binary content.
type EncryptionMetadata struct {
	// Algorithm names the cipher used, e.g. "aes-256-cbc".
	Algorithm string `json:"algorithm"`

	// EncryptedAt records when the payload was created.
	EncryptedAt time.Time `json:"encrypted_at"`

	// ContentType is "text" or "binary". Binary content is base64 encoded
	// before encryption; decryption reverses the encoding based on this field.
	ContentType string `json:"content_type"`

	// OriginalSize is the plaintext size in bytes before any encoding.
	OriginalSize int `json:"original_size"`
}

// EncryptedPayload is the at-rest representation of document content.
//
// ContentHash is computed over the plaintext before encryption and is the sole
// integrity oracle at decryption time: a mismatch signals corruption or
// tampering and is surfaced as a distinct error, never silently ignored.
type EncryptedPayload struct {
	// Ciphertext is the base64-encoded encrypted content.
	Ciphertext string `json:"ciphertext"`

	// IV is the base64-encoded random initialization vector, unique per call.
	IV string `json:"iv"`

	// Metadata records the encryption parameters.
	Metadata EncryptionMetadata `json:"metadata"`

	// ContentHash is the hex-encoded SHA-256 digest of the plaintext.
	ContentHash string `json:"content_hash"`
}
