package constants

// Encryption Parameters
const (
	// EncryptionAlgorithm names the cipher recorded in payload metadata.
	EncryptionAlgorithm = "aes-256-cbc"

	// EncryptionKeyLength is the symmetric key size in bytes.
	EncryptionKeyLength = 32

	// EncryptionIVLength is the initialization vector size in bytes.
	EncryptionIVLength = 16

	// KeyDerivationIterations is the PBKDF2 iteration count for stretching the
	// configured secret into the encryption key.
	KeyDerivationIterations = 4096

	// KeyDerivationSalt is a fixed application-scoped salt. The secret itself is
	// high entropy configuration material, not a user password, so a static salt
	// is acceptable here.
	KeyDerivationSalt = "legal-ai-document-pipeline"
)

// Content Types recorded in encryption metadata so decryption can reverse any
// pre-encoding applied to the plaintext.
const (
	ContentTypeText   = "text"
	ContentTypeBinary = "binary"
)

// Environment Variables
const (
	// EnvEncryptionKey is the configuration secret for at-rest encryption.
	EnvEncryptionKey = "DOCUMENT_ENCRYPTION_KEY"
)

// Context Key Names
const (
	RequestIDContextKey = "request_id"
	JobIDContextKey     = "job_id"
)
