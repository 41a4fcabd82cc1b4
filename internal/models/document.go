package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// VisuallyRedactedDocument is a redacted rendition of an uploaded document:
// either the original bytes with opaque overlay regions and a banner/footer
// annotation, or a synthesized multi-page plain-text rendering of the redacted
// transcript. Which variant was produced is recorded in Variant since downstream
// consumers treat them differently; one preserves the original layout, the other
// is a lossy substitute.
type VisuallyRedactedDocument struct {
	// Content is the redacted document bytes (PDF).
	Content []byte `json:"-"`

	// Variant identifies the rendering path taken. See the VisualVariant* constants.
	Variant string `json:"variant"`

	// PageCount is the number of pages in the produced rendition.
	PageCount int `json:"page_count"`

	// TemplateName names the coordinate template applied, or "generic".
	TemplateName string `json:"template_name"`
}

// IsOverlay reports whether the rendition preserves the original page layout.
func (d *VisuallyRedactedDocument) IsOverlay() bool {
	return d.Variant == constants.VisualVariantOverlay
}

// ProcessingJob tracks one document through the ingestion pipeline. Jobs live in
// an explicit store object scoped to the caller's lifetime, not in process-wide
// mutable state.
type ProcessingJob struct {
	// ID is the unique job identifier.
	ID uuid.UUID `json:"id"`

	// FileName is the declared name of the uploaded document. It is a weak
	// heuristic signal only, never trusted for security decisions.
	FileName string `json:"file_name"`

	// State is the current job state. See the JobState* constants.
	State string `json:"state"`

	// Progress is a completion percentage for status polling.
	Progress int `json:"pct"`

	// Error holds a user-safe failure description when State is ERROR.
	Error string `json:"error,omitempty"`

	// CreatedAt records when the job was accepted.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt records the last state transition.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProcessingJob creates a job in the PROCESSING state for the given file name.
func NewProcessingJob(fileName string) *ProcessingJob {
	now := time.Now()
	return &ProcessingJob{
		ID:        uuid.New(),
		FileName:  fileName,
		State:     constants.JobStateProcessing,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SecurityStatus is the security posture projection served to the UI for one
// processed document.
type SecurityStatus struct {
	// IsEncrypted reports whether the stored artifacts are encrypted at rest.
	IsEncrypted bool `json:"is_encrypted"`

	// IntegrityVerified reports whether the stored content hash matched on the
	// most recent retrieval.
	IntegrityVerified bool `json:"integrity_verified"`

	// RedactionSummary maps PII category to the number of values redacted.
	RedactionSummary map[string]int `json:"redaction_summary"`

	// RedactedItemsCount is the total number of redacted values.
	RedactedItemsCount int `json:"redacted_items_count"`
}
