// Package constants provides shared constant values used throughout the application.
//
// The pipeline_const.go file defines constants for the document ingestion pipeline:
// extraction methods, quality levels, and the validator thresholds that every
// extraction strategy is measured against. Changing the thresholds changes which
// documents are accepted as analyzable, so they are centralized here rather than
// scattered across strategies.
package constants

// Extraction Methods identify which strategy produced an extraction result.
// Downstream consumers must be able to distinguish genuine extracted text from
// synthesized placeholder content.
const (
	// ExtractionMethodPrimary is the structured per-page text-run walk.
	ExtractionMethodPrimary = "primary"

	// ExtractionMethodAlternate is the relaxed-configuration whole-document walk.
	ExtractionMethodAlternate = "alternate"

	// ExtractionMethodRawScan is the printable-byte-run scan over the raw buffer.
	ExtractionMethodRawScan = "rawScan"

	// ExtractionMethodPlaceholder is filename-derived synthesized content.
	// Results with this method are never genuine document text.
	ExtractionMethodPlaceholder = "contextualPlaceholder"
)

// Quality Levels bucket extracted text by linguistic plausibility.
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
	QualityFailed = "failed"
)

// Validator Thresholds define the acceptance semantics shared by all strategies.
const (
	// MinValidWordCount is the minimum word count for usable content.
	MinValidWordCount = 10

	// MinValidAlphaRatio is the minimum alphabetic-character ratio for usable content.
	MinValidAlphaRatio = 0.3

	// HighQualityWordCount is the word count floor for high-quality text.
	HighQualityWordCount = 100

	// HighQualityAlphaRatio is the alphabetic ratio floor for high-quality text.
	HighQualityAlphaRatio = 0.7

	// MediumQualityWordCount is the word count floor for medium-quality text.
	MediumQualityWordCount = 50

	// MediumQualityAlphaRatio is the alphabetic ratio floor for medium-quality text.
	MediumQualityAlphaRatio = 0.5

	// MaxRepeatedCharRun is the longest allowed run of a single repeated character
	// before the sample is treated as corrupted.
	MaxRepeatedCharRun = 10

	// MaxSingleCharTokenRatio is the highest tolerated share of one-character
	// tokens before the sample is treated as byte-garbled output.
	MaxSingleCharTokenRatio = 0.3
)

// Raw Scan Parameters control the last-resort byte scan strategy.
const (
	// MinPrintableRunLength is the shortest printable-ASCII run kept by the raw scan.
	MinPrintableRunLength = 5
)

// Job States track a processing job through the pipeline.
const (
	JobStateProcessing = "PROCESSING"
	JobStateDone       = "DONE"
	JobStateError      = "ERROR"
)

// Visual Redaction Variants record which rendering path produced the redacted
// artifact. The overlay variant preserves the original layout; the synthesized
// variant is a lossy substitute and must never be conflated with it.
const (
	VisualVariantOverlay     = "original-with-overlay"
	VisualVariantSynthesized = "synthesized-fallback"
)
