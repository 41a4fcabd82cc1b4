// Package models provides data structures and operations for the legal document
// ingestion pipeline. It contains models for text extraction, PII redaction, and
// encrypted at-rest storage that are central to the application's secure document
// handling.
//
// The models in this package adhere to data minimization principles and support
// secure handling of sensitive information in compliance with privacy regulations.
package models

// ExtractionResult represents the outcome of one extraction attempt over a binary
// document. The extraction chain returns the first result that meets the
// acceptance threshold, or the last attempted result marked failed.
type ExtractionResult struct {
	// Text is the extracted plain text, page-break separated.
	Text string `json:"text"`

	// PageCount is the number of logical pages walked, when known.
	PageCount int `json:"page_count"`

	// Method identifies the strategy that produced this result. See the
	// ExtractionMethod* constants. Placeholder results must never be mistaken
	// for genuine extracted text.
	Method string `json:"method"`

	// Success reports whether the chain produced usable content. Placeholder
	// content is synthesized, not extracted, so it carries Success=false.
	Success bool `json:"success"`

	// Quality is the validator's bucket for this text. See the Quality* constants.
	Quality string `json:"quality"`

	// WordCount is the whitespace-delimited token count of Text.
	WordCount int `json:"word_count"`

	// HasValidContent is the validator's accept/reject gate: true iff the word
	// count and alphabetic ratio clear the minimum thresholds.
	HasValidContent bool `json:"has_valid_content"`

	// Error describes why extraction failed, empty on success.
	Error string `json:"error,omitempty"`
}

// ValidationResult is the quality validator's verdict on a text sample.
type ValidationResult struct {
	// Quality is the assigned quality bucket.
	Quality string `json:"quality"`

	// WordCount is the whitespace-delimited token count.
	WordCount int `json:"word_count"`

	// HasValidContent reports whether the sample clears the acceptance gate.
	HasValidContent bool `json:"has_valid_content"`
}
