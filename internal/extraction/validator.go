// Package extraction turns untrusted binary documents into machine-usable text.
// It implements a quality-gated chain of extraction strategies over PDF input,
// from a structured per-page walk down to a raw byte scan, with a filename-based
// placeholder as the terminal fallback.
//
// Every strategy is measured against the same quality validator, so acceptance
// semantics are identical across the chain.
package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
)

var (
	// leadingGarbagePattern matches a long leading run of non-alphanumeric
	// characters, a signature of binary data read as text.
	leadingGarbagePattern = regexp.MustCompile(`^[^a-zA-Z0-9\s]{15,}`)

	// garbledSequencePattern matches runs of three or more 1-2 letter tokens,
	// the signature of a byte-garbled PDF content stream.
	garbledSequencePattern = regexp.MustCompile(`(?:\b[a-zA-Z]{1,2}\s+){3,}`)
)

// Validate scores a text sample for linguistic plausibility and corruption.
// It is pure, deterministic and total: it never panics and never errors, so all
// extraction strategies share identical acceptance semantics.
//
// A sample is rejected outright (quality "failed") when it is empty or matches a
// corruption signature. Otherwise it is bucketed by word count and
// alphabetic-character ratio, and HasValidContent reports whether the sample
// clears the minimum acceptance gate used by the extraction chain.
func Validate(text string) models.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || isCorrupted(trimmed) {
		return models.ValidationResult{
			Quality:         constants.QualityFailed,
			WordCount:       0,
			HasValidContent: false,
		}
	}

	wordCount := len(strings.Fields(trimmed))
	ratio := alphaRatio(trimmed)

	quality := constants.QualityLow
	switch {
	case wordCount >= constants.HighQualityWordCount && ratio > constants.HighQualityAlphaRatio:
		quality = constants.QualityHigh
	case wordCount >= constants.MediumQualityWordCount && ratio > constants.MediumQualityAlphaRatio:
		quality = constants.QualityMedium
	}

	return models.ValidationResult{
		Quality:         quality,
		WordCount:       wordCount,
		HasValidContent: wordCount >= constants.MinValidWordCount && ratio > constants.MinValidAlphaRatio,
	}
}

// isCorrupted checks the sample against the corruption signatures of garbled
// PDF output: leading symbol runs, non-printable runs, long repeated-character
// runs, scattered single-character tokens, and 1-2 letter token sequences.
func isCorrupted(text string) bool {
	if leadingGarbagePattern.MatchString(text) {
		return true
	}

	if hasNonPrintableRun(text, 5) {
		return true
	}

	if hasRepeatedCharRun(text, constants.MaxRepeatedCharRun) {
		return true
	}

	tokens := strings.Fields(text)
	if len(tokens) >= 10 {
		single := 0
		for _, tok := range tokens {
			if len(tok) == 1 {
				single++
			}
		}
		if float64(single)/float64(len(tokens)) > constants.MaxSingleCharTokenRatio {
			return true
		}
	}

	if len(garbledSequencePattern.FindAllStringIndex(text, 5)) >= 4 {
		return true
	}

	return false
}

// hasNonPrintableRun reports whether the text contains a run of at least n
// consecutive non-printable characters. Ordinary whitespace is not counted.
func hasNonPrintableRun(text string, n int) bool {
	run := 0
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			run = 0
			continue
		}
		if !unicode.IsPrint(r) {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

// hasRepeatedCharRun reports whether any character repeats at least n times
// consecutively.
func hasRepeatedCharRun(text string, n int) bool {
	var prev rune = -1
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}

// alphaRatio computes the share of alphabetic characters over all non-space
// characters in the sample.
func alphaRatio(text string) float64 {
	total := 0
	alpha := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(alpha) / float64(total)
}
