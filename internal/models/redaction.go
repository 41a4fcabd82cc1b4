package models

// RedactionItem records a single sensitive value detected and replaced in a
// document's text. Items are immutable once created.
//
// Position and Length are offsets into the original, unmodified input text,
// never into the progressively edited output, so that multiple redaction passes
// remain independently auditable against the source.
//
// Note: OriginalValue contains sensitive data. Any transport or log of this
// structure must treat it accordingly; it must never reach a log sink verbatim.
type RedactionItem struct {
	// Kind is the PII category of the detected value. See the Category* constants.
	Kind string `json:"kind"`

	// OriginalValue is the matched sensitive text.
	OriginalValue string `json:"original_value"`

	// ReplacementToken is the opaque token substituted for the value.
	ReplacementToken string `json:"replacement_token"`

	// Position is the byte offset of the match in the original input text.
	Position int `json:"position"`

	// Length is the byte length of the match in the original input text.
	Length int `json:"length"`
}

// RedactionResult is the outcome of a full redaction pass over a text.
//
// Items follow first-to-last category-pass order, not necessarily original-text
// order; callers needing textual order must sort by Position.
type RedactionResult struct {
	// RedactedText is the input with every accepted match replaced by its token.
	RedactedText string `json:"redacted_text"`

	// Items lists every accepted match, in category-pass order.
	Items []RedactionItem `json:"items"`

	// OriginalLength is the length of the input text.
	OriginalLength int `json:"original_length"`

	// RedactedLength is the length of the redacted text.
	RedactedLength int `json:"redacted_length"`
}

// CategoryCounts aggregates redacted items by category for summary display.
func (rr *RedactionResult) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, item := range rr.Items {
		counts[item.Kind]++
	}
	return counts
}
