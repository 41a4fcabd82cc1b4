package redaction

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
)

// Options configures a Redactor.
type Options struct {
	// IncludeLegal enables the legal-document categories (A-numbers, case
	// numbers, docket numbers) in addition to the core PII categories.
	IncludeLegal bool
}

// Redactor scans text for sensitive entities and produces a redacted
// transcript with itemized findings. It holds no per-document state and is
// safe for concurrent use.
type Redactor struct {
	detectors []detector

	// now is the clock used for date-of-birth window validation.
	now func() time.Time
}

// NewRedactor creates a Redactor with the given options.
func NewRedactor(opts Options) *Redactor {
	return &Redactor{
		detectors: detectors(opts.IncludeLegal),
		now:       time.Now,
	}
}

// Redact runs every category detector over the text in fixed order and
// replaces each accepted match with its category token.
//
// All candidates are matched against the pristine input, and every item's
// Position and Length reference the original text, never the progressively
// edited output. A span claimed by an earlier category is skipped by later
// ones. An erroring category is skipped, not fatal to the pass.
//
// The returned result holds the original sensitive values in its items; it and
// any transport or log of it must be treated as sensitive.
func (r *Redactor) Redact(text, fileName string) *models.RedactionResult {
	now := r.now()

	var claimed []span
	var items []models.RedactionItem

	for _, d := range r.detectors {
		candidates := runDetector(d, text, now)

		// Within a category, items follow textual order.
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].start < candidates[j].start })

		for _, c := range candidates {
			if c.start >= c.end || overlapsAny(claimed, c.start, c.end) {
				continue
			}
			claimed = append(claimed, span{c.start, c.end})
			items = append(items, models.RedactionItem{
				Kind:             d.category,
				OriginalValue:    c.value,
				ReplacementToken: d.token,
				Position:         c.start,
				Length:           c.end - c.start,
			})
		}
	}

	redacted := applyItems(text, items)

	return &models.RedactionResult{
		RedactedText:   redacted,
		Items:          items,
		OriginalLength: len(text),
		RedactedLength: len(redacted),
	}
}

// VerifyRedaction reruns every detector over already-redacted text and
// returns the categories that still produce a match, sorted. A non-empty
// result means sensitive values survived the redaction pass; callers should
// treat the text as unsafe to release.
func (r *Redactor) VerifyRedaction(text string) []string {
	now := r.now()

	leaked := make(map[string]bool)
	for _, d := range r.detectors {
		if len(runDetector(d, text, now)) > 0 {
			leaked[d.category] = true
		}
	}

	out := make([]string, 0, len(leaked))
	for category := range leaked {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// span is a claimed half-open byte interval in the original text.
type span struct {
	start int
	end   int
}

// overlapsAny reports whether [start,end) intersects any claimed span.
func overlapsAny(claimed []span, start, end int) bool {
	for _, s := range claimed {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// runDetector executes one category's finder, converting panics into a skipped
// category. A single malformed pattern or validator error must not abort the
// whole redaction pass.
func runDetector(d detector, text string, now time.Time) (out []candidate) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Warn().
				Str("category", d.category).
				Interface("panic", recovered).
				Msg("Redaction category failed, skipping")
			out = nil
		}
	}()

	return d.find(text, now)
}

// applyItems builds the redacted text by splicing replacement tokens over the
// claimed spans of the original, in textual order.
func applyItems(text string, items []models.RedactionItem) string {
	if len(items) == 0 {
		return text
	}

	ordered := make([]models.RedactionItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	var sb strings.Builder
	cursor := 0
	for _, item := range ordered {
		sb.WriteString(text[cursor:item.Position])
		sb.WriteString(item.ReplacementToken)
		cursor = item.Position + item.Length
	}
	sb.WriteString(text[cursor:])

	return sb.String()
}
