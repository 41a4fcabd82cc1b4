// Package visual produces a viewable redacted PDF for each processed
// document. The preferred path overlays opaque boxes, a banner, and a footer
// directly onto the original file via an incremental PDF update; when the
// original's structure cannot be manipulated safely, a replacement document
// is synthesized from the redacted text instead.
package visual

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/models"
	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/utils"
)

// Redactor renders visually redacted documents.
type Redactor struct{}

// NewRedactor creates a visual document redactor.
func NewRedactor() *Redactor {
	return &Redactor{}
}

// RedactDocument produces the visually redacted rendition of a document. The
// overlay path is attempted first; any structural failure there is logged and
// recovered by synthesizing a fallback document from the redacted text. An
// error is returned only when both paths fail.
func (r *Redactor) RedactDocument(original []byte, result *models.RedactionResult, fileName string) (*models.VisuallyRedactedDocument, error) {
	tpl := LookupTemplate(fileName)
	banner := constants.RedactionBannerLabel
	footer := summaryLine(result)

	content, pageCount, err := overlayOriginal(original, tpl, banner, footer)
	if err == nil {
		log.Debug().
			Str("file_name", fileName).
			Str("template", tpl.Name).
			Int("page_count", pageCount).
			Msg("Produced overlay redaction")

		return &models.VisuallyRedactedDocument{
			Content:      content,
			Variant:      constants.VisualVariantOverlay,
			PageCount:    pageCount,
			TemplateName: tpl.Name,
		}, nil
	}

	log.Warn().
		Err(err).
		Str("file_name", fileName).
		Msg("Overlay redaction failed, synthesizing fallback document")

	content, pageCount, fallbackErr := synthesizeFallback(result.RedactedText, banner, footer)
	if fallbackErr != nil {
		return nil, utils.New(
			fmt.Errorf("%w: overlay: %v; fallback: %v", utils.ErrVisualRedaction, err, fallbackErr),
			500,
			"Unable to produce a redacted document",
		)
	}

	return &models.VisuallyRedactedDocument{
		Content:      content,
		Variant:      constants.VisualVariantSynthesized,
		PageCount:    pageCount,
		TemplateName: tpl.Name,
	}, nil
}

// summaryLine formats the footer text summarizing what was redacted.
func summaryLine(result *models.RedactionResult) string {
	if len(result.Items) == 0 {
		return "No sensitive information was found in this document"
	}

	counts := result.CategoryCounts()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", kind, counts[kind]))
	}
	return fmt.Sprintf("Redacted %s (%s)",
		utils.Plural(len(result.Items), "item"), strings.Join(parts, ", "))
}
