package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// placeholderTemplates maps file-name keywords to generic descriptive sentences.
// Matching is first-hit in declared order, so more specific keywords come first.
var placeholderTemplates = []struct {
	keyword  string
	sentence string
}{
	{"motion", "This document appears to be a legal motion filed with a court, requesting a ruling or order on a contested matter."},
	{"asylum", "This document appears to relate to an asylum application, describing the applicant's claim for protection."},
	{"visa", "This document appears to relate to a visa petition or supporting immigration paperwork."},
	{"notice", "This document appears to be an official notice issued to a party regarding a pending matter."},
	{"application", "This document appears to be an application form submitted to an agency or court."},
	{"affidavit", "This document appears to be a sworn affidavit containing a declarant's statement of facts."},
	{"contract", "This document appears to be a contract or agreement setting out obligations between parties."},
	{"brief", "This document appears to be a legal brief presenting arguments in support of a party's position."},
	{"order", "This document appears to be a court order or administrative decision."},
	{"letter", "This document appears to be correspondence related to a legal matter."},
}

// PlaceholderStrategy synthesizes a short descriptive sentence from the file
// name pattern. It is only reached when all real extraction fails, and its
// output is tagged so it can never be mistaken for genuine extracted text.
type PlaceholderStrategy struct{}

// NewPlaceholderStrategy creates the contextual placeholder strategy.
func NewPlaceholderStrategy() *PlaceholderStrategy {
	return &PlaceholderStrategy{}
}

// Name identifies the strategy in extraction results.
func (s *PlaceholderStrategy) Name() string {
	return constants.ExtractionMethodPlaceholder
}

// Extract synthesizes descriptive text from the file name. It cannot fail.
func (s *PlaceholderStrategy) Extract(ctx context.Context, content []byte, fileName string) (string, int, error) {
	lower := strings.ToLower(fileName)
	for _, tpl := range placeholderTemplates {
		if strings.Contains(lower, tpl.keyword) {
			return tpl.sentence, 1, nil
		}
	}

	return fmt.Sprintf("This document (%s) could not be read; its contents are unavailable for analysis.", fileName), 1, nil
}
