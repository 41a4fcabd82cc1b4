package extraction

import (
	"context"
	"strings"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// structuralMarkers are container-syntax tokens. A printable run containing one
// of these is the scanner reading PDF structure, not document content.
var structuralMarkers = []string{
	"obj",
	"endobj",
	"stream",
	"endstream",
	"xref",
	"trailer",
	"startxref",
	"/Type",
	"/Length",
	"/Filter",
	"/Font",
	"/Page",
	"<<",
	">>",
	"%PDF",
	"%%EOF",
}

// RawScanStrategy is the last resort before giving up: it scans the raw byte
// buffer for printable-ASCII runs. Runs that exhibit internal-format markers
// are rejected so the scan reads content, not container syntax.
type RawScanStrategy struct{}

// NewRawScanStrategy creates the raw byte scan strategy.
func NewRawScanStrategy() *RawScanStrategy {
	return &RawScanStrategy{}
}

// Name identifies the strategy in extraction results.
func (s *RawScanStrategy) Name() string {
	return constants.ExtractionMethodRawScan
}

// Extract collects printable runs from the byte buffer. Page count is unknown
// at this level and reported as 1 when any text was recovered.
func (s *RawScanStrategy) Extract(ctx context.Context, content []byte, fileName string) (string, int, error) {
	var runs []string
	var current strings.Builder

	flush := func() {
		if current.Len() >= constants.MinPrintableRunLength {
			run := current.String()
			if !isStructuralRun(run) {
				runs = append(runs, run)
			}
		}
		current.Reset()
	}

	for i, b := range content {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return "", 0, err
			}
		}
		if b >= 0x20 && b <= 0x7e {
			current.WriteByte(b)
			continue
		}
		flush()
	}
	flush()

	if len(runs) == 0 {
		return "", 0, nil
	}

	return strings.Join(runs, " "), 1, nil
}

// isStructuralRun reports whether a printable run is PDF container syntax
// rather than document text.
func isStructuralRun(run string) bool {
	for _, marker := range structuralMarkers {
		if strings.Contains(run, marker) {
			return true
		}
	}
	return false
}
