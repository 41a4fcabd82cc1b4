package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// StructuredStrategy is the primary extraction strategy. It walks the
// document's logical page sequence and reassembles the positioned text runs of
// each page into lines, concatenating pages with page-break separators.
type StructuredStrategy struct{}

// NewStructuredStrategy creates the primary structured extraction strategy.
func NewStructuredStrategy() *StructuredStrategy {
	return &StructuredStrategy{}
}

// Name identifies the strategy in extraction results.
func (s *StructuredStrategy) Name() string {
	return constants.ExtractionMethodPrimary
}

// Extract walks every page and reassembles its positioned text runs.
func (s *StructuredStrategy) Extract(ctx context.Context, content []byte, fileName string) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("open document: %w", err)
	}

	total := reader.NumPage()
	if total == 0 {
		return "", 0, fmt.Errorf("document has no pages")
	}

	pages := make([]string, 0, total)
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}

		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		pages = append(pages, assembleRuns(page.Content().Text))
	}

	return joinPages(pages), total, nil
}

// assembleRuns turns positioned text runs into reading-order lines. Runs are
// grouped into rows by their baseline Y coordinate (PDF pages have a
// bottom-left origin, so higher Y means nearer the top), then each row is
// ordered left to right.
func assembleRuns(runs []pdf.Text) string {
	if len(runs) == 0 {
		return ""
	}

	// Bucket runs into rows. Baselines within half a point are the same line.
	type row struct {
		y    float64
		runs []pdf.Text
	}
	var rows []*row
	for _, run := range runs {
		var target *row
		for _, r := range rows {
			if math.Abs(r.y-run.Y) < 0.5 {
				target = r
				break
			}
		}
		if target == nil {
			target = &row{y: run.Y}
			rows = append(rows, target)
		}
		target.runs = append(target.runs, run)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	var sb strings.Builder
	for i, r := range rows {
		sort.Slice(r.runs, func(a, b int) bool { return r.runs[a].X < r.runs[b].X })

		if i > 0 {
			sb.WriteByte('\n')
		}
		prevEnd := math.Inf(-1)
		for _, run := range r.runs {
			// Insert a space when runs are visually separated.
			if run.X-prevEnd > 1.0 && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteByte(' ')
			}
			sb.WriteString(run.S)
			prevEnd = run.X + run.W
		}
	}

	return sb.String()
}

// RelaxedStrategy is the alternate-configuration strategy: it retries the
// document walk with relaxed rendering assumptions, taking the reader's plain
// text stream without per-run font or position handling. Documents that defeat
// the structured walk (unusual font substitution, degenerate positioning) often
// still yield here, which is why this is a distinct strategy and not a retry.
type RelaxedStrategy struct{}

// NewRelaxedStrategy creates the alternate-configuration extraction strategy.
func NewRelaxedStrategy() *RelaxedStrategy {
	return &RelaxedStrategy{}
}

// Name identifies the strategy in extraction results.
func (s *RelaxedStrategy) Name() string {
	return constants.ExtractionMethodAlternate
}

// Extract reads the document's plain text stream in one pass.
func (s *RelaxedStrategy) Extract(ctx context.Context, content []byte, fileName string) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, fmt.Errorf("open document: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, fmt.Errorf("read plain text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", 0, fmt.Errorf("drain plain text: %w", err)
	}

	return sb.String(), reader.NumPage(), nil
}
