package visual

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// synthesizeFallback builds a fresh PDF from the redacted text when the
// original document cannot be overlaid in place. Redaction tokens are drawn
// as filled black boxes rather than printed, so the output visually matches
// the overlay variant.
func synthesizeFallback(redactedText, bannerText, footerText string) ([]byte, int, error) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(54, 54, 54)
	doc.SetAutoPageBreak(false, 54)

	pageWidth, pageHeight := doc.GetPageSize()

	lines := wrapLines(redactedText, constants.FallbackLineWidth)
	pageCount := 0

	for start := 0; start < len(lines) || pageCount == 0; start += constants.FallbackLinesPerPage {
		doc.AddPage()
		pageCount++

		// Banner.
		doc.SetFillColor(25, 25, 25)
		doc.Rect(0, 0, pageWidth, 30, "F")
		doc.SetFont("Helvetica", "B", 11)
		doc.SetTextColor(255, 255, 255)
		doc.Text(18, 20, bannerText)

		// Body.
		doc.SetFont("Courier", "", 10)
		doc.SetTextColor(20, 20, 20)
		y := 66.0
		end := start + constants.FallbackLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[start:end] {
			drawLine(doc, 54, y, line)
			y += 13
		}

		// Footer.
		doc.SetFillColor(25, 25, 25)
		doc.Rect(0, pageHeight-22, pageWidth, 22, "F")
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(255, 255, 255)
		doc.Text(18, pageHeight-8, footerText)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, fmt.Errorf("rendering fallback document: %w", err)
	}
	return buf.Bytes(), pageCount, nil
}

// drawLine prints one line of text, rendering any [REDACTED-*] token as a
// filled black box sized to the token's text width.
func drawLine(doc *gofpdf.Fpdf, x, y float64, line string) {
	for len(line) > 0 {
		open := strings.Index(line, "[REDACTED-")
		if open < 0 {
			doc.Text(x, y, line)
			return
		}
		tokenEnd := strings.Index(line[open:], "]")
		if tokenEnd < 0 {
			doc.Text(x, y, line)
			return
		}
		tokenEnd += open + 1

		if open > 0 {
			doc.Text(x, y, line[:open])
			x += doc.GetStringWidth(line[:open])
		}
		boxWidth := doc.GetStringWidth(line[open:tokenEnd])
		doc.Rect(x, y-9, boxWidth, 11, "F")
		x += boxWidth
		line = line[tokenEnd:]
	}
}

// wrapLines splits text into display lines no wider than the given rune
// count, breaking on whitespace where possible.
func wrapLines(text string, width int) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, " \t\r")
		for len(raw) > width {
			cut := strings.LastIndex(raw[:width], " ")
			if cut <= 0 {
				cut = width
			}
			lines = append(lines, raw[:cut])
			raw = strings.TrimLeft(raw[cut:], " ")
		}
		lines = append(lines, raw)
	}
	return lines
}
