// Package visual produces redacted renditions of uploaded documents. The
// preferred path draws opaque overlay regions onto the original PDF via an
// incremental update; when the original's structure defeats direct page
// manipulation, a new multi-page document is synthesized from the redacted
// transcript instead. The produced artifact always records which path was taken.
package visual

import "strings"

// Rect is an overlay rectangle in page-fraction coordinates: X/Y are the
// left/top corner as fractions of page width/height from the top-left, W/H are
// fractional extents. Fractions keep templates independent of page size.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Template is a named set of overlay rectangles for a class of documents.
// Coordinate templates are a heuristic: they cover known field positions on
// known layouts, they do not locate the actual matched text spans on the
// rendered page. New layouts are added to the table, never inlined.
type Template struct {
	// Name identifies the template in produced artifacts.
	Name string

	// Keywords are lowercase file-name fragments that select this template.
	Keywords []string

	// Rects are the overlay regions applied to every page.
	Rects []Rect
}

// formFieldRects covers the field grid of standard government forms: the
// identification block fills most of the page, so the overlay is aggressive.
var formFieldRects = []Rect{
	{X: 0.05, Y: 0.12, W: 0.90, H: 0.10}, // applicant identification block
	{X: 0.05, Y: 0.24, W: 0.55, H: 0.06}, // name line
	{X: 0.62, Y: 0.24, W: 0.33, H: 0.06}, // A-number / SSN line
	{X: 0.05, Y: 0.32, W: 0.90, H: 0.08}, // address block
	{X: 0.05, Y: 0.42, W: 0.40, H: 0.05}, // date of birth line
	{X: 0.50, Y: 0.42, W: 0.45, H: 0.05}, // contact line
	{X: 0.05, Y: 0.78, W: 0.50, H: 0.07}, // signature block
}

// genericRects covers common field positions in the top third of an arbitrary
// page: name, date and identifier lines.
var genericRects = []Rect{
	{X: 0.05, Y: 0.10, W: 0.55, H: 0.05},
	{X: 0.62, Y: 0.10, W: 0.33, H: 0.05},
	{X: 0.05, Y: 0.18, W: 0.90, H: 0.05},
	{X: 0.05, Y: 0.26, W: 0.45, H: 0.05},
}

// templates is the named, swappable template table. Lookup is first match in
// declared order, so more specific entries come first.
var templates = []Template{
	{
		Name:     "immigration-form",
		Keywords: []string{"i-589", "i-130", "i-485", "n-400", "g-28", "ds-160"},
		Rects:    formFieldRects,
	},
	{
		Name:     "form",
		Keywords: []string{"form", "application", "petition"},
		Rects:    formFieldRects,
	},
	{
		Name:     "notice",
		Keywords: []string{"notice", "nta"},
		Rects:    formFieldRects,
	},
}

// genericTemplate is applied when no named template matches.
var genericTemplate = Template{
	Name:  "generic",
	Rects: genericRects,
}

// LookupTemplate selects the overlay template for a declared file name.
// Sensitive known forms force full field overlays even when no text-level
// redaction items were found; everything else gets the generic set.
func LookupTemplate(fileName string) Template {
	lower := strings.ToLower(fileName)
	for _, tpl := range templates {
		for _, kw := range tpl.Keywords {
			if strings.Contains(lower, kw) {
				return tpl
			}
		}
	}
	return genericTemplate
}

// IsSensitiveForm reports whether the file name matches a named template, in
// which case overlays are applied even for an empty redaction result.
func IsSensitiveForm(fileName string) bool {
	return LookupTemplate(fileName).Name != genericTemplate.Name
}
