package visual

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The overlay writer appends an incremental update to the original PDF: each
// page object is re-emitted with an extra content stream that draws the banner,
// the opaque field rectangles, and the footer on top of the existing page.
// The original bytes are never rewritten, only extended, so the update is
// reversible at the byte level and cheap to produce.

var (
	objHeaderPattern  = regexp.MustCompile(`(?m)^[^0-9]?(\d+)\s+(\d+)\s+obj\b`)
	rootRefPattern    = regexp.MustCompile(`/Root\s+(\d+)\s+(\d+)\s+R`)
	startxrefPattern  = regexp.MustCompile(`startxref\s+(\d+)`)
	contentsRefPat    = regexp.MustCompile(`/Contents\s+(\d+)\s+(\d+)\s+R`)
	contentsArrayPat  = regexp.MustCompile(`/Contents\s*\[`)
	resourcesRefPat   = regexp.MustCompile(`/Resources\s+(\d+)\s+(\d+)\s+R`)
	mediaBoxPattern   = regexp.MustCompile(`/MediaBox\s*\[\s*([0-9.+-]+)\s+([0-9.+-]+)\s+([0-9.+-]+)\s+([0-9.+-]+)\s*\]`)
	pageTypePattern   = regexp.MustCompile(`/Type\s*/Page\b`)
	pagesTypePattern  = regexp.MustCompile(`/Type\s*/Pages\b`)
)

// pdfObject is one indirect object located in the original buffer.
type pdfObject struct {
	num  int
	gen  int
	dict string
}

// overlayOriginal draws the overlay onto the original document by incremental
// update. It returns the extended PDF bytes and the page count, or an error
// when the document structure defeats direct manipulation (the caller then
// falls back to synthesizing a new document).
func overlayOriginal(original []byte, tpl Template, bannerText, footerText string) ([]byte, int, error) {
	if !bytes.HasPrefix(original, []byte("%PDF-")) {
		return nil, 0, fmt.Errorf("not a PDF document")
	}

	objects, maxNum := scanObjects(original)
	if len(objects) == 0 {
		return nil, 0, fmt.Errorf("no indirect objects found")
	}

	pages := make([]pdfObject, 0)
	for _, obj := range objects {
		if pageTypePattern.MatchString(obj.dict) && !pagesTypePattern.MatchString(obj.dict) {
			pages = append(pages, obj)
		}
	}
	if len(pages) == 0 {
		return nil, 0, fmt.Errorf("no page objects found")
	}

	rootLoc := lastMatch(rootRefPattern, original)
	if rootLoc == nil {
		return nil, 0, fmt.Errorf("document catalog reference not found")
	}
	rootRef := fmt.Sprintf("%s %s R", rootLoc[1], rootLoc[2])

	prevLoc := lastMatch(startxrefPattern, original)
	if prevLoc == nil {
		return nil, 0, fmt.Errorf("cross-reference offset not found")
	}
	prevXref, err := strconv.Atoi(string(prevLoc[1]))
	if err != nil {
		return nil, 0, fmt.Errorf("malformed cross-reference offset: %w", err)
	}

	// New objects: one font, one content stream per page, the rewritten pages,
	// and any rewritten resource dictionaries.
	next := maxNum + 1
	fontNum := next
	next++

	// Rewritten objects must keep their original generation number, or the
	// update does not override them.
	type newObject struct {
		num  int
		gen  int
		body string
	}
	newObjects := []newObject{{
		num:  fontNum,
		body: "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}}

	rewrittenResources := make(map[int]bool)
	for _, page := range pages {
		width, height := pageSize(page.dict)

		streamNum := next
		next++
		ops := overlayOps(width, height, tpl.Rects, bannerText, footerText)
		newObjects = append(newObjects, newObject{
			num:  streamNum,
			body: fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(ops), ops),
		})

		dict, resourceObj, err := rewritePageDict(original, objects, page.dict, streamNum, fontNum)
		if err != nil {
			return nil, 0, fmt.Errorf("page %d: %w", page.num, err)
		}
		if resourceObj != nil && !rewrittenResources[resourceObj.num] {
			rewrittenResources[resourceObj.num] = true
			newObjects = append(newObjects, newObject{num: resourceObj.num, gen: resourceObj.gen, body: resourceObj.dict})
		}
		newObjects = append(newObjects, newObject{num: page.num, gen: page.gen, body: dict})
	}

	// Assemble the incremental update.
	var out bytes.Buffer
	out.Write(original)
	if original[len(original)-1] != '\n' {
		out.WriteByte('\n')
	}

	offsets := make(map[int]int, len(newObjects))
	gens := make(map[int]int, len(newObjects))
	for _, obj := range newObjects {
		offsets[obj.num] = out.Len()
		gens[obj.num] = obj.gen
		fmt.Fprintf(&out, "%d %d obj\n%s\nendobj\n", obj.num, obj.gen, obj.body)
	}

	xrefStart := out.Len()
	out.WriteString("xref\n0 1\n0000000000 65535 f \n")
	nums := make([]int, 0, len(offsets))
	for num := range offsets {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	for _, num := range nums {
		fmt.Fprintf(&out, "%d 1\n%010d %05d n \n", num, offsets[num], gens[num])
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root %s /Prev %d >>\nstartxref\n%d\n%%%%EOF\n",
		next, rootRef, prevXref, xrefStart)

	return out.Bytes(), len(pages), nil
}

// lastMatch returns the submatches of the final occurrence of pattern in buf.
// Incremental updates append new trailers, so the last occurrence is the
// current one.
func lastMatch(pattern *regexp.Regexp, buf []byte) [][]byte {
	matches := pattern.FindAllSubmatch(buf, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches[len(matches)-1]
}

// scanObjects locates every indirect object and extracts its top-level
// dictionary. Stream data is not captured.
func scanObjects(buf []byte) ([]pdfObject, int) {
	var objects []pdfObject
	maxNum := 0

	for _, loc := range objHeaderPattern.FindAllSubmatchIndex(buf, -1) {
		num, err1 := strconv.Atoi(string(buf[loc[2]:loc[3]]))
		gen, err2 := strconv.Atoi(string(buf[loc[4]:loc[5]]))
		if err1 != nil || err2 != nil {
			continue
		}
		dict, ok := balancedDict(buf, loc[1])
		if !ok {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
		objects = append(objects, pdfObject{num: num, gen: gen, dict: dict})
	}

	return objects, maxNum
}

// balancedDict extracts the first << ... >> dictionary after pos, balancing
// nested dictionaries.
func balancedDict(buf []byte, pos int) (string, bool) {
	start := bytes.Index(buf[pos:], []byte("<<"))
	if start < 0 {
		return "", false
	}
	start += pos

	// The dictionary must precede the object body's end.
	if end := bytes.Index(buf[pos:], []byte("endobj")); end >= 0 && pos+end < start {
		return "", false
	}

	depth := 0
	for i := start; i < len(buf)-1; i++ {
		if buf[i] == '<' && buf[i+1] == '<' {
			depth++
			i++
			continue
		}
		if buf[i] == '>' && buf[i+1] == '>' {
			depth--
			i++
			if depth == 0 {
				return string(buf[start : i+1]), true
			}
		}
	}
	return "", false
}

// pageSize reads the page's MediaBox, defaulting to US Letter when the box is
// inherited from the page tree.
func pageSize(dict string) (float64, float64) {
	m := mediaBoxPattern.FindStringSubmatch(dict)
	if m == nil {
		return 612, 792
	}
	x0, _ := strconv.ParseFloat(m[1], 64)
	y0, _ := strconv.ParseFloat(m[2], 64)
	x1, _ := strconv.ParseFloat(m[3], 64)
	y1, _ := strconv.ParseFloat(m[4], 64)
	w := x1 - x0
	h := y1 - y0
	if w <= 0 || h <= 0 {
		return 612, 792
	}
	return w, h
}

// rewritePageDict re-emits a page dictionary with the overlay stream appended
// to its contents and the overlay font merged into its resources. When the
// page's resources live in a separate object, that object is returned for
// re-emission as well.
func rewritePageDict(buf []byte, objects []pdfObject, dict string, streamNum, fontNum int) (string, *pdfObject, error) {
	fontEntry := fmt.Sprintf("/FRz %d 0 R", fontNum)
	streamRef := fmt.Sprintf("%d 0 R", streamNum)

	// Contents: append the overlay stream after the existing content.
	switch {
	case contentsRefPat.MatchString(dict):
		dict = contentsRefPat.ReplaceAllString(dict,
			fmt.Sprintf("/Contents [$1 $2 R %s]", streamRef))
	case contentsArrayPat.MatchString(dict):
		loc := contentsArrayPat.FindStringIndex(dict)
		closing := strings.Index(dict[loc[1]:], "]")
		if closing < 0 {
			return "", nil, fmt.Errorf("unterminated contents array")
		}
		at := loc[1] + closing
		dict = dict[:at] + " " + streamRef + dict[at:]
	default:
		// A page with no contents at all gets just the overlay.
		dict = insertBeforeClose(dict, fmt.Sprintf("/Contents %s", streamRef))
	}

	// Resources: merge the overlay font.
	var resourceObj *pdfObject
	if m := resourcesRefPat.FindStringSubmatch(dict); m != nil {
		num, _ := strconv.Atoi(m[1])
		for _, obj := range objects {
			if obj.num == num {
				merged, err := mergeFont(obj.dict, fontEntry)
				if err != nil {
					return "", nil, err
				}
				resourceObj = &pdfObject{num: num, gen: obj.gen, dict: merged}
				break
			}
		}
		if resourceObj == nil {
			return "", nil, fmt.Errorf("resources object %d not found", num)
		}
	} else if idx := strings.Index(dict, "/Resources"); idx >= 0 {
		resStart := idx + len("/Resources")
		open := strings.Index(dict[resStart:], "<<")
		inner, ok := balancedDict([]byte(dict), resStart)
		if open < 0 || !ok {
			return "", nil, fmt.Errorf("malformed inline resources")
		}
		merged, err := mergeFont(inner, fontEntry)
		if err != nil {
			return "", nil, err
		}
		innerStart := resStart + open
		dict = dict[:innerStart] + merged + dict[innerStart+len(inner):]
	} else {
		dict = insertBeforeClose(dict, fmt.Sprintf("/Resources << /Font << %s >> >>", fontEntry))
	}

	return dict, resourceObj, nil
}

// mergeFont adds the overlay font entry to a resources dictionary, preserving
// any fonts the page already uses.
func mergeFont(resources, fontEntry string) (string, error) {
	if idx := strings.Index(resources, "/Font"); idx >= 0 {
		open := strings.Index(resources[idx:], "<<")
		if open < 0 {
			return "", fmt.Errorf("malformed font dictionary")
		}
		at := idx + open + 2
		return resources[:at] + " " + fontEntry + resources[at:], nil
	}
	return insertBeforeClose(resources, "/Font << "+fontEntry+" >>"), nil
}

// insertBeforeClose inserts an entry before a dictionary's final >>.
func insertBeforeClose(dict, entry string) string {
	at := strings.LastIndex(dict, ">>")
	if at < 0 {
		return dict + " " + entry
	}
	return dict[:at] + " " + entry + " " + dict[at:]
}

// overlayOps builds the content stream operators for one page: banner bar and
// label at the top, opaque field rectangles from the template, and the footer
// summary bar.
func overlayOps(width, height float64, rects []Rect, bannerText, footerText string) string {
	var sb strings.Builder

	sb.WriteString("q\n")

	// Banner bar.
	fmt.Fprintf(&sb, "0.10 0.10 0.10 rg\n0 %.2f %.2f 30 re f\n", height-30, width)
	fmt.Fprintf(&sb, "BT /FRz 11 Tf 1 1 1 rg 18 %.2f Td (%s) Tj ET\n", height-20, escapePDFText(bannerText))

	// Opaque field overlays. Template coordinates are top-left page fractions;
	// PDF user space has a bottom-left origin.
	sb.WriteString("0 0 0 rg\n")
	for _, r := range rects {
		x := r.X * width
		w := r.W * width
		h := r.H * height
		y := height - (r.Y * height) - h
		fmt.Fprintf(&sb, "%.2f %.2f %.2f %.2f re f\n", x, y, w, h)
	}

	// Footer bar.
	fmt.Fprintf(&sb, "0.10 0.10 0.10 rg\n0 0 %.2f 22 re f\n", width)
	fmt.Fprintf(&sb, "BT /FRz 8 Tf 1 1 1 rg 18 8 Td (%s) Tj ET\n", escapePDFText(footerText))

	sb.WriteString("Q")
	return sb.String()
}

// escapePDFText escapes the characters with special meaning inside a PDF
// literal string.
func escapePDFText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
