// Package redaction scans plain text for personally identifiable information
// and produces a redacted transcript with position-tracked redaction records.
// It is independent of extraction and operates on any text.
//
// Detectors run in a fixed category order, from the most specific patterns to
// the most heuristic, each following pattern-match-then-validate. Offsets in
// the produced records always reference the pristine input text so that the
// result stays auditable against the source.
package redaction

import "regexp"

// Core PII patterns. Each category's validator lives in detectors.go; the
// patterns here only produce candidates.
var (
	// ssnDashedPattern matches the canonical xxx-xx-xxxx social security form.
	ssnDashedPattern = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)

	// ssnContiguousPattern matches nine contiguous digits.
	ssnContiguousPattern = regexp.MustCompile(`\b\d{9}\b`)

	// licensePattern matches driver-license-length digit runs.
	licensePattern = regexp.MustCompile(`\b\d{6,12}\b`)

	// bankAccountPattern matches bank-account-length digit runs.
	bankAccountPattern = regexp.MustCompile(`\b\d{8,17}\b`)

	// creditCardPattern matches payment-card-length digit runs, gated by Luhn.
	creditCardPattern = regexp.MustCompile(`\b\d{15,16}\b`)

	// phoneLabeledPattern matches a phone number in label-qualified context.
	// The first capture group is the digit run itself; the label stays in
	// place. A separator-free contiguous ten-digit run is accepted here too.
	phoneLabeledPattern = regexp.MustCompile(`(?i)\b(?:phone|tel|telephone|mobile|cell|contact|call|fax)\b\s*[:#]?\s*(\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}|\d{10})\b`)

	// phoneLabelPrefix recognizes a phone label directly before a digit run.
	// Digit-length categories use it to leave labeled runs to the phone
	// detector, which runs later in the category order.
	phoneLabelPrefix = regexp.MustCompile(`(?i)\b(?:phone|tel|telephone|mobile|cell|contact|call|fax)\b\s*[:#]?\s*$`)

	// phoneLinePattern matches a phone number standing alone on its own line.
	phoneLinePattern = regexp.MustCompile(`(?m)^[ \t]*(\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4})[ \t]*$`)

	// emailPattern matches standard local@domain tokens.
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// dobSlashPattern matches MM/DD/YYYY and MM-DD-YYYY shaped tokens.
	dobSlashPattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{1,2}-\d{1,2}-\d{4}\b`)

	// dobISOPattern matches YYYY-MM-DD shaped tokens.
	dobISOPattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	// addressLabeledPattern matches a full labeled address block: the "Address:"
	// label, a street line with a street-type suffix, and optionally a
	// city/state/ZIP line.
	addressLabeledPattern = regexp.MustCompile(`(?im)\baddress\s*:[ \t]*\d{1,5}[ \t][^\n]{0,60}\b(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\.?\b[^\n]*(?:\n[ \t]*[A-Za-z .]+,[ \t]*[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?)?`)

	// addressBlockPattern matches a two-line street plus city/state/ZIP block.
	// A bare street-type suffix alone never matches; ordinary prose stays intact.
	addressBlockPattern = regexp.MustCompile(`(?m)^[ \t]*\d{1,5}[ \t][A-Za-z][^\n]{0,60}\b(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\.?[ \t]*\n[ \t]*[A-Za-z .]+,[ \t]*[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?`)

	// nameHonorificPattern matches a capitalized name following an honorific.
	// The first capture group is the name itself; the honorific stays in place.
	nameHonorificPattern = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof|Hon|Judge|Atty)\.?[ \t]+([A-Z][a-z]+(?:[ \t]+[A-Z]\.)?[ \t]+[A-Z][a-z]+|[A-Z][a-z]+)`)

	// nameLabeledPattern matches two capitalized words after an explicit label.
	nameLabeledPattern = regexp.MustCompile(`(?m)\b(?:Name[ \t]*:|Signed[ \t]+by[ \t:]|Applicant[ \t]*:|Respondent[ \t]*:)[ \t]*([A-Z][a-z]+[ \t]+[A-Z][a-z]+)`)
)

// Legal-document patterns, enabled by the IncludeLegal option.
var (
	// aNumberPattern matches immigration alien registration numbers.
	aNumberPattern = regexp.MustCompile(`\bA\d{8,9}\b`)

	// caseNumberPattern matches court case number references.
	caseNumberPattern = regexp.MustCompile(`\bCase\s+No\.?\s*[A-Z0-9][A-Z0-9-]*\b`)

	// docketPattern matches docket number references.
	docketPattern = regexp.MustCompile(`\bDocket\s+No\.?\s*[A-Z0-9][A-Z0-9-]*\b`)
)
