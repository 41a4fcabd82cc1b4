package redaction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// candidate is one span a detector proposes for redaction, positioned in the
// original input text.
type candidate struct {
	start int
	end   int
	value string
}

// detector is a single PII category: a candidate finder plus its replacement
// token. The finder applies the category's own validation, so every candidate
// it returns is an accepted match.
type detector struct {
	category string
	token    string
	find     func(text string, now time.Time) []candidate
}

// detectors returns the fixed category order. Order matters: the most specific,
// lowest-false-positive patterns claim their spans first.
func detectors(includeLegal bool) []detector {
	ds := []detector{
		{constants.CategorySSN, constants.TokenSSN, findSSN},
		{constants.CategoryDriverLicense, constants.TokenDriverLicense, findDriverLicense},
		{constants.CategoryBankAccount, constants.TokenBankAccount, findBankAccount},
		{constants.CategoryCreditCard, constants.TokenCreditCard, findCreditCard},
		{constants.CategoryPhone, constants.TokenPhone, findPhone},
		{constants.CategoryEmail, constants.TokenEmail, findEmail},
		{constants.CategoryDateOfBirth, constants.TokenDateOfBirth, findDateOfBirth},
		{constants.CategoryAddress, constants.TokenAddress, findAddress},
		{constants.CategoryPersonName, constants.TokenPersonName, findPersonName},
	}

	if includeLegal {
		ds = append(ds,
			detector{constants.CategoryANumber, constants.TokenANumber, findANumber},
			detector{constants.CategoryCaseNumber, constants.TokenCaseNumber, findCaseNumber},
			detector{constants.CategoryDocket, constants.TokenDocket, findDocket},
		)
	}

	return ds
}

// findSSN matches dashed and contiguous social security numbers. The pattern
// has the highest specificity and lowest false-positive risk, so matches are
// accepted unconditionally.
func findSSN(text string, _ time.Time) []candidate {
	out := matchAll(ssnDashedPattern, text)
	return append(out, matchAll(ssnContiguousPattern, text)...)
}

// findDriverLicense matches 6-12 digit runs, rejecting all-same-digit runs to
// reduce trivial false positives from placeholder zeros. Phone-labeled
// ten-digit runs are left for the phone category.
func findDriverLicense(text string, _ time.Time) []candidate {
	var out []candidate
	for _, c := range matchAll(licensePattern, text) {
		if allSameDigit(c.value) {
			continue
		}
		if len(c.value) == 10 && phoneLabeled(text, c.start) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// findBankAccount matches 8-17 digit runs, rejecting all-same-digit runs.
// Card-length runs that pass the Luhn check are left for the credit card
// category so they carry the card token.
func findBankAccount(text string, _ time.Time) []candidate {
	var out []candidate
	for _, c := range matchAll(bankAccountPattern, text) {
		if allSameDigit(c.value) {
			continue
		}
		if (len(c.value) == 15 || len(c.value) == 16) && luhnValid(c.value) {
			continue
		}
		if len(c.value) == 10 && phoneLabeled(text, c.start) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// findCreditCard matches 15-16 digit runs, accepted only if they pass the Luhn
// checksum.
func findCreditCard(text string, _ time.Time) []candidate {
	var out []candidate
	for _, c := range matchAll(creditCardPattern, text) {
		if !luhnValid(c.value) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// findPhone matches numbers only in label-qualified context or standing alone
// on their own line, suppressing false positives from arbitrary ten-digit
// numeric data. The candidate is the digit run itself, not the label.
func findPhone(text string, _ time.Time) []candidate {
	out := matchGroup(phoneLabeledPattern, text)
	return append(out, matchGroup(phoneLinePattern, text)...)
}

// findEmail matches standard local@domain tokens, unconditional.
func findEmail(text string, _ time.Time) []candidate {
	return matchAll(emailPattern, text)
}

// findDateOfBirth matches date-shaped tokens accepted only when they parse to
// a valid calendar date within the last hundred years up to now. Future dates
// and deadlines misread as birthdates are excluded.
func findDateOfBirth(text string, now time.Time) []candidate {
	var out []candidate
	for _, c := range matchAll(dobSlashPattern, text) {
		if plausibleBirthDate(c.value, now) {
			out = append(out, c)
		}
	}
	for _, c := range matchAll(dobISOPattern, text) {
		if plausibleBirthDate(c.value, now) {
			out = append(out, c)
		}
	}
	return out
}

// findAddress matches only full labeled address blocks or two-line
// street + city/state/ZIP blocks, never a bare street-type suffix alone.
func findAddress(text string, _ time.Time) []candidate {
	out := matchAll(addressLabeledPattern, text)
	return append(out, matchAll(addressBlockPattern, text)...)
}

// findPersonName matches capitalized names only after an honorific or an
// explicit label. Bare capitalized word pairs are not redacted; the
// false-positive rate is unacceptable otherwise.
func findPersonName(text string, _ time.Time) []candidate {
	out := matchGroup(nameHonorificPattern, text)
	return append(out, matchGroup(nameLabeledPattern, text)...)
}

func findANumber(text string, _ time.Time) []candidate {
	return matchAll(aNumberPattern, text)
}

func findCaseNumber(text string, _ time.Time) []candidate {
	return matchAll(caseNumberPattern, text)
}

func findDocket(text string, _ time.Time) []candidate {
	return matchAll(docketPattern, text)
}

// matchAll collects whole-pattern matches as candidates.
// phoneLabeled reports whether the text directly before off ends in a phone
// label, meaning the digit run at off belongs to the phone category.
func phoneLabeled(text string, off int) bool {
	lo := off - 16
	if lo < 0 {
		lo = 0
	}
	return phoneLabelPrefix.MatchString(text[lo:off])
}

func matchAll(re *regexp.Regexp, text string) []candidate {
	var out []candidate
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, candidate{
			start: loc[0],
			end:   loc[1],
			value: text[loc[0]:loc[1]],
		})
	}
	return out
}

// matchGroup collects the first capture group of each match as a candidate,
// for patterns where the surrounding context qualifies the match but only the
// sub-match is sensitive.
func matchGroup(re *regexp.Regexp, text string) []candidate {
	var out []candidate
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}
		out = append(out, candidate{
			start: loc[2],
			end:   loc[3],
			value: text[loc[2]:loc[3]],
		})
	}
	return out
}

// allSameDigit reports whether a digit run consists of one repeated digit.
func allSameDigit(s string) bool {
	if s == "" {
		return true
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// luhnValid runs the Luhn checksum over a digit string.
func luhnValid(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// plausibleBirthDate reports whether a date-shaped token parses to a real
// calendar date between a hundred years ago and now.
func plausibleBirthDate(value string, now time.Time) bool {
	var year, month, day int

	sep := "/"
	if strings.Contains(value, "-") {
		sep = "-"
	}
	parts := strings.Split(value, sep)
	if len(parts) != 3 {
		return false
	}

	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	c, errC := strconv.Atoi(parts[2])
	if errA != nil || errB != nil || errC != nil {
		return false
	}

	if len(parts[0]) == 4 {
		// YYYY-MM-DD
		year, month, day = a, b, c
	} else {
		// MM/DD/YYYY or MM-DD-YYYY
		month, day, year = a, b, c
	}

	if month < 1 || month > 12 || day < 1 {
		return false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		// Normalization moved the date: not a real calendar day.
		return false
	}

	if date.After(now) {
		return false
	}
	oldest := now.AddDate(-constants.MaxDOBAgeYears, 0, 0)
	return !date.Before(oldest)
}
