package redaction

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// fixedClock pins the DOB window so tests do not drift with the calendar.
var fixedClock = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func newTestRedactor(includeLegal bool) *Redactor {
	r := NewRedactor(Options{IncludeLegal: includeLegal})
	r.now = func() time.Time { return fixedClock }
	return r
}

func TestRedactCombinedContactLine(t *testing.T) {
	r := newTestRedactor(false)
	result := r.Redact("SSN: 123-45-6789, call 555-123-4567, email a@b.com", "letter.pdf")

	assert.Equal(t,
		"SSN: [REDACTED-SSN], call [REDACTED-PHONE], email [REDACTED-EMAIL]",
		result.RedactedText)

	require.Len(t, result.Items, 3)
	assert.Equal(t, constants.CategorySSN, result.Items[0].Kind)
	assert.Equal(t, constants.CategoryPhone, result.Items[1].Kind)
	assert.Equal(t, constants.CategoryEmail, result.Items[2].Kind)
}

func TestRedactPositionsReferenceOriginalText(t *testing.T) {
	original := "SSN: 123-45-6789, call 555-123-4567, email a@b.com"
	r := newTestRedactor(false)
	result := r.Redact(original, "letter.pdf")

	for _, item := range result.Items {
		assert.Equal(t, item.OriginalValue,
			original[item.Position:item.Position+item.Length],
			"Position and Length must index into the pristine input for %s", item.Kind)
	}
	assert.Equal(t, len(original), result.OriginalLength)
	assert.Equal(t, len(result.RedactedText), result.RedactedLength)
}

func TestRedactIsIdempotent(t *testing.T) {
	r := newTestRedactor(true)
	first := r.Redact(
		"SSN: 123-45-6789, A123456789, Mr. John Smith, born 01/15/1985, email j.smith@firm.example.com",
		"motion.pdf")
	require.NotEmpty(t, first.Items)

	second := r.Redact(first.RedactedText, "motion.pdf")
	assert.Empty(t, second.Items, "Tokens must never re-trigger a detector")
	assert.Equal(t, first.RedactedText, second.RedactedText)
}

func TestRedactNoLeakage(t *testing.T) {
	r := newTestRedactor(false)
	result := r.Redact("SSN: 123-45-6789 and again 123-45-6789", "doc.pdf")

	assert.NotContains(t, result.RedactedText, "123-45-6789")
	assert.Len(t, result.Items, 2, "Every occurrence gets its own record")
}

func TestRedactCategoryClaimOrder(t *testing.T) {
	// A contiguous nine-digit run matches both the SSN and license patterns;
	// the earlier SSN category claims the span.
	r := newTestRedactor(false)
	result := r.Redact("ID on file: 123456789", "doc.pdf")

	require.Len(t, result.Items, 1)
	assert.Equal(t, constants.CategorySSN, result.Items[0].Kind)
	assert.Contains(t, result.RedactedText, constants.TokenSSN)
}

func TestRedactLuhnGating(t *testing.T) {
	r := newTestRedactor(false)

	t.Run("luhn valid sixteen digits is a card", func(t *testing.T) {
		result := r.Redact("Payment via 4111111111111111 on file", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryCreditCard, result.Items[0].Kind)
		assert.Contains(t, result.RedactedText, constants.TokenCreditCard)
	})

	t.Run("luhn invalid sixteen digits is an account", func(t *testing.T) {
		result := r.Redact("Deposit to 4111111111111112 pending", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryBankAccount, result.Items[0].Kind)
	})

	t.Run("seventeen digit run is an account", func(t *testing.T) {
		result := r.Redact("Account 12345678901234567 closed", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryBankAccount, result.Items[0].Kind)
	})
}

func TestRedactDateOfBirthWindow(t *testing.T) {
	r := newTestRedactor(false)

	tests := []struct {
		name     string
		text     string
		redacted bool
	}{
		{"plausible slash date", "DOB: 01/15/1985", true},
		{"plausible iso date", "Born 1990-02-14 in Springfield", true},
		{"future date", "Hearing set for 01/15/2090", false},
		{"impossible calendar day", "Recorded 02/30/1990 incorrectly", false},
		{"older than the window", "Founded 01/15/1850", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Redact(tc.text, "doc.pdf")
			if tc.redacted {
				assert.Contains(t, result.RedactedText, constants.TokenDateOfBirth)
			} else {
				assert.Empty(t, result.Items, "Date outside the birth window must stay intact")
			}
		})
	}
}

func TestRedactPhoneRequiresContext(t *testing.T) {
	r := newTestRedactor(false)

	t.Run("labeled number", func(t *testing.T) {
		result := r.Redact("Phone: (555) 123-4567", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryPhone, result.Items[0].Kind)
		assert.Equal(t, "Phone: [REDACTED-PHONE]", result.RedactedText)
	})

	t.Run("standalone line", func(t *testing.T) {
		result := r.Redact("Contact details below\n555-123-4567\nOffice hours 9-5", "doc.pdf")
		assert.Contains(t, result.RedactedText, constants.TokenPhone)
	})

	t.Run("labeled without separators", func(t *testing.T) {
		result := r.Redact("Phone: 5551234567", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryPhone, result.Items[0].Kind)
		assert.Equal(t, "Phone: [REDACTED-PHONE]", result.RedactedText)
	})

	t.Run("unlabeled digit run keeps its own category", func(t *testing.T) {
		result := r.Redact("License number 5551234567 on file", "doc.pdf")
		require.Len(t, result.Items, 1)
		assert.Equal(t, constants.CategoryDriverLicense, result.Items[0].Kind)
	})
}

func TestRedactNamesRequireContext(t *testing.T) {
	r := newTestRedactor(false)

	t.Run("honorific keeps title", func(t *testing.T) {
		result := r.Redact("Mr. John Smith appeared before the court.", "doc.pdf")
		assert.Equal(t, "Mr. [REDACTED-NAME] appeared before the court.", result.RedactedText)
	})

	t.Run("labeled name", func(t *testing.T) {
		result := r.Redact("Applicant: Maria Lopez", "doc.pdf")
		assert.Equal(t, "Applicant: [REDACTED-NAME]", result.RedactedText)
	})

	t.Run("bare capitalized words stay intact", func(t *testing.T) {
		result := r.Redact("The Immigration Court granted the request.", "doc.pdf")
		assert.Empty(t, result.Items)
	})
}

func TestRedactAddressBlocks(t *testing.T) {
	r := newTestRedactor(false)

	t.Run("labeled address", func(t *testing.T) {
		result := r.Redact("Address: 123 Main Street\nSpringfield, IL 62704", "doc.pdf")
		require.NotEmpty(t, result.Items)
		assert.Equal(t, constants.CategoryAddress, result.Items[0].Kind)
		assert.NotContains(t, result.RedactedText, "Main Street")
	})

	t.Run("bare street suffix stays intact", func(t *testing.T) {
		result := r.Redact("They walked down the street toward the courthouse.", "doc.pdf")
		assert.Empty(t, result.Items)
	})
}

func TestRedactLegalPatternsAreOptIn(t *testing.T) {
	text := "A123456789 appears in Case No. A-2023-1845 and Docket No. 19-55432."

	t.Run("disabled", func(t *testing.T) {
		result := newTestRedactor(false).Redact(text, "doc.pdf")
		assert.Empty(t, result.Items, "Legal identifiers are untouched without the legal option")
	})

	t.Run("enabled", func(t *testing.T) {
		result := newTestRedactor(true).Redact(text, "motion.pdf")
		assert.Contains(t, result.RedactedText, constants.TokenANumber)
		assert.Contains(t, result.RedactedText, constants.TokenCaseNumber)
		assert.Contains(t, result.RedactedText, constants.TokenDocket)
		assert.NotContains(t, result.RedactedText, "A123456789")
	})
}

func TestRedactEmptyAndCleanText(t *testing.T) {
	r := newTestRedactor(true)

	result := r.Redact("", "doc.pdf")
	assert.Empty(t, result.Items)
	assert.Equal(t, "", result.RedactedText)

	clean := "The applicant submitted three exhibits in support of the petition."
	result = r.Redact(clean, "doc.pdf")
	assert.Empty(t, result.Items)
	assert.Equal(t, clean, result.RedactedText)
}

func TestCategoryCounts(t *testing.T) {
	r := newTestRedactor(false)
	result := r.Redact("SSN: 123-45-6789 and SSN: 987-65-4321, email a@b.com", "doc.pdf")

	counts := result.CategoryCounts()
	assert.Equal(t, 2, counts[constants.CategorySSN])
	assert.Equal(t, 1, counts[constants.CategoryEmail])
}

func TestLuhnValidation(t *testing.T) {
	assert.True(t, luhnValid("4111111111111111"))
	assert.True(t, luhnValid("378282246310005"))
	assert.False(t, luhnValid("4111111111111112"))
	assert.False(t, luhnValid("not-digits"))
}

func TestTokensContainNoDetectorTriggers(t *testing.T) {
	tokens := []string{
		constants.TokenSSN, constants.TokenDriverLicense, constants.TokenBankAccount,
		constants.TokenCreditCard, constants.TokenPhone, constants.TokenEmail,
		constants.TokenDateOfBirth, constants.TokenAddress, constants.TokenPersonName,
		constants.TokenANumber, constants.TokenCaseNumber, constants.TokenDocket,
	}
	for _, token := range tokens {
		assert.False(t, strings.ContainsAny(token, "0123456789@"),
			"token %s must not carry digits or @", token)
	}
}

func TestVerifyRedaction(t *testing.T) {
	r := newTestRedactor(true)

	raw := "SSN: 123-45-6789, email maria.lopez@example.com, A123456789 on file."
	leaked := r.VerifyRedaction(raw)
	assert.Contains(t, leaked, constants.CategorySSN)
	assert.Contains(t, leaked, constants.CategoryEmail)
	assert.Contains(t, leaked, constants.CategoryANumber)

	result := r.Redact(raw, "doc.pdf")
	assert.Empty(t, r.VerifyRedaction(result.RedactedText),
		"Redacted output must carry no surviving matches")

	assert.Empty(t, r.VerifyRedaction("No sensitive content in this sentence."))
}
