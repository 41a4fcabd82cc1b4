package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saianeesh01/legal-ai-dashboard-ui-sub001/internal/constants"
)

// wordText builds a text sample of n plausible words.
func wordText(n int) string {
	words := []string{"the", "applicant", "submitted", "supporting", "evidence", "before", "hearing"}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}

func TestValidateEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		result := Validate(text)
		assert.Equal(t, constants.QualityFailed, result.Quality, "Empty input should fail validation")
		assert.False(t, result.HasValidContent, "Empty input should not have valid content")
		assert.Equal(t, 0, result.WordCount)
	}
}

func TestValidateQualityBuckets(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		quality  string
		validity bool
	}{
		{"high quality long prose", wordText(120), constants.QualityHigh, true},
		{"medium quality prose", wordText(60), constants.QualityMedium, true},
		{"low quality but acceptable", wordText(15), constants.QualityLow, true},
		{"too few words", wordText(5), constants.QualityLow, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.text)
			assert.Equal(t, tc.quality, result.Quality)
			assert.Equal(t, tc.validity, result.HasValidContent)
		})
	}
}

func TestValidateAlphaRatioGate(t *testing.T) {
	// Plenty of words, but almost entirely numeric: fails the ratio gate.
	numeric := "1204 5830 9172 3345 6678 8821 1093 4456 7789 2203 5567 8890"
	result := Validate(numeric)
	assert.False(t, result.HasValidContent, "Numeric-only text should fail the alpha ratio gate")
	assert.Equal(t, constants.QualityLow, result.Quality)
}

func TestValidateCorruptionSignatures(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"leading symbol run", "#$%^&*()!@#$%^&*() followed by normal words " + wordText(20)},
		{"repeated character run", "introduction aaaaaaaaaaaa " + wordText(20)},
		{"non printable run", "prefix \x01\x02\x03\x04\x05\x06 " + wordText(20)},
		{"scattered single char tokens", "a b c d e f g h i j k l"},
		{"garbled short token sequences", "aa bb cc dd word aa bb cc dd word aa bb cc dd word aa bb cc dd word"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.text)
			assert.Equal(t, constants.QualityFailed, result.Quality, "Corrupted text should fail outright")
			assert.False(t, result.HasValidContent)
		})
	}
}

func TestValidateIsTotal(t *testing.T) {
	// Arbitrary byte soup must never panic the validator.
	inputs := []string{
		string([]byte{0x00, 0xff, 0xfe, 0x80, 0x7f}),
		strings.Repeat("�", 40),
		"normal text with trailing garbage \x00\x00",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Validate(in) })
	}
}

func TestValidateMonotonicBuckets(t *testing.T) {
	// A longer sample of the same prose never scores a lower bucket.
	rank := map[string]int{
		constants.QualityFailed: 0,
		constants.QualityLow:    1,
		constants.QualityMedium: 2,
		constants.QualityHigh:   3,
	}

	prev := 0
	for _, n := range []int{12, 60, 120} {
		result := Validate(wordText(n))
		assert.GreaterOrEqual(t, rank[result.Quality], prev,
			"Quality should not degrade as word count grows")
		prev = rank[result.Quality]
	}
}
