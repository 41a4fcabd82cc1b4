// Package constants provides shared constant values used throughout the application.
//
// The redaction_const.go file defines the PII categories recognized by the
// redactor, their replacement tokens, and the legal-document pattern labels.
// Category order matters: detectors run in the fixed order listed here, from the
// most specific patterns (lowest false-positive risk) to the most heuristic.
package constants

// PII Categories identify the kinds of sensitive information detected by the redactor.
const (
	CategorySSN           = "ssn"
	CategoryDriverLicense = "driverLicense"
	CategoryBankAccount   = "bankAccount"
	CategoryCreditCard    = "creditCard"
	CategoryPhone         = "phone"
	CategoryEmail         = "email"
	CategoryDateOfBirth   = "dateOfBirth"
	CategoryAddress       = "address"
	CategoryPersonName    = "personName"
)

// Legal Categories cover identifiers specific to legal and immigration documents.
const (
	CategoryANumber    = "aNumber"
	CategoryCaseNumber = "caseNumber"
	CategoryDocket     = "docketNumber"
)

// Redaction Tokens are the opaque placeholders substituted for detected values.
// Tokens contain no digits and no @ so they can never re-trigger a detector.
const (
	TokenSSN           = "[REDACTED-SSN]"
	TokenDriverLicense = "[REDACTED-LICENSE]"
	TokenBankAccount   = "[REDACTED-ACCOUNT]"
	TokenCreditCard    = "[REDACTED-CARD]"
	TokenPhone         = "[REDACTED-PHONE]"
	TokenEmail         = "[REDACTED-EMAIL]"
	TokenDateOfBirth   = "[REDACTED-DOB]"
	TokenAddress       = "[REDACTED-ADDRESS]"
	TokenPersonName    = "[REDACTED-NAME]"
	TokenANumber       = "[REDACTED-ANUMBER]"
	TokenCaseNumber    = "[REDACTED-CASE]"
	TokenDocket        = "[REDACTED-DOCKET]"
)

// LogRedactedValue replaces sensitive values in log output. Original values
// detected by the redactor must never reach a log sink.
const LogRedactedValue = "[REDACTED]"

// DOB Validation Window limits how far back a date-shaped token may reach and
// still be treated as a plausible date of birth.
const MaxDOBAgeYears = 100

// Visual Redaction Labels are drawn onto redacted document renditions.
const (
	RedactionBannerLabel = "REDACTED VERSION - personal information protected"
)
