package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxCompanyNameLength = 255
	MaxTaxNumberLength   = 32
	MaxLineRefLength     = 64
)

var (
	periodRegex  = regexp.MustCompile(`^\d{4}-\d{2}$`)
	countryRegex = regexp.MustCompile(`^[A-Za-z]{2}$`)
	vatRegex     = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
)

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateReportingPeriod checks the YYYY-MM form of a reporting period.
// Empty values are allowed; the service substitutes the current month.
func ValidateReportingPeriod(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if !periodRegex.MatchString(trimmed) {
		return fmt.Errorf("%w: reporting period ('%s') is not in the expected format (YYYY-MM)", ErrValidationFailed, s)
	}
	return nil
}

// ValidateCountryCodeInput checks a user-supplied country code from the
// correction flow. Empty is allowed (keep the extracted value).
func ValidateCountryCodeInput(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if !countryRegex.MatchString(trimmed) {
		return fmt.Errorf("%w: country code ('%s') must be 2 letters", ErrValidationFailed, s)
	}
	return nil
}

// ValidateVATNumberInput checks a user-supplied VAT identifier from the
// correction flow. Empty is allowed (keep the extracted value).
func ValidateVATNumberInput(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if err := ValidateStringMaxLength(trimmed, MaxTaxNumberLength, "VAT number"); err != nil {
		return err
	}
	if !vatRegex.MatchString(trimmed) {
		return fmt.Errorf("%w: VAT number ('%s') may only contain letters, digits and spaces", ErrValidationFailed, s)
	}
	return nil
}
