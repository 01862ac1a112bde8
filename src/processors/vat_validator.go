// backend/src/processors/vat_validator.go
package processors

import (
	"fmt"
	"regexp"
)

// countryVATPatterns holds the national VAT number format per issuing
// country (EU member states plus GB), without the country prefix. Country
// codes absent from this table skip the format check.
var countryVATPatterns = map[string]*regexp.Regexp{
	"AT": regexp.MustCompile(`^U[0-9]{8}$`),
	"BE": regexp.MustCompile(`^[01][0-9]{9}$`),
	"BG": regexp.MustCompile(`^[0-9]{9,10}$`),
	"CY": regexp.MustCompile(`^[0-9]{8}[A-Z]$`),
	"CZ": regexp.MustCompile(`^[0-9]{8,10}$`),
	"DE": regexp.MustCompile(`^[0-9]{9}$`),
	"DK": regexp.MustCompile(`^[0-9]{8}$`),
	"EE": regexp.MustCompile(`^[0-9]{9}$`),
	"EL": regexp.MustCompile(`^[0-9]{9}$`),
	"ES": regexp.MustCompile(`^[A-Z0-9][0-9]{7}[A-Z0-9]$`),
	"FI": regexp.MustCompile(`^[0-9]{8}$`),
	"FR": regexp.MustCompile(`^[A-Z0-9]{2}[0-9]{9}$`),
	"GB": regexp.MustCompile(`^([0-9]{9}|[0-9]{12}|(GD|HA)[0-9]{3})$`),
	"HR": regexp.MustCompile(`^[0-9]{11}$`),
	"HU": regexp.MustCompile(`^[0-9]{8}$`),
	"IE": regexp.MustCompile(`^([0-9]{7}[A-Z]{1,2}|[0-9][A-Z][0-9]{5}[A-Z])$`),
	"IT": regexp.MustCompile(`^[0-9]{11}$`),
	"LT": regexp.MustCompile(`^([0-9]{9}|[0-9]{12})$`),
	"LU": regexp.MustCompile(`^[0-9]{8}$`),
	"LV": regexp.MustCompile(`^[0-9]{11}$`),
	"MT": regexp.MustCompile(`^[0-9]{8}$`),
	"NL": regexp.MustCompile(`^[0-9]{9}B[0-9]{2}$`),
	"PL": regexp.MustCompile(`^[0-9]{10}$`),
	"PT": regexp.MustCompile(`^[0-9]{9}$`),
	"RO": regexp.MustCompile(`^[0-9]{2,10}$`),
	"SE": regexp.MustCompile(`^[0-9]{12}$`),
	"SI": regexp.MustCompile(`^[0-9]{8}$`),
	"SK": regexp.MustCompile(`^[0-9]{10}$`),
}

var digitsOnlyPattern = regexp.MustCompile(`^[0-9]+$`)

const (
	minNumericVATLength = 5
	repeatedDigitLimit  = 4
	sequentialRunLength = 5
)

// VATValidator performs per-country format checks plus heuristic anomaly
// detection on VAT numbers. It is purely local: format failures are data
// quality signals, not authoritative registry answers.
type VATValidator struct{}

func NewVATValidator() *VATValidator { return &VATValidator{} }

// Validate checks a (country code, VAT number) pair. It returns false plus a
// human-readable reason on the first failing check.
func (v *VATValidator) Validate(countryCode, vatNumber string) (bool, string) {
	if countryCode == "" || vatNumber == "" {
		return false, "missing country code or VAT number"
	}

	if digit, run := longestDigitRun(vatNumber); run >= repeatedDigitLimit {
		return false, fmt.Sprintf("digit '%c' repeated %d times in a row", digit, run)
	}

	if seq := sequentialDigitRun(vatNumber); seq != "" {
		return false, fmt.Sprintf("contains sequential digit run %q", seq)
	}

	numeric := digitsOnlyPattern.MatchString(vatNumber)
	if numeric && allSameDigit(vatNumber) {
		return false, "all digits are identical"
	}
	if numeric && len(vatNumber) < minNumericVATLength {
		return false, fmt.Sprintf("suspiciously short VAT number (%d digits)", len(vatNumber))
	}

	if pattern, known := countryVATPatterns[countryCode]; known {
		if !pattern.MatchString(vatNumber) {
			return false, fmt.Sprintf("does not match the expected VAT format for %s", countryCode)
		}
	}

	return true, ""
}

// longestDigitRun returns the digit with the longest run of consecutive
// repetitions and that run's length. RE2 has no backreferences, so the scan
// is manual.
func longestDigitRun(s string) (byte, int) {
	var bestDigit byte
	best := 0
	run := 0
	var prev byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' && c == prev {
			run++
		} else if c >= '0' && c <= '9' {
			run = 1
		} else {
			run = 0
		}
		prev = c
		if run > best {
			best = run
			bestDigit = c
		}
	}
	return bestDigit, best
}

// sequentialDigitRun returns the first window of sequentialRunLength
// consecutive ascending or descending digits found in s, or "".
func sequentialDigitRun(s string) string {
	for i := 0; i+sequentialRunLength <= len(s); i++ {
		window := s[i : i+sequentialRunLength]
		if isSequential(window, 1) || isSequential(window, -1) {
			return window
		}
	}
	return ""
}

func isSequential(window string, step int) bool {
	for i := 0; i < len(window); i++ {
		if window[i] < '0' || window[i] > '9' {
			return false
		}
		if i > 0 && int(window[i])-int(window[i-1]) != step {
			return false
		}
	}
	return true
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return len(s) > 0
}
