// Package bic validates Business Identifier Codes (ISO 9362).
//
// BIC is an immutable value wrapping the canonical 11-character normalized
// string; an 8-character input is canonicalized by appending the
// primary-office branch code. Construct via Parse; values compare with ==.
package bic

import (
	"fmt"

	"github.com/jnorthrup/jbanking/pkg/country"
	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
	pstrings "github.com/jnorthrup/jbanking/pkg/platform/strings"
	"github.com/jnorthrup/jbanking/pkg/swift"
)

// Fixed sub-field offsets over the canonical string.
const (
	institutionOffset = 0
	countryOffset     = 4
	locationOffset    = 6
	branchOffset      = 8
	canonicalLength   = 11
)

// PrimaryOfficeBranch is the branch code appended to 8-character BICs.
const PrimaryOfficeBranch = "XXX"

// testLocationSentinel marks a test-and-training BIC when it is the last
// character of the location code.
const testLocationSentinel = '0'

var (
	institutionFormat = swift.MustCompile("4!a2!a2!c")
	branchFormat      = swift.MustCompile("4!a2!a2!c3!c")
)

// BIC is a validated Business Identifier Code. The zero value is not a valid
// BIC.
type BIC struct {
	value string
}

// Parse validates s and returns its canonical 11-character BIC.
//
// Accepted shapes after normalization: 8 characters
// (institution+country+location) or 11 (adds a branch code). Failures carry
// the original input and CodeInvalidFormat or CodeUnknownCountry.
func Parse(s string) (BIC, error) {
	normalized := pstrings.Normalize(s)
	switch len(normalized) {
	case canonicalLength - len(PrimaryOfficeBranch):
		if !institutionFormat.Match(normalized) {
			return BIC{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, s, "not a well-formed BIC")
		}
		normalized += PrimaryOfficeBranch
	case canonicalLength:
		if !branchFormat.Match(normalized) {
			return BIC{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, s, "not a well-formed BIC")
		}
	default:
		return BIC{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, s, "not a well-formed BIC")
	}

	countryCode := normalized[countryOffset:locationOffset]
	if _, ok := country.FromCode(countryCode); !ok {
		return BIC{}, domainerrors.WithInput(domainerrors.CodeUnknownCountry, s,
			fmt.Sprintf("unknown country code %q", countryCode))
	}
	return BIC{value: normalized}, nil
}

// IsValid reports whether s parses as a valid BIC. Total.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// InstitutionCode returns the four-letter institution code.
func (b BIC) InstitutionCode() string {
	return b.value[institutionOffset:countryOffset]
}

// CountryCode returns the two-letter country code.
func (b BIC) CountryCode() string {
	return b.value[countryOffset:locationOffset]
}

// LocationCode returns the two-character location code.
func (b BIC) LocationCode() string {
	return b.value[locationOffset:branchOffset]
}

// BranchCode returns the three-character branch code ("XXX" for the primary
// office).
func (b BIC) BranchCode() string {
	return b.value[branchOffset:]
}

// IsTest reports whether this is a test-and-training BIC: the location code
// ends with the test sentinel.
func (b BIC) IsTest() bool {
	return b.value[locationOffset+1] == testLocationSentinel
}

// Test returns the equivalent test BIC, replacing the last location character
// with the test sentinel. A BIC that is already a test BIC is returned
// unchanged, so the conversion is idempotent.
func (b BIC) Test() BIC {
	if b.IsTest() {
		return b
	}
	return BIC{value: b.value[:locationOffset+1] + string(testLocationSentinel) + b.value[branchOffset:]}
}

// String returns the canonical normalized BIC.
func (b BIC) String() string {
	return b.value
}
