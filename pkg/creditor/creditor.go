// Package creditor validates and constructs SEPA Creditor Identifiers.
//
// Identifier is an immutable value wrapping the canonical normalized string:
// country code, check digits, business code, then the national identifier.
// The business code is free text for creditor use and never participates in
// the check-digit computation; it is spliced out before the MOD 97-10 fold.
package creditor

import (
	"fmt"

	"github.com/jnorthrup/jbanking/pkg/country"
	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
	"github.com/jnorthrup/jbanking/pkg/iso7064"
	pstrings "github.com/jnorthrup/jbanking/pkg/platform/strings"
	"github.com/jnorthrup/jbanking/pkg/swift"
)

// Fixed sub-field offsets over the canonical string.
const (
	countryCodeOffset = 0
	checkDigitsOffset = 2
	businessOffset    = 4
	nationalOffset    = 7
)

// zeroCheckDigits fills the check-digit positions while computing them.
const zeroCheckDigits = "00"

var (
	// basicFormat is the kind's overall shape: country code, check digits,
	// three-character business code, up-to-28-character national identifier.
	basicFormat = swift.MustCompile("2!a2!n3!c28c")
	// businessFormat checks the business-code argument on parts construction.
	businessFormat = swift.MustCompile("3!c")
)

// Identifier is a validated Creditor Identifier. The zero value is not
// valid; values compare with ==.
type Identifier struct {
	value string
}

// Parse validates s and returns its Identifier value.
//
// The input is normalized before any check. Failures carry the original
// input and one of CodeInvalidFormat, CodeUnknownCountry,
// CodeUnsupportedCountry, CodeInvalidStructure or CodeIncorrectCheckDigits.
func Parse(s string) (Identifier, error) {
	normalized := pstrings.Normalize(s)
	if !basicFormat.Match(normalized) {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, s,
			"not a well-formed creditor identifier")
	}

	countryCode := normalized[countryCodeOffset:checkDigitsOffset]
	if _, ok := country.FromCode(countryCode); !ok {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeUnknownCountry, s,
			fmt.Sprintf("unknown country code %q", countryCode))
	}

	structure, ok := Lookup(countryCode)
	if !ok {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeUnsupportedCountry, s,
			fmt.Sprintf("country %s does not participate in the creditor identifier scheme", countryCode))
	}
	national := normalized[nationalOffset:]
	if !structure.Pattern().Match(national) {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeInvalidStructure, s,
			fmt.Sprintf("national identifier does not match structure %q for country %s",
				structure.Expression(), countryCode))
	}

	// The business code (positions 4-7) is excluded from the checksum.
	stripped := normalized[:businessOffset] + national
	if err := iso7064.Validate(stripped); err != nil {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeIncorrectCheckDigits, s,
			"incorrect check digits")
	}
	return Identifier{value: normalized}, nil
}

// FromNationalID constructs an Identifier from a country code, business code
// and national identifier, computing the check digits. Failures are keyed to
// the offending argument since no full identifier exists yet.
func FromNationalID(countryCode, businessCode, nationalID string) (Identifier, error) {
	code := pstrings.Normalize(countryCode)
	if _, ok := country.FromCode(code); !ok {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeUnknownCountry, countryCode,
			fmt.Sprintf("unknown country code %q", countryCode))
	}

	structure, ok := Lookup(code)
	if !ok {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeUnsupportedCountry, countryCode,
			fmt.Sprintf("country %s does not participate in the creditor identifier scheme", code))
	}

	business := pstrings.Normalize(businessCode)
	if !businessFormat.Match(business) {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, businessCode,
			"business code must be three alphanumeric characters")
	}

	national := pstrings.Normalize(nationalID)
	if !structure.Pattern().Match(national) {
		return Identifier{}, domainerrors.WithInput(domainerrors.CodeInvalidStructure, nationalID,
			fmt.Sprintf("national identifier does not match structure %q for country %s",
				structure.Expression(), code))
	}

	digits, err := iso7064.Calculate(code + zeroCheckDigits + national)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{value: code + digits + business + national}, nil
}

// IsValid reports whether s parses as a valid creditor identifier. Total.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// CountryCode returns the two-letter country code.
func (id Identifier) CountryCode() string {
	return id.value[countryCodeOffset:checkDigitsOffset]
}

// CheckDigits returns the two check digits.
func (id Identifier) CheckDigits() string {
	return id.value[checkDigitsOffset:businessOffset]
}

// BusinessCode returns the three-character creditor business code.
func (id Identifier) BusinessCode() string {
	return id.value[businessOffset:nationalOffset]
}

// NationalID returns the country-specific national identifier.
func (id Identifier) NationalID() string {
	return id.value[nationalOffset:]
}

// String returns the canonical normalized creditor identifier.
func (id Identifier) String() string {
	return id.value
}
