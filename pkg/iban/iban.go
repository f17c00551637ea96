// Package iban validates and constructs International Bank Account Numbers.
//
// IBAN is an immutable value wrapping the canonical normalized string
// (uppercase, no whitespace). Construct via Parse or FromBBAN at trust
// boundaries; direct struct literals bypass validation. Once constructed, the
// wrapped string is well-formed and checksum-valid, so the fixed-offset
// accessors never re-check.
package iban

import (
	"fmt"
	"strings"

	"github.com/jnorthrup/jbanking/pkg/bban"
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
	bbanOffset        = 4
)

// zeroCheckDigits fills the check-digit positions while computing them.
const zeroCheckDigits = "00"

// basicFormat is the kind's overall shape: country code, check digits, and an
// up-to-30-character alphanumeric BBAN. Country-specific structure is checked
// separately against the BBAN registry.
var basicFormat = swift.MustCompile("2!a2!n30c")

// IBAN is a validated International Bank Account Number. The zero value is
// not a valid IBAN; values compare with ==.
type IBAN struct {
	value string
}

// Parse validates s and returns its IBAN value.
//
// The input is normalized (whitespace stripped, uppercased) before any check.
// Failures carry the original input and one of CodeInvalidFormat,
// CodeUnknownCountry, CodeUnsupportedCountry, CodeInvalidStructure or
// CodeIncorrectCheckDigits.
func Parse(s string) (IBAN, error) {
	normalized := pstrings.Normalize(s)
	if !basicFormat.Match(normalized) {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeInvalidFormat, s, "not a well-formed IBAN")
	}

	countryCode := normalized[countryCodeOffset:checkDigitsOffset]
	if _, ok := country.FromCode(countryCode); !ok {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeUnknownCountry, s,
			fmt.Sprintf("unknown country code %q", countryCode))
	}

	structure, ok := bban.Lookup(countryCode)
	if !ok {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeUnsupportedCountry, s,
			fmt.Sprintf("country %s does not participate in the IBAN scheme", countryCode))
	}
	if !structure.Pattern().Match(normalized[bbanOffset:]) {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeInvalidStructure, s,
			fmt.Sprintf("BBAN does not match structure %q for country %s", structure.Expression(), countryCode))
	}

	if err := iso7064.Validate(normalized); err != nil {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeIncorrectCheckDigits, s, "incorrect check digits")
	}
	return IBAN{value: normalized}, nil
}

// FromBBAN constructs an IBAN from a country code and a BBAN, computing the
// check digits. Structure failures are keyed to the bban argument since no
// full identifier exists yet.
func FromBBAN(countryCode, bbanValue string) (IBAN, error) {
	code := pstrings.Normalize(countryCode)
	if _, ok := country.FromCode(code); !ok {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeUnknownCountry, countryCode,
			fmt.Sprintf("unknown country code %q", countryCode))
	}

	structure, ok := bban.Lookup(code)
	if !ok {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeUnsupportedCountry, countryCode,
			fmt.Sprintf("country %s does not participate in the IBAN scheme", code))
	}

	body := pstrings.Normalize(bbanValue)
	if !structure.Pattern().Match(body) {
		return IBAN{}, domainerrors.WithInput(domainerrors.CodeInvalidStructure, bbanValue,
			fmt.Sprintf("BBAN does not match structure %q for country %s", structure.Expression(), code))
	}

	digits, err := iso7064.Calculate(code + zeroCheckDigits + body)
	if err != nil {
		return IBAN{}, err
	}
	return IBAN{value: code + digits + body}, nil
}

// IsValid reports whether s parses as a valid IBAN. Total: it never panics
// and never returns an error.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// CountryCode returns the two-letter country code.
func (i IBAN) CountryCode() string {
	return i.value[countryCodeOffset:checkDigitsOffset]
}

// CheckDigits returns the two check digits.
func (i IBAN) CheckDigits() string {
	return i.value[checkDigitsOffset:bbanOffset]
}

// BBAN returns the country-specific Basic Bank Account Number.
func (i IBAN) BBAN() string {
	return i.value[bbanOffset:]
}

// String returns the canonical normalized IBAN.
func (i IBAN) String() string {
	return i.value
}

// Format returns the printable rendering with a space every four characters;
// the last group may be shorter. Presentation only, the canonical value is
// unchanged.
func (i IBAN) Format() string {
	var b strings.Builder
	b.Grow(len(i.value) + len(i.value)/4)
	for pos := 0; pos < len(i.value); pos += 4 {
		if pos > 0 {
			b.WriteByte(' ')
		}
		end := min(pos+4, len(i.value))
		b.WriteString(i.value[pos:end])
	}
	return b.String()
}
