// Package iso7064 implements the MOD 97-10 check-digit scheme (ISO 7064) used
// by IBANs and SEPA creditor identifiers.
//
// Both operations expect the identifier layout shared by those schemes: a
// 4-character prefix (country code plus check digits) followed by a non-empty
// body. The fold works on arbitrary-length input without big-integer support
// by reducing modulo 97 before the accumulator can overflow.
//
// Inputs that violate the preconditions (too short, or containing a byte
// outside [0-9A-Za-z]) are caller misuse and yield CodeInvariantViolation.
// Non-alphanumeric bytes have no defined numeric value and are never treated
// as zero; validators reject them structurally before calling this package.
package iso7064

import (
	"fmt"

	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
)

// prefixLength is the country-code-plus-check-digits prefix moved to the end
// of the string before folding.
const prefixLength = 4

// accumulatorCap bounds intermediate products below 10^9. The fold reduces
// modulo 97 before any multiply whose product could pass the cap, so the
// accumulator fits a 32-bit int on every architecture.
const accumulatorCap = 999999999

// Calculate computes the two check digits for input, whose check-digit
// positions are conventionally zeroed (e.g. "DE00" + BBAN). The result is
// zero-padded to two digits.
func Calculate(input string) (string, error) {
	remainder, err := fold(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d", 98-remainder), nil
}

// Validate reports whether input carries correct check digits. It returns nil
// iff the fold over the rearranged input leaves remainder 1, and
// CodeIncorrectCheckDigits otherwise.
func Validate(input string) error {
	remainder, err := fold(input)
	if err != nil {
		return err
	}
	if remainder != 1 {
		return domainerrors.WithInput(domainerrors.CodeIncorrectCheckDigits, input, "incorrect check digits")
	}
	return nil
}

// fold moves the 4-character prefix to the end and folds the character
// numeric values (0-9 for digits, 10-35 for letters) into a running
// remainder modulo 97. Each digit shifts the accumulator by one decimal
// place, each letter by two.
func fold(input string) (int, error) {
	if len(input) <= prefixLength {
		return 0, domainerrors.Newf(domainerrors.CodeInvariantViolation,
			"input must be longer than %d characters, got %d", prefixLength, len(input))
	}

	total := 0
	add := func(c byte) error {
		var value, shift int
		switch {
		case c >= '0' && c <= '9':
			value, shift = int(c-'0'), 10
		case c >= 'A' && c <= 'Z':
			value, shift = int(c-'A')+10, 100
		case c >= 'a' && c <= 'z':
			value, shift = int(c-'a')+10, 100
		default:
			return domainerrors.Newf(domainerrors.CodeInvariantViolation,
				"character %q has no numeric value", c)
		}
		// Reduce before the multiply whenever the product could pass the
		// cap; reducing after would let a letter push the accumulator to
		// ~10^11 first.
		if total > accumulatorCap/shift {
			total %= 97
		}
		total = total*shift + value
		return nil
	}

	for i := prefixLength; i < len(input); i++ {
		if err := add(input[i]); err != nil {
			return 0, err
		}
	}
	for i := 0; i < prefixLength; i++ {
		if err := add(input[i]); err != nil {
			return 0, err
		}
	}
	return total % 97, nil
}
