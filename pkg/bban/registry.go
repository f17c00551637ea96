// Package bban embeds the per-country BBAN structure registry consumed by the
// IBAN validator.
//
// Each entry associates a country with the structure expression of its Basic
// Bank Account Number, taken from the SWIFT IBAN registry. The table is fixed
// data compiled once at package init and shared read-only; a country absent
// from it does not participate in the IBAN scheme, which callers surface as a
// distinct outcome from malformed input.
package bban

import (
	"fmt"
	"strings"

	"github.com/jnorthrup/jbanking/pkg/swift"
)

// Structure is a country's BBAN layout rule.
type Structure struct {
	country string
	pattern *swift.Pattern
}

// Lookup returns the BBAN structure registered for the given alpha-2 country
// code; ok is false when the country does not participate in the IBAN scheme.
func Lookup(code string) (Structure, bool) {
	s, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	return s, ok
}

// CountryCode returns the alpha-2 code the structure belongs to.
func (s Structure) CountryCode() string {
	return s.country
}

// Pattern returns the compiled structure expression for the BBAN.
func (s Structure) Pattern() *swift.Pattern {
	return s.pattern
}

// Expression returns the source structure expression.
func (s Structure) Expression() string {
	return s.pattern.Expression()
}

// Length returns the BBAN's total length. The registry only admits
// exact-length expressions, so every matching BBAN has this length.
func (s Structure) Length() int {
	total, _ := s.pattern.Length()
	return total
}

// expressions is the IBAN registry snapshot: country code → BBAN structure
// expression (the part after the 2!a2!n country/check-digit prefix).
var expressions = map[string]string{
	"AD": "4!n4!n12!c",
	"AE": "3!n16!n",
	"AL": "8!n16!c",
	"AT": "5!n11!n",
	"AZ": "4!a20!c",
	"BA": "3!n3!n8!n2!n",
	"BE": "3!n7!n2!n",
	"BG": "4!a4!n2!n8!c",
	"BH": "4!a14!c",
	"BR": "8!n5!n10!n1!a1!c",
	"BY": "4!c4!n16!c",
	"CH": "5!n12!c",
	"CR": "4!n14!n",
	"CY": "3!n5!n16!c",
	"CZ": "4!n6!n10!n",
	"DE": "8!n10!n",
	"DK": "4!n9!n1!n",
	"DO": "4!c20!n",
	"EE": "2!n2!n11!n1!n",
	"EG": "4!n4!n17!n",
	"ES": "4!n4!n1!n1!n10!n",
	"FI": "3!n11!n",
	"FO": "4!n9!n1!n",
	"FR": "5!n5!n11!c2!n",
	"GB": "4!a6!n8!n",
	"GE": "2!a16!n",
	"GI": "4!a15!c",
	"GL": "4!n9!n1!n",
	"GR": "3!n4!n16!c",
	"GT": "4!c20!c",
	"HR": "7!n10!n",
	"HU": "3!n4!n1!n15!n1!n",
	"IE": "4!a6!n8!n",
	"IL": "3!n3!n13!n",
	"IQ": "4!a3!n12!n",
	"IS": "4!n2!n6!n10!n",
	"IT": "1!a5!n5!n12!c",
	"JO": "4!a4!n18!c",
	"KW": "4!a22!c",
	"KZ": "3!n13!c",
	"LB": "4!n20!c",
	"LC": "4!a24!c",
	"LI": "5!n12!c",
	"LT": "5!n11!n",
	"LU": "3!n13!c",
	"LV": "4!a13!c",
	"MC": "5!n5!n11!c2!n",
	"MD": "2!c18!c",
	"ME": "3!n13!n2!n",
	"MK": "3!n10!c2!n",
	"MR": "5!n5!n11!n2!n",
	"MT": "4!a5!n18!c",
	"MU": "4!a2!n2!n12!n3!n3!a",
	"NL": "4!a10!n",
	"NO": "4!n6!n1!n",
	"PK": "4!a16!c",
	"PL": "8!n16!n",
	"PS": "4!a21!c",
	"PT": "4!n4!n11!n2!n",
	"QA": "4!a21!c",
	"RO": "4!a16!c",
	"RS": "3!n13!n2!n",
	"SA": "2!n18!c",
	"SC": "4!a2!n2!n16!n3!a",
	"SE": "3!n16!n1!n",
	"SI": "5!n8!n2!n",
	"SK": "4!n6!n10!n",
	"SM": "1!a5!n5!n12!c",
	"ST": "4!n4!n11!n2!n",
	"SV": "4!a20!n",
	"TL": "3!n14!n2!n",
	"TN": "2!n3!n13!n2!n",
	"TR": "5!n1!c16!c",
	"UA": "6!n19!c",
	"VA": "3!n15!n",
	"VG": "4!a16!n",
	"XK": "4!n10!n2!n",
}

var registry = func() map[string]Structure {
	m := make(map[string]Structure, len(expressions))
	for code, expression := range expressions {
		pattern := swift.MustCompile(expression)
		if _, exact := pattern.Length(); !exact {
			panic(fmt.Sprintf("bban: structure %q for %s is not fixed-length", expression, code))
		}
		m[code] = Structure{country: code, pattern: pattern}
	}
	return m
}()
