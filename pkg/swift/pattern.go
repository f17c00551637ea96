// Package swift compiles SWIFT structure expressions into reusable matchers.
//
// A structure expression is a concatenation of groups of the form
// <count><!><class>, e.g. "4!n" (exactly four digits) or "3c" (one to three
// alphanumeric characters). The grammar is validated explicitly before any
// regular expression is built, so a malformed expression fails with
// CodePatternSyntax rather than surfacing as a cryptic regexp error.
//
// Compiled patterns are immutable and safe for concurrent use. Matching is
// whole-string only, never partial.
package swift

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
)

// expressionRegexp accepts the group grammar for a whole expression;
// groupRegexp iterates its groups. Keeping both anchored on the same group
// shape guarantees no leftover tokens survive validation.
var (
	expressionRegexp = regexp.MustCompile(`^([0-9]+!?[nace])+$`)
	groupRegexp      = regexp.MustCompile(`[0-9]+!?[nace]`)
)

// characterClasses maps each expression class to its regexp character class.
var characterClasses = map[byte]string{
	'n': "[0-9]",
	'a': "[A-Z]",
	'c': "[A-Za-z0-9]",
	'e': "[ ]",
}

// Pattern is a compiled structure expression. Equality is defined over the
// source expression, not the backing matcher.
type Pattern struct {
	expression string
	matcher    *regexp.Regexp
	minLength  int
	maxLength  int
}

// Compile validates expression against the group grammar and returns its
// compiled pattern. A malformed expression yields CodePatternSyntax.
func Compile(expression string) (*Pattern, error) {
	if !expressionRegexp.MatchString(expression) {
		return nil, domainerrors.WithInput(domainerrors.CodePatternSyntax, expression,
			"not a valid structure expression")
	}

	var b strings.Builder
	b.WriteByte('^')
	minLength, maxLength := 0, 0
	for _, group := range groupRegexp.FindAllString(expression, -1) {
		class := group[len(group)-1]
		counter := strings.TrimSuffix(group[:len(group)-1], "!")
		count, err := strconv.Atoi(counter)
		if err != nil || count == 0 {
			return nil, domainerrors.WithInput(domainerrors.CodePatternSyntax, expression,
				fmt.Sprintf("invalid repetition count %q", counter))
		}
		b.WriteString(characterClasses[class])
		maxLength += count
		if strings.HasSuffix(group[:len(group)-1], "!") {
			minLength += count
			fmt.Fprintf(&b, "{%d}", count)
		} else {
			minLength++
			fmt.Fprintf(&b, "{1,%d}", count)
		}
	}
	b.WriteByte('$')

	matcher, err := regexp.Compile(b.String())
	if err != nil {
		// Repetition counts beyond the regexp engine's limit land here.
		return nil, domainerrors.Wrap(err, domainerrors.CodePatternSyntax,
			fmt.Sprintf("cannot compile structure expression %q", expression))
	}
	return &Pattern{expression: expression, matcher: matcher, minLength: minLength, maxLength: maxLength}, nil
}

// MustCompile is Compile for static tables; it panics on a syntax error.
func MustCompile(expression string) *Pattern {
	p, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether candidate matches the whole expression.
func (p *Pattern) Match(candidate string) bool {
	return p.matcher.MatchString(candidate)
}

// Length returns the length of strings matching the expression. When exact
// is false, total is the maximum and shorter strings can also match.
func (p *Pattern) Length() (total int, exact bool) {
	return p.maxLength, p.minLength == p.maxLength
}

// Expression returns the source structure expression.
func (p *Pattern) Expression() string {
	return p.expression
}

// String returns the source structure expression.
func (p *Pattern) String() string {
	return p.expression
}

// Equal reports whether both patterns were compiled from the same expression.
func (p *Pattern) Equal(other *Pattern) bool {
	return other != nil && p.expression == other.expression
}
