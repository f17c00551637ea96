package iban

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
	"github.com/jnorthrup/jbanking/pkg/testutil"
)

// Registry examples across digit-only, letter-bearing and mixed BBAN layouts.
var validIBANs = []string{
	"DE89370400440532013000",
	"GB82WEST12345698765432",
	"FR1420041010050500013M02606",
	"BE68539007547034",
	"NL91ABNA0417164300",
	"ES9121000418450200051332",
	"IT60X0542811101000000123456",
	"AT611904300234573201",
	"CH9300762011623852957",
	"PL61109010140000071219812874",
	"DK5000400440116243",
	"NO9386011117947",
	"FI2112345600000785",
	"SE4550000000058398257466",
	"LU280019400644750000",
	"MC5811222000010123456789030",
}

func TestParseAcceptsRegistryExamples(t *testing.T) {
	for _, s := range validIBANs {
		t.Run(s, func(t *testing.T) {
			v, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, v.String())
		})
	}
}

func TestParseNormalizesInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"de89 3704 0044 0532 0130 00", "DE89370400440532013000"},
		{" FR14 20041010050500013M02606 ", "FR1420041010050500013M02606"},
		{"nl91abna0417164300", "NL91ABNA0417164300"},
	}
	for _, tt := range tests {
		v, err := Parse(tt.input)
		require.NoError(t, err, "Parse(%q)", tt.input)
		assert.Equal(t, tt.want, v.String())
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  domainerrors.Code
	}{
		{"empty", "", domainerrors.CodeInvalidFormat},
		{"no country prefix", "893704004405320130", domainerrors.CodeInvalidFormat},
		{"letters in check digits", "DEAB370400440532013000", domainerrors.CodeInvalidFormat},
		{"body too long", "DE891234567890123456789012345678901", domainerrors.CodeInvalidFormat},
		{"unknown country", "XX89370400440532013000", domainerrors.CodeUnknownCountry},
		{"country outside the scheme", "US89370400440532013000", domainerrors.CodeUnsupportedCountry},
		{"bban too short for country", "DE8937040044053201300", domainerrors.CodeInvalidStructure},
		{"letters in a numeric bban", "DE89WEST0400440532013", domainerrors.CodeInvalidStructure},
		{"flipped check digit", "DE88370400440532013000", domainerrors.CodeIncorrectCheckDigits},
		{"swapped check digits", "DE98370400440532013000", domainerrors.CodeIncorrectCheckDigits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, domainerrors.HasCode(err, tt.code),
				"want %s, got %s", tt.code, domainerrors.CodeOf(err))
			assert.Equal(t, tt.input, domainerrors.InputOf(err),
				"failures carry the original input")
		})
	}
}

// Format errors must carry the input exactly as given, before normalization.
func TestFormatErrorKeepsOriginalInput(t *testing.T) {
	in := "  not an iban  "
	_, err := Parse(in)
	require.Error(t, err)
	assert.Equal(t, in, domainerrors.InputOf(err))
}

func TestFromBBAN(t *testing.T) {
	testutil.Given(t, "a German BBAN in canonical form", func(t *testing.T) {
		v, err := FromBBAN("DE", "370400440532013000")
		require.NoError(t, err)

		testutil.Then(t, "computed check digits match the registry example", func(t *testing.T) {
			assert.Equal(t, "DE89370400440532013000", v.String())
			assert.Equal(t, "89", v.CheckDigits())
		})
	})

	testutil.Given(t, "a BBAN that needs normalization", func(t *testing.T) {
		v, err := FromBBAN("fr", "20041 01005 0500013m026 06")
		require.NoError(t, err)
		assert.Equal(t, "FR1420041010050500013M02606", v.String())
	})

	testutil.Given(t, "invalid parts", func(t *testing.T) {
		tests := []struct {
			name    string
			country string
			bban    string
			code    domainerrors.Code
			input   string
		}{
			{"unknown country", "XX", "370400440532013000", domainerrors.CodeUnknownCountry, "XX"},
			{"country outside the scheme", "US", "370400440532013000", domainerrors.CodeUnsupportedCountry, "US"},
			{"structure mismatch", "DE", "37040044053201300", domainerrors.CodeInvalidStructure, "37040044053201300"},
			{"letters in numeric bban", "DE", "ABCDEFGH0532013000", domainerrors.CodeInvalidStructure, "ABCDEFGH0532013000"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := FromBBAN(tt.country, tt.bban)
				require.Error(t, err)
				assert.True(t, domainerrors.HasCode(err, tt.code))
				assert.Equal(t, tt.input, domainerrors.InputOf(err),
					"failures are keyed to the offending argument")
			})
		}
	})
}

// Construction from parts round-trips: re-parsing the canonical string yields
// an equal value.
func TestFromBBANRoundTrip(t *testing.T) {
	for _, s := range validIBANs {
		parsed, err := Parse(s)
		require.NoError(t, err)

		rebuilt, err := FromBBAN(parsed.CountryCode(), parsed.BBAN())
		require.NoError(t, err)
		assert.Equal(t, parsed, rebuilt)

		reparsed, err := Parse(rebuilt.String())
		require.NoError(t, err)
		assert.Equal(t, rebuilt, reparsed)
	}
}

func TestFromBBANRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bban := rapid.StringMatching(`[0-9]{18}`).Draw(t, "bban")

		v, err := FromBBAN("DE", bban)
		if err != nil {
			t.Fatalf("FromBBAN failed: %v", err)
		}
		reparsed, err := Parse(v.String())
		if err != nil {
			t.Fatalf("canonical string did not re-parse: %v", err)
		}
		if reparsed != v {
			t.Fatalf("round trip changed value: %v != %v", reparsed, v)
		}
	})
}

// IsValid is total and agrees with Parse.
func TestIsValid(t *testing.T) {
	for _, s := range validIBANs {
		assert.True(t, IsValid(s), s)
	}
	for _, s := range []string{"", "DE88370400440532013000", "XX89370400440532013000", "garbage", "   "} {
		assert.False(t, IsValid(s), s)
	}

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		_, err := Parse(s)
		if IsValid(s) != (err == nil) {
			t.Fatalf("IsValid(%q) disagrees with Parse", s)
		}
	})
}

func TestAccessors(t *testing.T) {
	v, err := Parse("FR1420041010050500013M02606")
	require.NoError(t, err)

	assert.Equal(t, "FR", v.CountryCode())
	assert.Equal(t, "14", v.CheckDigits())
	assert.Equal(t, "20041010050500013M02606", v.BBAN())
	assert.Equal(t, "FR1420041010050500013M02606", v.String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"DE89370400440532013000", "DE89 3704 0044 0532 0130 00"},
		{"BE68539007547034", "BE68 5390 0754 7034"},
		{"NO9386011117947", "NO93 8601 1117 947"},
		{"FR1420041010050500013M02606", "FR14 2004 1010 0505 0001 3M02 606"},
	}
	for _, tt := range tests {
		v, err := Parse(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, v.Format())

		// Presentation only: the grouped rendering re-parses to the same value.
		reparsed, err := Parse(v.Format())
		require.NoError(t, err)
		assert.Equal(t, v, reparsed)
	}
}

func TestEquality(t *testing.T) {
	a, err := Parse("DE89 3704 0044 0532 0130 00")
	require.NoError(t, err)
	b, err := Parse("de89370400440532013000")
	require.NoError(t, err)

	assert.Equal(t, a, b, "equality is defined over the canonical string")
	assert.True(t, a == b)

	c, err := Parse("BE68539007547034")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
