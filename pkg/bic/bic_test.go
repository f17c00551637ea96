package bic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domainerrors "github.com/jnorthrup/jbanking/pkg/domain-errors"
)

func TestParse(t *testing.T) {
	t.Run("eight characters canonicalize to the primary office", func(t *testing.T) {
		b, err := Parse("DEUTDEFF")
		require.NoError(t, err)
		assert.Equal(t, "DEUTDEFFXXX", b.String())
		assert.Equal(t, "XXX", b.BranchCode())
	})

	t.Run("eleven characters are kept as given", func(t *testing.T) {
		b, err := Parse("DEUTDEFF500")
		require.NoError(t, err)
		assert.Equal(t, "DEUTDEFF500", b.String())
		assert.Equal(t, "500", b.BranchCode())
	})

	t.Run("input is normalized first", func(t *testing.T) {
		b, err := Parse(" deut de ff ")
		require.NoError(t, err)
		assert.Equal(t, "DEUTDEFFXXX", b.String())
	})
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  domainerrors.Code
	}{
		{"empty", "", domainerrors.CodeInvalidFormat},
		{"too short", "DEUTDEF", domainerrors.CodeInvalidFormat},
		{"nine characters", "DEUTDEFFX", domainerrors.CodeInvalidFormat},
		{"too long", "DEUTDEFFXXXX", domainerrors.CodeInvalidFormat},
		{"digit in institution code", "DEU7DEFF", domainerrors.CodeInvalidFormat},
		{"digit in country code", "DEUTD3FF", domainerrors.CodeInvalidFormat},
		{"unknown country", "DEUTXXFF", domainerrors.CodeUnknownCountry},
		{"unknown country with branch", "DEUTXXFF500", domainerrors.CodeUnknownCountry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, domainerrors.HasCode(err, tt.code),
				"want %s, got %s", tt.code, domainerrors.CodeOf(err))
			assert.Equal(t, tt.input, domainerrors.InputOf(err))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("DEUTDEFF"))
	assert.True(t, IsValid("DEUTDEFF500"))
	assert.False(t, IsValid("DEUTDEF"))
	assert.False(t, IsValid(""))

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		_, err := Parse(s)
		if IsValid(s) != (err == nil) {
			t.Fatalf("IsValid(%q) disagrees with Parse", s)
		}
	})
}

func TestAccessors(t *testing.T) {
	b, err := Parse("DEUTDEFF500")
	require.NoError(t, err)

	assert.Equal(t, "DEUT", b.InstitutionCode())
	assert.Equal(t, "DE", b.CountryCode())
	assert.Equal(t, "FF", b.LocationCode())
	assert.Equal(t, "500", b.BranchCode())
}

func TestTestBIC(t *testing.T) {
	t.Run("conversion replaces the location sentinel only", func(t *testing.T) {
		b, err := Parse("DEUTDEFFXXX")
		require.NoError(t, err)
		require.False(t, b.IsTest())

		converted := b.Test()
		assert.True(t, converted.IsTest())
		assert.Equal(t, "DEUTDEF0XXX", converted.String())
		assert.Equal(t, b.InstitutionCode(), converted.InstitutionCode())
		assert.Equal(t, b.CountryCode(), converted.CountryCode())
		assert.Equal(t, b.BranchCode(), converted.BranchCode())
	})

	t.Run("conversion is idempotent", func(t *testing.T) {
		b, err := Parse("DEUTDEFF500")
		require.NoError(t, err)

		once := b.Test()
		twice := once.Test()
		assert.Equal(t, once, twice)
		assert.True(t, once == twice)
	})

	t.Run("a test BIC is returned unchanged", func(t *testing.T) {
		b, err := Parse("DEUTDEF0")
		require.NoError(t, err)
		assert.True(t, b.IsTest())
		assert.Equal(t, b, b.Test())
	})
}

func TestEquality(t *testing.T) {
	a, err := Parse("DEUTDEFF")
	require.NoError(t, err)
	b, err := Parse("deutdeffxxx")
	require.NoError(t, err)

	assert.True(t, a == b, "equality is defined over the canonical string")
}

// FuzzParse checks that parsing never panics and accepted inputs round-trip.
func FuzzParse(f *testing.F) {
	f.Add("DEUTDEFF")
	f.Add("DEUTDEFF500")
	f.Add("")
	f.Add("deut de ff")
	f.Add("DEUTXXFF")
	f.Add(string([]byte{0xff, 0xfe}))

	f.Fuzz(func(t *testing.T, input string) {
		b, err := Parse(input)
		if err != nil {
			return
		}
		roundTrip, err2 := Parse(b.String())
		if err2 != nil {
			t.Errorf("accepted input failed round-trip: %v", err2)
		}
		if roundTrip != b {
			t.Error("round-trip changed value")
		}
	})
}
