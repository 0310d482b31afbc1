package cards

import (
	"testing"

	"github.com/matryer/is"
)

func TestCatalogSize(t *testing.T) {
	is := is.New(t)
	all := All()
	is.Equal(len(all), DeckSize)

	seen := map[Identity]bool{}
	for i, id := range all {
		is.True(id.Valid())
		is.Equal(id.Index(), i)
		is.True(!seen[id])
		seen[id] = true
	}
}

func TestSuitColors(t *testing.T) {
	is := is.New(t)
	is.Equal(Spades.Color(), Black)
	is.Equal(Clubs.Color(), Black)
	is.Equal(Hearts.Color(), Red)
	is.Equal(Diamonds.Color(), Red)
	is.Equal(Diamonds.Index(), 3)
	is.Equal(string(Hearts.Letter()), "H")
}

var codeTests = []struct {
	code string
	id   Identity
}{
	{"SA", New(Spades, Ace)},
	{"H2", New(Hearts, Two)},
	{"C10", New(Clubs, Ten)},
	{"DJ", New(Diamonds, Jack)},
	{"SQ", New(Spades, Queen)},
	{"HK", New(Hearts, King)},
}

func TestCodes(t *testing.T) {
	for _, tc := range codeTests {
		if tc.id.String() != tc.code {
			t.Errorf("for %v expected code %v, got %v", tc.id.LongName(), tc.code, tc.id.String())
		}
		parsed, err := Parse(tc.code)
		if err != nil {
			t.Errorf("parse %v: %v", tc.code, err)
			continue
		}
		if parsed != tc.id {
			t.Errorf("parse %v: expected %v, got %v", tc.code, tc.id, parsed)
		}
	}
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, bad := range []string{"", "S", "X5", "S1", "S11", "H0", "DZ"} {
		_, err := Parse(bad)
		is.True(err != nil)
	}
}

func TestFromIndices(t *testing.T) {
	is := is.New(t)
	id, err := FromIndices(3, 9)
	is.NoErr(err)
	is.Equal(id, New(Diamonds, Ten))

	_, err = FromIndices(4, 0)
	is.True(err != nil)
	_, err = FromIndices(0, 13)
	is.True(err != nil)
}

func TestTargets(t *testing.T) {
	is := is.New(t)
	is.True(MustParse("S2").IsWinTarget(MustParse("SA")))
	is.True(!MustParse("S2").IsWinTarget(MustParse("CA")))
	is.True(!MustParse("SA").IsWinTarget(MustParse("SK")))
	is.True(MustParse("SK").IsWinTarget(MustParse("SQ")))

	is.True(MustParse("S5").IsCenterTarget(MustParse("H6")))
	is.True(MustParse("S5").IsCenterTarget(MustParse("D6")))
	is.True(!MustParse("S5").IsCenterTarget(MustParse("C6")))
	is.True(!MustParse("S5").IsCenterTarget(MustParse("H4")))
	is.True(!MustParse("HK").IsCenterTarget(MustParse("SK")))
}
