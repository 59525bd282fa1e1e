package shell

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/ferryman/river"
)

func TestParseCount(t *testing.T) {
	is := is.New(t)

	n, err := parseCount("4", "missionary")
	is.NoErr(err)
	is.Equal(n, 4)

	_, err = parseCount("x", "missionary")
	is.True(err != nil)

	_, err = parseCount("-1", "cannibal")
	is.True(err != nil)
}

func TestParseSide(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		tok     string
		expSide river.Side
		expErr  bool
	}
	cases := []testdata{
		{"l", river.Left, false},
		{"L", river.Left, false},
		{"left", river.Left, false},
		{"r", river.Right, false},
		{"RIGHT", river.Right, false},
		{"rq", river.Left, true},
		{"", river.Left, true},
	}
	for _, tc := range cases {
		side, err := parseSide(tc.tok)
		if tc.expErr {
			is.True(err != nil)
			continue
		}
		is.NoErr(err)
		is.Equal(side, tc.expSide)
	}
}

func TestParseStateArgs(t *testing.T) {
	is := is.New(t)

	s, err := parseStateArgs([]string{"2", "2", "1", "1", "r"})
	is.NoErr(err)
	is.Equal(s, river.State{
		LeftMissionaries: 2, LeftCannibals: 2,
		RightMissionaries: 1, RightCannibals: 1,
		Boat: river.Right,
	})

	_, err = parseStateArgs([]string{"2", "2", "1", "1"})
	is.True(err != nil)

	_, err = parseStateArgs([]string{"2", "-2", "1", "1", "l"})
	is.True(err != nil)

	_, err = parseStateArgs([]string{"2", "2", "1", "1", "up"})
	is.True(err != nil)
}
