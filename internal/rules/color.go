package rules

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Color is the side owning a piece. The values double as the wire color codes.
type Color int8

const (
	BLACK Color = -1
	WHITE Color = 1
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	return -c
}

// Valid checks that c is WHITE or BLACK.
func (c Color) Valid() bool {
	return c == WHITE || c == BLACK
}

func (c Color) String() string {
	switch c {
	case WHITE:
		return "white"
	case BLACK:
		return "black"
	default:
		return fmt.Sprintf("Color(%d)", int8(c))
	}
}

// Title returns the capitalized color name, as used in result reasons.
func (c Color) Title() string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(c.String())
}

// ParseColor parses "white"/"black" or the wire codes "1"/"-1".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "1":
		return WHITE, nil
	case "black", "-1":
		return BLACK, nil
	default:
		return 0, fmt.Errorf("invalid color: %q", s)
	}
}

// Result is the outcome of a finished game: the winning color, or DRAW.
type Result int8

const DRAW Result = 0

// Win returns the result for a game won by c.
func Win(c Color) Result {
	return Result(c)
}

// Winner returns the winning color and false for a draw.
func (r Result) Winner() (Color, bool) {
	if r == DRAW {
		return 0, false
	}
	return Color(r), true
}

func (r Result) String() string {
	if c, ok := r.Winner(); ok {
		return c.String()
	}
	return "draw"
}
