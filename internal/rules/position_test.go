package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPosition_Index(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		index int
		field string
	}{
		{"top left", NewPosition(0, 0), 0, "a8"},
		{"top right", NewPosition(0, 7), 7, "h8"},
		{"white king", NewPosition(7, 4), 60, "e1"},
		{"bottom right", NewPosition(7, 7), 63, "h1"},
		{"white e pawn", NewPosition(6, 4), 52, "e2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.index, tt.pos.Index())
			require.Equal(t, tt.pos, PositionFromIndex(tt.index))
			require.Equal(t, tt.field, tt.pos.String())

			parsed, err := FieldToPosition(tt.field)
			require.NoError(t, err)
			require.Equal(t, tt.pos, parsed)
		})
	}
}

func TestPosition_InBounds(t *testing.T) {
	require.True(t, NewPosition(0, 0).InBounds())
	require.True(t, NewPosition(7, 7).InBounds())
	require.False(t, NewPosition(-1, 0).InBounds())
	require.False(t, NewPosition(0, 8).InBounds())
	require.False(t, NewPosition(8, 3).InBounds())
}

func TestPosition_Add(t *testing.T) {
	p := NewPosition(3, 3)
	require.Equal(t, NewPosition(5, 2), p.Add(2, -1))
	require.True(t, p.Add(1, 1).Equals(4, 4))

	// Out of range results are not clamped.
	require.Equal(t, NewPosition(-1, 3), p.Add(-4, 0))
}

func TestPosition_IndexOutOfBounds(t *testing.T) {
	require.Panics(t, func() { NewPosition(8, 0).Index() })
	require.Panics(t, func() { PositionFromIndex(64) })
	require.Panics(t, func() { PositionFromIndex(-1) })
}

func TestFieldToPosition_Invalid(t *testing.T) {
	for _, field := range []string{"", "e", "i1", "a9", "a0", "e22"} {
		_, err := FieldToPosition(field)
		require.Error(t, err, "field %q", field)
	}
}
