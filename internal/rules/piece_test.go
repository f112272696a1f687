package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func destinations[M ~[]*Move](moves M) []Position {
	positions := make([]Position, len(moves))
	for i, move := range moves {
		positions[i] = move.To()
	}
	return positions
}

func countPseudoMoves(b *Board, color Color) int {
	count := 0
	for _, piece := range b.Pieces(color) {
		count += len(piece.PseudoLegalMoves(b))
	}
	return count
}

func TestPseudoLegalMoves_StartPosition(t *testing.T) {
	b := NewBoardStart()

	require.Equal(t, 20, countPseudoMoves(b, WHITE))
	require.Equal(t, 20, countPseudoMoves(b, BLACK))
}

func TestPseudoLegalMoves_EmptyBoard(t *testing.T) {
	tests := []struct {
		name  string
		kind  PieceType
		pos   Position
		count int
	}{
		{"rook center", Rook, NewPosition(3, 3), 14},
		{"bishop center", Bishop, NewPosition(3, 3), 13},
		{"bishop corner", Bishop, NewPosition(0, 0), 7},
		{"queen center", Queen, NewPosition(3, 3), 27},
		{"knight center", Knight, NewPosition(3, 3), 8},
		{"knight corner", Knight, NewPosition(0, 0), 2},
		{"king center", King, NewPosition(3, 3), 8},
		{"king corner", King, NewPosition(7, 7), 3},
		{"disc", Disc, NewPosition(3, 3), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoardEmpty()
			piece := NewPiece(tt.kind, WHITE)
			piece.moved = true
			b.SetAt(tt.pos, piece)

			require.Len(t, piece.PseudoLegalMoves(b), tt.count)
		})
	}
}

func TestPseudoLegalMoves_SlidingStops(t *testing.T) {
	b := ParseBoardMust(`
		........
		...p....
		........
		...R.P..
		........
		........
		........
		........`)

	rook := b.Get(3, 3)
	moves := rook.PseudoLegalMoves(b)

	require.ElementsMatch(t, []Position{
		{3, 2}, {3, 1}, {3, 0}, // left
		{3, 4},                 // right, blocked by own pawn
		{2, 3}, {1, 3},         // up, capturing the enemy pawn
		{4, 3}, {5, 3}, {6, 3}, {7, 3}, // down
	}, destinations(moves))

	for _, move := range moves {
		if move.To() == NewPosition(1, 3) {
			require.Equal(t, []*Piece{b.Get(1, 3)}, move.Captured())
		} else {
			require.Empty(t, move.Captured())
		}
	}
}

func TestPseudoLegalMoves_Pawn(t *testing.T) {
	tests := []struct {
		name  string
		board string
		pos   Position
		want  []Position
	}{
		{
			name: "white double step from home",
			board: `
				........
				........
				........
				........
				........
				........
				....P...
				........`,
			pos:  NewPosition(6, 4),
			want: []Position{{5, 4}, {4, 4}},
		},
		{
			name: "black double step from home",
			board: `
				........
				..p.....
				........
				........
				........
				........
				........
				........`,
			pos:  NewPosition(1, 2),
			want: []Position{{2, 2}, {3, 2}},
		},
		{
			name: "double step blocked halfway",
			board: `
				........
				........
				........
				........
				........
				....n...
				....P...
				........`,
			pos:  NewPosition(6, 4),
			want: []Position{},
		},
		{
			name: "double step blocked at target",
			board: `
				........
				........
				........
				........
				....n...
				........
				....P...
				........`,
			pos:  NewPosition(6, 4),
			want: []Position{{5, 4}},
		},
		{
			name: "diagonal captures",
			board: `
				........
				........
				........
				...b.N..
				....P...
				........
				........
				........`,
			pos:  NewPosition(4, 4),
			want: []Position{{3, 4}, {3, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBoardMust(tt.board)
			pawn := b.At(tt.pos)
			if tt.pos.Row != pawnHomeRow(pawn.Color()) {
				pawn.moved = true
			}

			require.ElementsMatch(t, tt.want, destinations(pawn.PseudoLegalMoves(b)))
		})
	}
}

func TestPseudoLegalMoves_EnPassant(t *testing.T) {
	board := `
		........
		........
		........
		...pP...
		........
		........
		........
		........`

	t.Run("open window", func(t *testing.T) {
		b := ParseBoardMust(board)
		victim := b.Get(3, 3)
		victim.enPassant = 1

		pawn := b.Get(3, 4)
		pawn.moved = true

		var enPassant *Move
		for _, move := range pawn.PseudoLegalMoves(b) {
			if move.To() == NewPosition(2, 3) {
				enPassant = move
			}
		}

		require.NotNil(t, enPassant)
		require.Equal(t, []*Piece{victim}, enPassant.Captured())
	})

	t.Run("closed window", func(t *testing.T) {
		b := ParseBoardMust(board)
		pawn := b.Get(3, 4)
		pawn.moved = true

		require.Equal(t, []Position{{2, 4}}, destinations(pawn.PseudoLegalMoves(b)))
	})

	t.Run("friendly pawn", func(t *testing.T) {
		b := ParseBoardMust(`
			........
			........
			........
			...PP...
			........
			........
			........
			........`)
		b.Get(3, 3).enPassant = 1
		pawn := b.Get(3, 4)
		pawn.moved = true

		require.Equal(t, []Position{{2, 4}}, destinations(pawn.PseudoLegalMoves(b)))
	})
}

func TestPseudoLegalMoves_Castling(t *testing.T) {
	tests := []struct {
		name     string
		board    string
		moved    []Position
		castling []Position
	}{
		{
			name: "both sides",
			board: `
				....k...
				........
				........
				........
				........
				........
				........
				R...K..R`,
			castling: []Position{{7, 6}, {7, 2}},
		},
		{
			name: "blocked queen side",
			board: `
				....k...
				........
				........
				........
				........
				........
				........
				R..QK..R`,
			castling: []Position{{7, 6}},
		},
		{
			name: "moved rook",
			board: `
				....k...
				........
				........
				........
				........
				........
				........
				R...K..R`,
			moved:    []Position{{7, 7}},
			castling: []Position{{7, 2}},
		},
		{
			name: "moved king",
			board: `
				....k...
				........
				........
				........
				........
				........
				........
				R...K..R`,
			moved:    []Position{{7, 4}},
			castling: []Position{},
		},
		{
			name: "enemy rook",
			board: `
				....k...
				........
				........
				........
				........
				........
				........
				r...K..R`,
			castling: []Position{{7, 6}},
		},
		{
			name: "black",
			board: `
				r...k..r
				........
				........
				........
				........
				........
				........
				....K...`,
			castling: []Position{{0, 6}, {0, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBoardMust(tt.board)
			for _, pos := range tt.moved {
				b.At(pos).moved = true
			}

			king := b.At(NewPosition(7, 4))
			if tt.name == "black" {
				king = b.At(NewPosition(0, 4))
			}

			castling := make([]Position, 0)
			for _, move := range king.PseudoLegalMoves(b) {
				if move.IsCastling() {
					castling = append(castling, move.To())

					// The rook hops over the king onto the square next to it.
					dir := (move.To().Col - king.Position().Col) / 2
					require.Equal(t, king.Position().Add(0, dir), move.Child().To())
					require.Equal(t, Rook, move.Child().Piece().Type())
				}
			}

			require.ElementsMatch(t, tt.castling, castling)
		})
	}
}

func TestPiece_TicTacToeEligible(t *testing.T) {
	eligible := map[PieceType]bool{
		Pawn:   false,
		Knight: false,
		Bishop: false,
		Rook:   true,
		Queen:  true,
		King:   true,
		Disc:   false,
	}

	for kind, want := range eligible {
		require.Equal(t, want, NewPiece(kind, BLACK).TicTacToeEligible(), kind.String())
	}
}

func TestPiece_Token(t *testing.T) {
	require.Equal(t, "1,1", NewPiece(Pawn, WHITE).Token())
	require.Equal(t, "6,-1", NewPiece(King, BLACK).Token())
	require.Equal(t, "7,-1", NewPiece(Disc, BLACK).Token())
}

func TestNewPiece_Invalid(t *testing.T) {
	require.Panics(t, func() { NewPiece(NoPiece, WHITE) })
	require.Panics(t, func() { NewPiece(Queen, 0) })
}

func TestParsePieceType(t *testing.T) {
	for _, kind := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King, Disc} {
		parsed, err := ParsePieceType(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}

	_, err := ParsePieceType("checker")
	require.Error(t, err)
}
