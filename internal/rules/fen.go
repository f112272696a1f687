package rules

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

const fenFieldCount = 6

// NewGameFromFEN creates a game from the chess position in fen. Castling and en
// passant fields are ignored: pieces on their starting squares are unmoved.
func NewGameFromFEN(fen string, opts ...Option) (game *Game, err error) {
	if fields := strings.Fields(fen); len(fields) != fenFieldCount {
		return nil, fmt.Errorf("%w: fen must have %d fields, got %d", ErrInvalidBoard, fenFieldCount, len(fields))
	}

	// dragontoothmg panics on malformed piece placement.
	defer func() {
		if r := recover(); r != nil {
			game = nil
			err = fmt.Errorf("%w: %v", ErrInvalidBoard, r)
		}
	}()

	parsed := dragontoothmg.ParseFen(fen)

	board := NewBoardEmpty()
	placeBitboards(board, parsed.White, WHITE)
	placeBitboards(board, parsed.Black, BLACK)

	turn := BLACK
	if parsed.Wtomove {
		turn = WHITE
	}

	opts = append([]Option{WithBoard(board), WithTurn(turn)}, opts...)
	return NewGame(opts...), nil
}

func placeBitboards(board *Board, bb dragontoothmg.Bitboards, color Color) {
	sets := []struct {
		bits uint64
		kind PieceType
	}{
		{bb.Pawns, Pawn},
		{bb.Knights, Knight},
		{bb.Bishops, Bishop},
		{bb.Rooks, Rook},
		{bb.Queens, Queen},
		{bb.Kings, King},
	}

	for _, set := range sets {
		for x := set.bits; x != 0; x &= x - 1 {
			// Square 0 is a1, which is row 7 col 0 here.
			square := bits.TrailingZeros64(x)
			board.Set(MaxRow-1-square/MaxCol, square%MaxCol, NewPiece(set.kind, color))
		}
	}
}
