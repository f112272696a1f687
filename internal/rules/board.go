package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var backRank = [MaxCol]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board owns the 8x8 grid of pieces and an index of the pieces of each color.
// Both views always agree.
type Board struct {
	grid   [MaxRow][MaxCol]*Piece
	pieces map[Color]map[int]*Piece
}

// NewBoardEmpty creates a board without pieces.
func NewBoardEmpty() *Board {
	return &Board{
		pieces: map[Color]map[int]*Piece{
			WHITE: make(map[int]*Piece),
			BLACK: make(map[int]*Piece),
		},
	}
}

// NewBoardStart creates a board with the standard chess setup.
func NewBoardStart() *Board {
	b := NewBoardEmpty()
	b.placeStartPieces(WHITE, MaxRow-1)
	b.placeStartPieces(BLACK, 0)
	return b
}

func (b *Board) placeStartPieces(color Color, row int) {
	for col, kind := range backRank {
		b.Set(row, col, NewPiece(kind, color))
	}

	// Pawns stand one row closer to the center.
	pawnRow := row - int(color)
	for col := range MaxCol {
		b.Set(pawnRow, col, NewPiece(Pawn, color))
	}
}

func mustInBounds(p Position) {
	if !p.InBounds() {
		panic(fmt.Sprintf("position out of bounds: (%d,%d)", p.Row, p.Col))
	}
}

// Get returns the piece at row, col or nil.
func (b *Board) Get(row, col int) *Piece {
	return b.At(NewPosition(row, col))
}

// At returns the piece at p or nil.
func (b *Board) At(p Position) *Piece {
	mustInBounds(p)
	return b.grid[p.Row][p.Col]
}

// Set puts piece on the empty square row, col.
func (b *Board) Set(row, col int, piece *Piece) {
	b.SetAt(NewPosition(row, col), piece)
}

// SetAt puts piece on the empty square p. It panics if the square is occupied.
func (b *Board) SetAt(p Position, piece *Piece) {
	mustInBounds(p)
	if piece == nil {
		panic("cannot set nil piece")
	}
	if occupant := b.grid[p.Row][p.Col]; occupant != nil {
		panic(fmt.Sprintf("cannot set %s on occupied square %s: %s", piece.kind, p, occupant))
	}

	piece.pos = p
	b.grid[p.Row][p.Col] = piece
	b.pieces[piece.color][p.Index()] = piece
}

// Delete removes and returns the piece at row, col.
func (b *Board) Delete(row, col int) *Piece {
	return b.DeleteAt(NewPosition(row, col))
}

// DeleteAt removes and returns the piece at p. It panics if the square is empty.
func (b *Board) DeleteAt(p Position) *Piece {
	mustInBounds(p)
	piece := b.grid[p.Row][p.Col]
	if piece == nil {
		panic(fmt.Sprintf("cannot delete empty square %s", p))
	}
	if b.pieces[piece.color][p.Index()] != piece {
		panic(fmt.Sprintf("cannot delete %s: not indexed", piece))
	}

	b.grid[p.Row][p.Col] = nil
	delete(b.pieces[piece.color], p.Index())
	return piece
}

// flip changes the owner of piece and moves it to the index of its new color.
// This is the only place where the color of a piece changes.
func (b *Board) flip(piece *Piece) {
	index := piece.pos.Index()
	if b.pieces[piece.color][index] != piece {
		panic(fmt.Sprintf("cannot flip %s: not indexed", piece))
	}

	delete(b.pieces[piece.color], index)
	piece.color = piece.color.Opposite()
	b.pieces[piece.color][index] = piece
}

// Pieces returns the pieces of color ordered by square.
func (b *Board) Pieces(color Color) []*Piece {
	indexed := b.pieces[color]

	indexes := make([]int, 0, len(indexed))
	for index := range indexed {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	pieces := make([]*Piece, len(indexes))
	for i, index := range indexes {
		pieces[i] = indexed[index]
	}
	return pieces
}

// Count returns the number of pieces of kind owned by color.
func (b *Board) Count(color Color, kind PieceType) int {
	count := 0
	for _, piece := range b.pieces[color] {
		if piece.kind == kind {
			count++
		}
	}
	return count
}

// IsIsolated checks if p and all its neighbors are empty.
func (b *Board) IsIsolated(p Position) bool {
	if b.At(p) != nil {
		return false
	}
	for _, d := range allDirections {
		neighbor := p.Add(d.dr, d.dc)
		if neighbor.InBounds() && b.At(neighbor) != nil {
			return false
		}
	}
	return true
}

// emptyBetween checks if all squares strictly between two squares on one row are empty.
func (b *Board) emptyBetween(from, to Position) bool {
	lo, hi := min(from.Col, to.Col), max(from.Col, to.Col)
	for col := lo + 1; col < hi; col++ {
		if b.grid[from.Row][col] != nil {
			return false
		}
	}
	return true
}

// Check verifies that the grid and the color index agree. It is meant for tests and debugging.
func (b *Board) Check() error {
	var errs []error

	for row := range MaxRow {
		for col := range MaxCol {
			p := NewPosition(row, col)
			piece := b.grid[row][col]

			if piece == nil {
				if b.pieces[WHITE][p.Index()] != nil || b.pieces[BLACK][p.Index()] != nil {
					errs = append(errs, fmt.Errorf("empty square %s is indexed", p))
				}
				continue
			}

			if piece.pos != p {
				errs = append(errs, fmt.Errorf("%s stands on %s", piece, p))
			}
			if b.pieces[piece.color][p.Index()] != piece {
				errs = append(errs, fmt.Errorf("%s is not indexed", piece))
			}
		}
	}

	for color, indexed := range b.pieces {
		for index, piece := range indexed {
			p := PositionFromIndex(index)
			if piece.color != color {
				errs = append(errs, fmt.Errorf("%s is indexed as %s", piece, color))
			}
			if b.grid[p.Row][p.Col] != piece {
				errs = append(errs, fmt.Errorf("%s is indexed on %s but not on the grid", piece, p))
			}
		}
	}

	return errors.Join(errs...)
}

// BoardData is the wire format of a board: a piece token per occupied square.
type BoardData [MaxRow][MaxCol]*string

// Data returns the wire format of the board.
func (b *Board) Data() *BoardData {
	var data BoardData
	for row := range MaxRow {
		for col := range MaxCol {
			if piece := b.grid[row][col]; piece != nil {
				token := piece.Token()
				data[row][col] = &token
			}
		}
	}
	return &data
}

// ASCIIArtLines returns the ascii art lines for the board. Empty squares of the
// tic-tac-toe zone around center are marked.
func (b *Board) ASCIIArtLines(center Position) []string {
	lines := make([]string, MaxRow+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range MaxRow {
		var line strings.Builder
		fmt.Fprintf(&line, "%d ", MaxRow-row)

		for col := range MaxCol {
			piece := b.grid[row][col]
			inZone := abs(row-center.Row) <= 1 && abs(col-center.Col) <= 1

			switch {
			case piece != nil:
				line.WriteByte(pieceChar(piece))
			case inZone:
				line.WriteString("·")
			default:
				line.WriteByte(' ')
			}
			line.WriteByte(' ')
		}

		lines[row+1] = line.String() + "|"
	}
	lines[MaxRow+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print(center Position) {
	for _, line := range b.ASCIIArtLines(center) {
		fmt.Println(line)
	}
}

// String returns the text format read by ParseBoard.
func (b *Board) String() string {
	var s strings.Builder
	for row := range MaxRow {
		for col := range MaxCol {
			if piece := b.grid[row][col]; piece != nil {
				s.WriteByte(pieceChar(piece))
			} else {
				s.WriteByte('.')
			}
		}
		if row < MaxRow-1 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
