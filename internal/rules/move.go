package rules

import (
	"fmt"
	"sort"
)

// Move is a reversible state transition of a Board: a piece moving (or an
// Othello disc being placed), the pieces it captures, the pieces it flips and
// for castling the rook hop as a child move.
type Move struct {
	piece     *Piece
	from      Position
	to        Position
	captured  map[int]*Piece
	flips     []*Piece
	child     *Move
	placement bool

	// Undo log, filled by apply.
	applied       bool
	flipped       []*Piece
	prevMoved     bool
	prevEnPassant int
}

// newMove creates a move of piece to the square to. Pieces in extraCaptures are
// captured although they don't stand on to, as happens with en passant.
func newMove(b *Board, piece *Piece, to Position, extraCaptures ...*Piece) *Move {
	if !to.InBounds() {
		panic(fmt.Sprintf("move destination out of bounds: %s", to))
	}

	m := &Move{
		piece:    piece,
		from:     piece.pos,
		to:       to,
		captured: make(map[int]*Piece, 1+len(extraCaptures)),
	}

	if occupant := b.At(to); occupant != nil {
		if !piece.isEnemy(occupant) {
			panic(fmt.Sprintf("move of %s onto own piece on %s", piece, to))
		}
		m.captured[to.Index()] = occupant
	}

	for _, captured := range extraCaptures {
		m.captured[captured.pos.Index()] = captured
	}

	m.computeFlips(b)
	return m
}

// newPlacement creates a move that puts disc, which is not on the board yet, on the square at.
func newPlacement(b *Board, disc *Piece, at Position) *Move {
	if disc.kind != Disc {
		panic(fmt.Sprintf("only othello discs can be placed, got %s", disc.kind))
	}
	if b.At(at) != nil {
		panic(fmt.Sprintf("cannot place disc on occupied square %s", at))
	}

	disc.pos = at
	m := &Move{
		piece:     disc,
		from:      at,
		to:        at,
		captured:  map[int]*Piece{},
		placement: true,
	}
	m.computeFlips(b)
	return m
}

// occupantAfter returns the piece on sq as it would be after applying the
// whole move, including its child.
func (m *Move) occupantAfter(b *Board, sq Position) *Piece {
	moves := []*Move{m}
	if m.child != nil {
		moves = append(moves, m.child)
	}

	for _, mv := range moves {
		if mv.to == sq {
			return mv.piece
		}
	}

	for _, mv := range moves {
		if !mv.placement && mv.from == sq {
			return nil
		}
		if _, ok := mv.captured[sq.Index()]; ok {
			return nil
		}
	}

	return b.At(sq)
}

// computeFlips finds the Othello flip candidates of the move and its child: in
// every direction from the destination, a run of enemy pieces closed off by a
// friendly piece.
func (m *Move) computeFlips(b *Board) {
	m.flips = m.bracketedBy(b, m)
	if m.child != nil {
		m.child.flips = m.bracketedBy(b, m.child)
	}
}

func (m *Move) bracketedBy(b *Board, mv *Move) []*Piece {
	var flips []*Piece

	for _, d := range allDirections {
		var run []*Piece

		for sq := mv.to.Add(d.dr, d.dc); sq.InBounds(); sq = sq.Add(d.dr, d.dc) {
			occupant := m.occupantAfter(b, sq)
			if occupant == nil {
				break
			}
			if occupant.color == mv.piece.color {
				flips = append(flips, run...)
				break
			}
			run = append(run, occupant)
		}
	}

	return flips
}

// Piece returns the moving piece.
func (m *Move) Piece() *Piece {
	return m.piece
}

// From returns the square the piece moves from.
func (m *Move) From() Position {
	return m.from
}

// To returns the destination square.
func (m *Move) To() Position {
	return m.to
}

// Child returns the rook hop of a castling move, or nil.
func (m *Move) Child() *Move {
	return m.child
}

// IsCastling checks if the move is a castling move.
func (m *Move) IsCastling() bool {
	return m.child != nil
}

// IsPlacement checks if the move places an Othello disc.
func (m *Move) IsPlacement() bool {
	return m.placement
}

// Captured returns the captured pieces, ordered by square.
func (m *Move) Captured() []*Piece {
	indexes := make([]int, 0, len(m.captured))
	for index := range m.captured {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	pieces := make([]*Piece, len(indexes))
	for i, index := range indexes {
		pieces[i] = m.captured[index]
	}
	return pieces
}

// Flips returns the Othello flip candidates of the move, excluding its child.
func (m *Move) Flips() []*Piece {
	return append([]*Piece{}, m.flips...)
}

// CapturesKing checks if the move captures a king of the opponent of the moving piece.
func (m *Move) CapturesKing() bool {
	for _, captured := range m.captured {
		if captured.kind == King && captured.color != m.piece.color {
			return true
		}
	}
	return false
}

// Trail returns the indexes of the squares the move touches: origin, castling
// intermediate and destination.
func (m *Move) Trail() []int {
	if m.placement {
		return []int{m.to.Index()}
	}

	trail := []int{m.from.Index()}
	if m.child != nil {
		trail = append(trail, m.child.to.Index())
	}
	return append(trail, m.to.Index())
}

func (m *Move) String() string {
	if m.placement {
		return fmt.Sprintf("%s disc@%s", m.piece.color, m.to)
	}
	return fmt.Sprintf("%s %s %s-%s", m.piece.color, m.piece.kind, m.from, m.to)
}

// apply performs the move on b.
func (m *Move) apply(b *Board) {
	if m.applied {
		panic(fmt.Sprintf("move already applied: %s", m))
	}

	m.flipped = m.flipped[:0]
	for _, piece := range m.flips {
		if piece.color != m.piece.color {
			b.flip(piece)
			m.flipped = append(m.flipped, piece)
		}
	}

	for index, captured := range m.captured {
		if removed := b.DeleteAt(PositionFromIndex(index)); removed != captured {
			panic(fmt.Sprintf("captured piece %s is not on the board", captured))
		}
	}

	if m.child != nil {
		m.child.apply(b)
	}

	if !m.placement {
		b.DeleteAt(m.from)
	}
	b.SetAt(m.to, m.piece)

	m.prevMoved = m.piece.moved
	m.prevEnPassant = m.piece.enPassant
	m.piece.onApplyMove(m)
	m.applied = true
}

// undo reverts apply exactly, in reverse order.
func (m *Move) undo(b *Board) {
	if !m.applied {
		panic(fmt.Sprintf("move not applied: %s", m))
	}

	b.DeleteAt(m.to)
	if !m.placement {
		b.SetAt(m.from, m.piece)
	}

	if m.child != nil {
		m.child.undo(b)
	}

	for index, captured := range m.captured {
		b.SetAt(PositionFromIndex(index), captured)
	}

	for i := len(m.flipped) - 1; i >= 0; i-- {
		b.flip(m.flipped[i])
	}
	m.flipped = m.flipped[:0]

	m.piece.onUndoMove(m)
	m.applied = false
}
