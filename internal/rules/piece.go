package rules

import (
	"fmt"
)

// PieceType is the closed set of piece variants. The values are the wire piece codes.
type PieceType int8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	Disc // Othello disc: placed, never moved
)

var pieceNames = map[PieceType]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
	Disc:   "othello",
}

func (t PieceType) String() string {
	if name, ok := pieceNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PieceType(%d)", int8(t))
}

// Code returns the wire code of the piece type.
func (t PieceType) Code() int {
	return int(t)
}

// Promotable checks if a pawn may be promoted to t.
func (t PieceType) Promotable() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// ParsePieceType parses a piece name such as "queen".
func ParsePieceType(name string) (PieceType, error) {
	for t, n := range pieceNames {
		if n == name {
			return t, nil
		}
	}
	return NoPiece, fmt.Errorf("invalid piece name: %q", name)
}

type direction struct {
	dr, dc int
}

var (
	orthogonals   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonals     = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDirections = append(append([]direction{}, orthogonals...), diagonals...)
	knightJumps   = []direction{
		{2, 1}, {-2, 1}, {2, -1}, {-2, -1},
		{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
	}
)

// Piece is a chess piece or an Othello disc standing on a Board.
type Piece struct {
	kind  PieceType
	color Color
	pos   Position
	moved bool

	// enPassant is only used by pawns. A value above zero means the pawn can be captured en passant.
	enPassant int
}

// NewPiece creates a piece that is not yet placed on a board.
func NewPiece(kind PieceType, color Color) *Piece {
	if _, ok := pieceNames[kind]; !ok {
		panic(fmt.Sprintf("invalid piece type: %d", kind))
	}
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color: %d", color))
	}
	return &Piece{kind: kind, color: color}
}

// Type returns the piece variant.
func (p *Piece) Type() PieceType {
	return p.kind
}

// Color returns the current owner. Othello flips can change it.
func (p *Piece) Color() Color {
	return p.color
}

// Position returns the square the piece stands on.
func (p *Piece) Position() Position {
	return p.pos
}

// Moved returns whether the piece has moved since it was placed.
func (p *Piece) Moved() bool {
	return p.moved
}

// EnPassantWindow returns the en passant counter of a pawn.
func (p *Piece) EnPassantWindow() int {
	return p.enPassant
}

// Name returns the human readable piece name.
func (p *Piece) Name() string {
	return p.kind.String()
}

// Token returns the wire format "<code>,<color>".
func (p *Piece) Token() string {
	return fmt.Sprintf("%d,%d", p.kind.Code(), p.color)
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s on %s", p.color, p.kind, p.pos)
}

// TicTacToeEligible checks if the piece counts for the tic-tac-toe win condition.
func (p *Piece) TicTacToeEligible() bool {
	switch p.kind {
	case Rook, Queen, King:
		return true
	case Pawn, Knight, Bishop, Disc:
		return false
	default:
		panic(fmt.Sprintf("unhandled piece type: %d", p.kind))
	}
}

func (p *Piece) isEnemy(other *Piece) bool {
	return other != nil && other.color != p.color
}

// PseudoMoves are moves that follow the movement rules of a piece but may leave
// the own king capturable.
type PseudoMoves []*Move

// PseudoLegalMoves generates all moves of p on b, ignoring the safety of the own king.
func (p *Piece) PseudoLegalMoves(b *Board) PseudoMoves {
	switch p.kind {
	case Pawn:
		return p.pawnMoves(b)
	case Knight:
		return p.stepMoves(b, knightJumps)
	case Bishop:
		return p.slidingMoves(b, diagonals)
	case Rook:
		return p.slidingMoves(b, orthogonals)
	case Queen:
		return p.slidingMoves(b, allDirections)
	case King:
		return append(p.stepMoves(b, allDirections), p.castlingMoves(b)...)
	case Disc:
		return nil
	default:
		panic(fmt.Sprintf("unhandled piece type: %d", p.kind))
	}
}

// canLandOn checks if to is on the board and either empty or held by an enemy.
func (p *Piece) canLandOn(b *Board, to Position) bool {
	if !to.InBounds() {
		return false
	}
	occupant := b.At(to)
	return occupant == nil || p.isEnemy(occupant)
}

func (p *Piece) stepMoves(b *Board, offsets []direction) PseudoMoves {
	moves := make(PseudoMoves, 0, len(offsets))
	for _, d := range offsets {
		to := p.pos.Add(d.dr, d.dc)
		if p.canLandOn(b, to) {
			moves = append(moves, newMove(b, p, to))
		}
	}
	return moves
}

func (p *Piece) slidingMoves(b *Board, dirs []direction) PseudoMoves {
	moves := make(PseudoMoves, 0, 14) //nolint:mnd
	for _, d := range dirs {
		for to := p.pos.Add(d.dr, d.dc); to.InBounds(); to = to.Add(d.dr, d.dc) {
			occupant := b.At(to)
			if occupant == nil {
				moves = append(moves, newMove(b, p, to))
				continue
			}
			if p.isEnemy(occupant) {
				moves = append(moves, newMove(b, p, to))
			}
			break
		}
	}
	return moves
}

// pawnHomeRow returns the row pawns of color start on.
func pawnHomeRow(color Color) int {
	if color == WHITE {
		return MaxRow - 2
	}
	return 1
}

// promotionRow returns the row on which pawns of color promote.
func promotionRow(color Color) int {
	if color == WHITE {
		return 0
	}
	return MaxRow - 1
}

func (p *Piece) pawnMoves(b *Board) PseudoMoves {
	moves := make(PseudoMoves, 0, 4) //nolint:mnd

	// WHITE moves towards row 0, BLACK towards row 7.
	dir := -int(p.color)

	maxDistance := 1
	if !p.moved && p.pos.Row == pawnHomeRow(p.color) {
		maxDistance = 2
	}

	for distance := 1; distance <= maxDistance; distance++ {
		to := p.pos.Add(distance*dir, 0)
		if !to.InBounds() || b.At(to) != nil {
			break
		}
		moves = append(moves, newMove(b, p, to))
	}

	for _, dc := range []int{-1, 1} {
		to := p.pos.Add(dir, dc)
		if !to.InBounds() {
			continue
		}

		if occupant := b.At(to); occupant != nil {
			if p.isEnemy(occupant) {
				moves = append(moves, newMove(b, p, to))
			}
			continue
		}

		victim := b.At(p.pos.Add(0, dc))
		if victim != nil && victim.kind == Pawn && p.isEnemy(victim) && victim.enPassant > 0 {
			moves = append(moves, newMove(b, p, to, victim))
		}
	}

	return moves
}

// castlingMoves returns the castling moves of an unmoved king. Whether the king
// is in check is not considered here.
func (p *Piece) castlingMoves(b *Board) PseudoMoves {
	if p.moved {
		return nil
	}

	var moves PseudoMoves
	for _, rookCol := range []int{MaxCol - 1, 0} {
		dir := 1
		if rookCol < p.pos.Col {
			dir = -1
		}

		// King and rook both land strictly between their origins.
		if (rookCol-p.pos.Col)*dir < 3 { //nolint:mnd
			continue
		}

		rook := b.Get(p.pos.Row, rookCol)
		if rook == nil || rook.kind != Rook || rook.color != p.color || rook.moved {
			continue
		}

		if !b.emptyBetween(p.pos, rook.pos) {
			continue
		}

		move := newMove(b, p, p.pos.Add(0, 2*dir))
		move.child = newMove(b, rook, p.pos.Add(0, dir))
		move.computeFlips(b)
		moves = append(moves, move)
	}
	return moves
}

func (p *Piece) onApplyMove(m *Move) {
	p.moved = true
	if p.kind == Pawn {
		distance := m.to.Row - m.from.Row
		if distance < 0 {
			distance = -distance
		}
		p.enPassant = distance
	}
}

func (p *Piece) onUndoMove(m *Move) {
	p.moved = m.prevMoved
	p.enPassant = m.prevEnPassant
}

// onTurnPassed ticks down the en passant window of pawns.
func (p *Piece) onTurnPassed(_ Color) {
	if p.kind == Pawn && p.enPassant > 0 {
		p.enPassant--
	}
}
