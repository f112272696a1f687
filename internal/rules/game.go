package rules

import (
	"fmt"
	"log/slog"
	"math/rand"
)

const (
	reasonCheckmate = "Checkmate"
	reasonStalemate = "Stalemate"
)

// LegalMoves are moves that were verified not to leave the own king capturable.
// Only Game.filterLegal produces them.
type LegalMoves []*Move

// Game is the state machine of one match: turn, selection, pending promotion and result.
// A Game is not safe for concurrent use.
type Game struct {
	board *Board
	turn  Color

	// selected is the piece whose legal moves are shown, or nil.
	selected   *Piece
	legalMoves LegalMoves

	lastMove *Move

	// promotion is the pawn waiting for a promotion choice, or nil.
	promotion *Piece

	finished     bool
	result       Result
	resultReason string

	tttCenter Position

	// boardUpdated tells whether the last accepted input changed the board.
	boardUpdated bool
}

type gameOptions struct {
	rand      *rand.Rand
	board     *Board
	turn      Color
	tttCenter *Position
}

// Option configures a new Game.
type Option func(*gameOptions)

// WithRand sets the random source used to pick the tic-tac-toe center.
func WithRand(r *rand.Rand) Option {
	return func(o *gameOptions) {
		o.rand = r
	}
}

// WithBoard starts the game from b instead of the standard setup.
func WithBoard(b *Board) Option {
	return func(o *gameOptions) {
		o.board = b
	}
}

// WithTurn sets the side to move first.
func WithTurn(turn Color) Option {
	return func(o *gameOptions) {
		o.turn = turn
	}
}

// WithTTTCenter fixes the center of the tic-tac-toe zone.
func WithTTTCenter(center Position) Option {
	return func(o *gameOptions) {
		o.tttCenter = &center
	}
}

// NewGame creates a new game. Without options it uses the standard chess setup,
// WHITE to move and a random tic-tac-toe center.
func NewGame(opts ...Option) *Game {
	options := &gameOptions{turn: WHITE}
	for _, opt := range opts {
		opt(options)
	}

	if options.board == nil {
		options.board = NewBoardStart()
	}
	if !options.turn.Valid() {
		panic(fmt.Sprintf("invalid turn: %d", options.turn))
	}

	var center Position
	if options.tttCenter != nil {
		center = *options.tttCenter
	} else {
		center = randomTTTCenter(options.rand)
	}

	if err := CheckTTTCenter(center); err != nil {
		panic(err.Error())
	}

	return &Game{
		board:        options.board,
		turn:         options.turn,
		tttCenter:    center,
		boardUpdated: true,
	}
}

// CheckTTTCenter checks that the 3x3 zone around center lies on the board.
func CheckTTTCenter(center Position) error {
	if !center.Add(-1, -1).InBounds() || !center.Add(1, 1).InBounds() {
		return fmt.Errorf("tic-tac-toe center too close to the edge: %s", center)
	}
	return nil
}

// randomTTTCenter picks a center with row in [3,4] and col in [1,6].
func randomTTTCenter(r *rand.Rand) Position {
	intn := rand.Intn
	if r != nil {
		intn = r.Intn
	}
	return NewPosition(3+intn(2), 1+intn(6)) //nolint:mnd
}

// Board returns the board. Callers must not modify it.
func (g *Game) Board() *Board {
	return g.board
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// TTTCenter returns the center of the tic-tac-toe zone.
func (g *Game) TTTCenter() Position {
	return g.tttCenter
}

// Selected returns the selected piece or nil.
func (g *Game) Selected() *Piece {
	return g.selected
}

// LegalMoves returns the legal moves of the selected piece.
func (g *Game) LegalMoves() LegalMoves {
	return g.legalMoves
}

// LastMove returns the last committed move or nil.
func (g *Game) LastMove() *Move {
	return g.lastMove
}

// Promotion returns the pawn waiting for a promotion choice or nil.
func (g *Game) Promotion() *Piece {
	return g.promotion
}

// Result returns the result and its reason. The last value is false while the game is running.
func (g *Game) Result() (Result, string, bool) {
	return g.result, g.resultReason, g.finished
}

// Finished checks if the game has ended.
func (g *Game) Finished() bool {
	return g.finished
}

// HandleInput processes a click on row, col by the player of color. choice is
// the promotion choice or NoPiece. It returns whether the game state changed.
// Inputs that are not allowed are ignored.
func (g *Game) HandleInput(row, col int, color Color, choice PieceType) bool {
	if !color.Valid() {
		panic(fmt.Sprintf("invalid color: %d", color))
	}
	pos := NewPosition(row, col)
	mustInBounds(pos)

	if g.finished {
		slog.Debug("ignoring input, game is finished", "pos", pos, "color", color)
		return false
	}

	if color != g.turn {
		slog.Debug("ignoring input, not your turn", "pos", pos, "color", color)
		return false
	}

	if g.promotion != nil {
		return g.handlePromotion(pos, choice)
	}

	if g.selected != nil {
		if g.handleChessMove(pos) {
			return true
		}

		piece := g.board.At(pos)
		if piece == nil {
			if g.handleOthelloMove(pos) {
				return true
			}
			g.clearSelection()
			g.boardUpdated = false
			return true
		}

		if piece.color != g.turn {
			return false
		}

		g.selectPiece(piece)
		return true
	}

	piece := g.board.At(pos)
	if piece == nil {
		return g.handleOthelloMove(pos)
	}

	if piece.color != g.turn {
		return false
	}

	g.selectPiece(piece)
	return true
}

func (g *Game) selectPiece(piece *Piece) {
	g.selected = piece
	g.legalMoves = g.filterLegal(g.turn, piece.PseudoLegalMoves(g.board))
	g.boardUpdated = false
}

func (g *Game) clearSelection() {
	g.selected = nil
	g.legalMoves = nil
}

// handleChessMove commits the legal move of the selected piece to pos, if there is one.
func (g *Game) handleChessMove(pos Position) bool {
	var move *Move
	for _, m := range g.legalMoves {
		if m.to == pos {
			move = m
			break
		}
	}
	if move == nil {
		return false
	}

	move.apply(g.board)
	g.lastMove = move
	g.clearSelection()
	g.boardUpdated = true

	g.notifyTurnPassed(g.turn)

	g.promotion = g.checkForPromotion(g.turn)
	if g.promotion == nil {
		g.turn = g.turn.Opposite()
	}

	g.evaluateResult()
	return true
}

// handleOthelloMove places an Othello disc on pos. This is only allowed on
// isolated squares and when it does not leave the own king capturable.
func (g *Game) handleOthelloMove(pos Position) bool {
	if !g.board.IsIsolated(pos) {
		return false
	}

	move := newPlacement(g.board, NewPiece(Disc, g.turn), pos)
	move.apply(g.board)

	if g.CheckForCheck(g.turn) {
		move.undo(g.board)
		slog.Debug("rejecting othello placement, king would be capturable", "pos", pos)
		return false
	}

	g.lastMove = move
	g.clearSelection()
	g.boardUpdated = true

	g.notifyTurnPassed(g.turn)
	g.turn = g.turn.Opposite()

	g.evaluateResult()
	return true
}

// handlePromotion replaces the pending pawn by a piece of type choice.
func (g *Game) handlePromotion(pos Position, choice PieceType) bool {
	if !choice.Promotable() || pos != g.promotion.pos {
		return false
	}

	pawn := g.board.DeleteAt(pos)
	promoted := NewPiece(choice, pawn.color)
	promoted.moved = true
	g.board.SetAt(pos, promoted)

	g.promotion = nil
	g.boardUpdated = true
	g.turn = g.turn.Opposite()

	g.evaluateResult()
	return true
}

func (g *Game) notifyTurnPassed(color Color) {
	for _, piece := range g.board.Pieces(color) {
		piece.onTurnPassed(color)
	}
}

// checkForPromotion returns a pawn of color on its promotion row, or nil.
func (g *Game) checkForPromotion(color Color) *Piece {
	for _, piece := range g.board.Pieces(color) {
		if piece.kind == Pawn && piece.pos.Row == promotionRow(color) {
			return piece
		}
	}
	return nil
}

// filterLegal removes the moves that leave the king of color capturable.
// Castling is removed entirely while color is in check.
func (g *Game) filterLegal(color Color, moves PseudoMoves) LegalMoves {
	inCheck := g.CheckForCheck(color)

	legal := make(LegalMoves, 0, len(moves))
	for _, move := range moves {
		if inCheck && move.IsCastling() {
			continue
		}

		move.apply(g.board)
		exposed := g.CheckForCheck(color)
		move.undo(g.board)

		if !exposed {
			legal = append(legal, move)
		}
	}
	return legal
}

// CheckForCheck checks if any pseudo-legal move of the opponent of color captures a king of color.
// A side owning two kings is never in check.
func (g *Game) CheckForCheck(color Color) bool {
	if g.board.Count(color, King) > 1 {
		return false
	}

	for _, piece := range g.board.Pieces(color.Opposite()) {
		for _, move := range piece.PseudoLegalMoves(g.board) {
			if move.CapturesKing() {
				return true
			}
		}
	}
	return false
}

// hasLegalMoves checks if any piece of color has a legal move.
func (g *Game) hasLegalMoves(color Color) bool {
	for _, piece := range g.board.Pieces(color) {
		if len(g.filterLegal(color, piece.PseudoLegalMoves(g.board))) > 0 {
			return true
		}
	}
	return false
}

type verdict func() (Result, string, bool)

// evaluateResult runs the win conditions. Tic-tac-toe takes precedence over
// Othello, which takes precedence over chess.
func (g *Game) evaluateResult() {
	if g.finished {
		return
	}

	verdicts := []verdict{g.ticTacToeResult, g.othelloResult}

	// The position is incomplete while a promotion is pending.
	if g.promotion == nil {
		verdicts = append(verdicts, g.chessResult)
	}

	for _, v := range verdicts {
		if result, reason, ok := v(); ok {
			g.finished = true
			g.result = result
			g.resultReason = reason
			g.clearSelection()
			return
		}
	}
}

// chessResult detects checkmate and stalemate of the side to move.
func (g *Game) chessResult() (Result, string, bool) {
	if g.hasLegalMoves(g.turn) {
		return DRAW, "", false
	}

	if g.CheckForCheck(g.turn) {
		return Win(g.turn.Opposite()), reasonCheckmate, true
	}
	return DRAW, reasonStalemate, true
}

// othelloResult detects a king that was flipped to the other side.
func (g *Game) othelloResult() (Result, string, bool) {
	switch g.board.Count(WHITE, King) {
	case 0:
		return Win(BLACK), fmt.Sprintf("%s's king got flipped by Othello rules", WHITE.Title()), true
	case 2: //nolint:mnd
		return Win(WHITE), fmt.Sprintf("%s's king got flipped by Othello rules", BLACK.Title()), true
	default:
		return DRAW, "", false
	}
}

// ticTacToeResult detects three eligible pieces of one color on a line of the
// 3x3 zone around the tic-tac-toe center.
func (g *Game) ticTacToeResult() (Result, string, bool) {
	for _, line := range tttLines(g.tttCenter) {
		first := g.board.At(line[0])
		if first == nil || !first.TicTacToeEligible() {
			continue
		}

		complete := true
		for _, pos := range line[1:] {
			piece := g.board.At(pos)
			if piece == nil || !piece.TicTacToeEligible() || piece.color != first.color {
				complete = false
				break
			}
		}

		if complete {
			return Win(first.color), first.color.Title() + " wins by Tic-Tac-Toe", true
		}
	}
	return DRAW, "", false
}

// tttLines returns the 3 rows, 3 columns and 2 diagonals of the zone around center.
func tttLines(center Position) [][3]Position {
	r, c := center.Row, center.Col
	lines := make([][3]Position, 0, 8) //nolint:mnd

	for d := -1; d <= 1; d++ {
		lines = append(lines,
			[3]Position{{r + d, c - 1}, {r + d, c}, {r + d, c + 1}},
			[3]Position{{r - 1, c + d}, {r, c + d}, {r + 1, c + d}},
		)
	}

	return append(lines,
		[3]Position{{r - 1, c - 1}, {r, c}, {r + 1, c + 1}},
		[3]Position{{r - 1, c + 1}, {r, c}, {r + 1, c - 1}},
	)
}
