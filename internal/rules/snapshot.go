package rules

import (
	"fmt"
	"slices"
)

// Snapshot is the data sent to players. Fields are left empty when they carry
// no information for the recipients.
type Snapshot struct {
	Board        *BoardData `json:"board,omitempty"`
	TTTCenter    int        `json:"tttCenter"`
	Selected     *int       `json:"selected,omitempty"`
	LegalMoves   []int      `json:"legalMoves,omitempty"`
	LastMove     []int      `json:"lastMove,omitempty"`
	Promotion    *int       `json:"promotion,omitempty"`
	Result       *Result    `json:"result,omitempty"`
	ResultReason string     `json:"resultReason,omitempty"`
	Turn         Color      `json:"turn"`
}

// Data returns the snapshot for recipients playing colors. The board is only
// included when the last accepted input changed it. The selection and legal
// moves are only visible to the side to move, the pending promotion only to
// its owner.
func (g *Game) Data(colors ...Color) Snapshot {
	return g.data(g.boardUpdated, colors)
}

// FullData works like Data but always includes the board.
func (g *Game) FullData(colors ...Color) Snapshot {
	return g.data(true, colors)
}

func (g *Game) data(withBoard bool, colors []Color) Snapshot {
	for _, color := range colors {
		if !color.Valid() {
			panic(fmt.Sprintf("invalid color: %d", color))
		}
	}

	snapshot := Snapshot{
		TTTCenter: g.tttCenter.Index(),
		Turn:      g.turn,
	}

	if withBoard {
		snapshot.Board = g.board.Data()
	}

	if g.selected != nil && slices.Contains(colors, g.selected.color) {
		index := g.selected.pos.Index()
		snapshot.Selected = &index
	}

	if g.legalMoves != nil && slices.Contains(colors, g.turn) {
		snapshot.LegalMoves = make([]int, len(g.legalMoves))
		for i, move := range g.legalMoves {
			snapshot.LegalMoves[i] = move.to.Index()
		}
	}

	if g.lastMove != nil {
		snapshot.LastMove = g.lastMove.Trail()
	}

	if g.promotion != nil && slices.Contains(colors, g.promotion.color) {
		index := g.promotion.pos.Index()
		snapshot.Promotion = &index
	}

	if g.finished {
		result := g.result
		snapshot.Result = &result
		snapshot.ResultReason = g.resultReason
	}

	return snapshot
}
