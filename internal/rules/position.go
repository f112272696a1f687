package rules

import "fmt"

const (
	MaxRow = 8
	MaxCol = 8
)

// Position is a square on the board. Row 0 is BLACK's back rank, row 7 is WHITE's.
type Position struct {
	Row int
	Col int
}

// NewPosition creates a position without bounds checking.
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// PositionFromIndex converts a linear index 0-63 back into a position.
func PositionFromIndex(index int) Position {
	if index < 0 || index >= MaxRow*MaxCol {
		panic(fmt.Sprintf("index out of range: %d", index))
	}
	return Position{Row: index / MaxCol, Col: index % MaxCol}
}

// Add returns the position dr rows and dc columns away. The result may be out of bounds.
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Equals checks if p is the square at row, col.
func (p Position) Equals(row, col int) bool {
	return p.Row == row && p.Col == col
}

// InBounds checks if p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < MaxRow && p.Col >= 0 && p.Col < MaxCol
}

// Index returns the linear index row*8+col. It panics for out of bounds positions.
func (p Position) Index() int {
	if !p.InBounds() {
		panic(fmt.Sprintf("position out of bounds: (%d,%d)", p.Row, p.Col))
	}
	return p.Row*MaxCol + p.Col
}

// String returns the algebraic field name, e.g. "e2".
func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, MaxRow-p.Row)
}

// FieldToPosition parses an algebraic field name such as "e2".
func FieldToPosition(field string) (Position, error) {
	if len(field) != 2 {
		return Position{}, fmt.Errorf("invalid field length: %s", field)
	}

	col := int(field[0] - 'a')
	row := MaxRow - int(field[1]-'0')

	p := Position{Row: row, Col: col}
	if !p.InBounds() {
		return Position{}, fmt.Errorf("invalid field: %s", field)
	}
	return p, nil
}
