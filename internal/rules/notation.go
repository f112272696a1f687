package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidBoard = errors.New("invalid board")

var charPieceTypes = map[byte]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
	'o': Disc,
}

// pieceChar returns the text board character of piece: upper case for WHITE.
func pieceChar(piece *Piece) byte {
	for char, kind := range charPieceTypes {
		if kind == piece.kind {
			if piece.color == WHITE {
				return byte(unicode.ToUpper(rune(char)))
			}
			return char
		}
	}
	panic(fmt.Sprintf("unhandled piece type: %d", piece.kind))
}

// ParseBoard reads a board from 8 lines of 8 characters. Upper case letters
// (KQRBNP, O for Othello discs) are WHITE, lower case BLACK, '.' is empty.
// All pieces are considered unmoved.
func ParseBoard(s string) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != MaxRow {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, MaxRow, len(lines))
	}

	b := NewBoardEmpty()
	for row, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != MaxCol {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, row, len(line))
		}

		for col := range MaxCol {
			char := line[col]
			if char == '.' {
				continue
			}

			kind, ok := charPieceTypes[byte(unicode.ToLower(rune(char)))]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at row %d col %d", ErrInvalidBoard, char, row, col)
			}

			color := BLACK
			if unicode.IsUpper(rune(char)) {
				color = WHITE
			}
			b.Set(row, col, NewPiece(kind, color))
		}
	}

	return b, nil
}

// ParseBoardMust works like ParseBoard but panics on invalid input.
func ParseBoardMust(s string) *Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBoardData reads a board from its wire format. Tokens are "code,color",
// for example "6,-1" for the black king.
func ParseBoardData(data *BoardData) (*Board, error) {
	b := NewBoardEmpty()
	for row := range MaxRow {
		for col := range MaxCol {
			token := data[row][col]
			if token == nil {
				continue
			}

			piece, err := parseToken(*token)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %w", ErrInvalidBoard, row, col, err)
			}
			b.Set(row, col, piece)
		}
	}
	return b, nil
}

func parseToken(token string) (*Piece, error) {
	code, colorCode, ok := strings.Cut(token, ",")
	if !ok {
		return nil, fmt.Errorf("malformed token %q", token)
	}

	kindValue, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("malformed piece code %q", code)
	}
	kind := PieceType(kindValue)
	if _, ok := pieceNames[kind]; !ok {
		return nil, fmt.Errorf("unknown piece code %d", kindValue)
	}

	color, err := ParseColor(colorCode)
	if err != nil {
		return nil, err
	}

	return NewPiece(kind, color), nil
}
