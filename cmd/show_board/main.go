package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/lk16/cco/internal/rules"
)

func main() {
	boardString := flag.String("board", "", "the board to show, 8 lines of 8 characters")
	fen := flag.String("fen", "", "the FEN of the board to show")
	centerField := flag.String("center", "d5", "the center of the tic-tac-toe zone")
	flag.Parse()

	center, err := rules.FieldToPosition(*centerField)
	if err == nil {
		err = rules.CheckTTTCenter(center)
	}
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var board *rules.Board
	switch {
	case *boardString != "" && *fen != "":
		err = errors.New("use either -board or -fen")
	case *fen != "":
		var game *rules.Game
		game, err = rules.NewGameFromFEN(*fen, rules.WithTTTCenter(center))
		if err == nil {
			board = game.Board()
		}
	case *boardString != "":
		board, err = rules.ParseBoard(*boardString)
	default:
		board = rules.NewBoardStart()
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	board.Print(center)
}
