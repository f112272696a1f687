package lobby

import "errors"

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchFull       = errors.New("match is full")
	ErrNotInMatch      = errors.New("player is not in a match")
	ErrAlreadyInMatch  = errors.New("player is already in a match")
	ErrWaitingForGuest = errors.New("match has no guest yet")
	ErrLobbyFull       = errors.New("lobby is full")
	ErrInvalidSquare   = errors.New("square is not on the board")
)
