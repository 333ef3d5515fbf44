package apperror

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotReady    = errors.New("waiting for opponent")
	ErrNotInGame       = errors.New("you are not part of this game")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrInvalidPosition = errors.New("invalid position")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrAlreadyInRoom   = errors.New("you are already in a game")
	ErrNotBound        = errors.New("identity is not bound to a room")
)
