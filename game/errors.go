package game

import "errors"

var (
	ErrNoPieceAtSource    = errors.New("no piece at source square")
	ErrWrongSideToMove    = errors.New("wrong side to move")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrGameAlreadyEnded   = errors.New("game already ended")

	ErrBoardTooSmall  = errors.New("board should be at least 2x2")
	ErrOffBoard       = errors.New("position is not on the board")
	ErrOccupied       = errors.New("square already occupied")
	ErrThroneIsEscape = errors.New("throne cannot be an escape square")
)
