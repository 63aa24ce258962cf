package game

import "errors"

var (
	ErrSeatOccupied     = errors.New("seat is already occupied")
	ErrInvalidSeat      = errors.New("invalid seat number")
	ErrNoSeatedPlayer   = errors.New("no seated player")
	ErrPlayerNotFound   = errors.New("player not seated at table")
	ErrOutOfTurn        = errors.New("not player's turn")
	ErrIllegalAction    = errors.New("illegal action")
	ErrNoHandInProgress = errors.New("no hand in progress")
	ErrHandInProgress   = errors.New("hand already in progress")
)
