package game

import "errors"

// Session-level failures surfaced to clients as {"error": "..."} maps.
var (
	ErrInvalidPlayer       = errors.New("invalid player")
	ErrDuplicateName       = errors.New("duplicate player name")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrNotStarted          = errors.New("game not started")
	ErrInsufficientPlayers = errors.New("at least 2 players required")
	ErrUnknownAction       = errors.New("unknown action")
	ErrMissingField        = errors.New("missing required field")
	ErrNotYourTurn         = errors.New("not your turn")
)
