package apperror

import "errors"

var (
	// ErrInvalidMove is returned for any rejected move. The state is left untouched.
	ErrInvalidMove = errors.New("invalid move")
	// ErrNoLegalMove is returned when the bot is asked to move on a full board.
	ErrNoLegalMove = errors.New("no legal move")

	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidMark     = errors.New("invalid player mark")
	ErrInvalidBoard    = errors.New("invalid board")
	ErrInvalidGameType = errors.New("invalid game type")
	ErrGameNotFound    = errors.New("game not found")

	// ErrStaleGame is returned when the session changed between load and save.
	ErrStaleGame = errors.New("game was changed by another request")
)
