package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
)

const (
	LocalType   = "local"
	WithBotType = "bot"
)

// Game is one session: the board, whose turn it is and the outcome so far.
type Game struct {
	ID      string `json:"id"`
	Board   Board  `json:"board"`
	Turn    Mark   `json:"player_turn"`
	Status  Status `json:"status"`
	Winner  Mark   `json:"winner"`
	Type    string `json:"type,omitempty"`
	BotMark Mark   `json:"bot_mark,omitempty"`

	// Version counts saves. The store rejects a save made from an older copy.
	Version int64 `json:"version"`
}

// Result is the outcome of a move. WinningLine is only set for a won game.
type Result struct {
	Status      Status `json:"status"`
	Winner      Mark   `json:"winner,omitempty"`
	WinningLine *Line  `json:"winning_line,omitempty"`
}

func NewGame(id, gameType string, botMark Mark) *Game {
	game := &Game{
		ID:   id,
		Type: gameType,
	}

	if gameType == WithBotType {
		game.BotMark = botMark
	}

	game.Reset()

	return game
}

// Reset puts the board back to its initial state. ID, Type and BotMark are kept.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Status = StatusInProgress
	that.Winner = EmptyCell
}

// ApplyMove validates and plays a move. A rejected move leaves the game unchanged.
func (that *Game) ApplyMove(player Mark, cell int) (Result, error) {
	if err := that.validateMove(player, cell); err != nil {
		return that.Result(), fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	that.Board[cell] = player
	that.updateGameState()

	return that.Result(), nil
}

func (that *Game) validateMove(player Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != player {
		return fmt.Errorf("%w: %q plays, %q asked", apperror.ErrNotYourTurn, that.Turn, player)
	}

	if !IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameState runs after every placement. A win is checked before a draw.
func (that *Game) updateGameState() {
	if _, winner, ok := that.Board.WinningLine(); ok {
		that.Winner = winner
		that.Status = StatusWon
		return
	}

	if that.Board.IsFull() {
		that.Status = StatusDrawn
		return
	}

	that.Turn = that.Turn.Opponent()
}

// Result derives the outcome from the board. The winning line is never stored.
func (that *Game) Result() Result {
	result := Result{
		Status: that.Status,
		Winner: that.Winner,
	}

	if that.Status == StatusWon {
		if line, _, ok := that.Board.WinningLine(); ok {
			result.WinningLine = &line
		}
	}

	return result
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType && that.BotMark.IsPlayer()
}

// IsBotTurn reports whether the bot should move next.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsInProgress() && that.Turn == that.BotMark
}

// Message is the status line shown under the board.
func (that *Game) Message() string {
	switch that.Status {
	case StatusWon:
		return fmt.Sprintf("Player %s wins!", that.Winner)
	case StatusDrawn:
		return "Draw!"
	default:
		return fmt.Sprintf("Player %s's turn", that.Turn)
	}
}
