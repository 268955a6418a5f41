package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Result, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays the bot's move through the same path as a human move.
func (that *botService) MakeTurn(game *entity.Game) (entity.Result, error) {
	if !game.IsBotTurn() {
		return game.Result(), fmt.Errorf("%w: bot %q, turn %q", apperror.ErrNotYourTurn, game.BotMark, game.Turn)
	}

	cell, err := ChooseMove(game.Board, game.BotMark, game.BotMark.Opponent())
	if err != nil {
		return game.Result(), fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	result, err := game.ApplyMove(game.BotMark, cell)
	if err != nil {
		return result, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return result, nil
}

// ChooseMove picks a cell for self. Rules are tried in order and the lowest
// index wins inside a rule: win now, block, center, corner, side.
// This is not a search and can be beaten by a corner then opposite corner opening.
func ChooseMove(board entity.Board, self, opponent entity.Mark) (int, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return 0, apperror.ErrNoLegalMove
	}

	for _, cell := range empty {
		if board.Completes(cell, self) {
			return cell, nil
		}
	}

	for _, cell := range empty {
		if board.Completes(cell, opponent) {
			return cell, nil
		}
	}

	if board[entity.CenterCell] == entity.EmptyCell {
		return entity.CenterCell, nil
	}

	for _, cell := range entity.CornerCells {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	for _, cell := range entity.SideCells {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	return 0, apperror.ErrNoLegalMove
}
