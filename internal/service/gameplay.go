package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, gameType string, botMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, player entity.Mark, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	CloseGame(ctx context.Context, gameID string) error

	SuggestMove(board entity.Board, self entity.Mark) (int, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	// botDelay is the pause before the bot replies. It never changes the outcome.
	botDelay time.Duration
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService, botDelay time.Duration) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
		botDelay:    botDelay,
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, gameType string, botMark entity.Mark) (*entity.Game, error) {
	switch gameType {
	case entity.LocalType:
	case entity.WithBotType:
		if !botMark.IsPlayer() {
			return nil, fmt.Errorf("%w: bot mark %q", apperror.ErrInvalidMark, botMark)
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidGameType, gameType)
	}

	game, err := that.gameService.CreateGame(ctx, gameType, botMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.openWithBot(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Debug("game created", "gameID", game.ID, "type", game.Type, "botMark", game.BotMark)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn applies a human move and, when the bot is next, the bot's reply.
// An empty player plays for whoever is to move.
// A rejected move returns the unchanged game together with the error.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, player entity.Mark, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if player == entity.EmptyCell {
		player = game.Turn
	}

	if game.IsWithBot() && player == game.BotMark {
		return game, fmt.Errorf("%w: %w: %q is played by the bot", apperror.ErrInvalidMove, apperror.ErrNotYourTurn, player)
	}

	if _, err = game.ApplyMove(player, cell); err != nil {
		log.Debug("move rejected", "player", player, "cell", cell, "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		that.pause(ctx)

		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status, "winner", game.Winner)
	}

	return game, nil
}

func (that *gamePlayService) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Reset()

	if game.IsBotTurn() {
		if _, err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Debug("game reset", "gameID", game.ID)

	return game, nil
}

func (that *gamePlayService) CloseGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to close game: %w", err)
	}

	return nil
}

// SuggestMove runs the bot over a board that is not stored anywhere.
func (that *gamePlayService) SuggestMove(board entity.Board, self entity.Mark) (int, error) {
	if !self.IsPlayer() {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, self)
	}

	if err := board.Validate(); err != nil {
		return 0, err
	}

	cell, err := ChooseMove(board, self, self.Opponent())
	if err != nil {
		return 0, fmt.Errorf("failed to choose move: %w", err)
	}

	return cell, nil
}

// openWithBot lets the bot play first when it owns X.
func (that *gamePlayService) openWithBot(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	if _, err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make first turn: %w", err)
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game with bot: %w", err)
	}

	return nil
}

func (that *gamePlayService) pause(ctx context.Context) {
	if that.botDelay <= 0 {
		return
	}

	timer := time.NewTimer(that.botDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
