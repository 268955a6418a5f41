package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

var (
	errMissingCell  = errors.New("cell is required")
	errMissingBoard = errors.New("board is required")
	errBadBody      = errors.New("malformed request body")
)

type Handlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	ResetGame(w http.ResponseWriter, r *http.Request)
	CloseGame(w http.ResponseWriter, r *http.Request)

	SuggestMove(w http.ResponseWriter, r *http.Request)
}

type gamePlay interface {
	CreateGame(ctx context.Context, gameType string, botMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, player entity.Mark, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	CloseGame(ctx context.Context, gameID string) error

	SuggestMove(board entity.Board, self entity.Mark) (int, error)
}

type handlers struct {
	logger *slog.Logger

	gamePlay       gamePlay
	defaultBotMark entity.Mark
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlay, defaultBotMark entity.Mark) Handlers {
	return &handlers{
		logger:         logger.With("component", "rest"),
		gamePlay:       gamePlay,
		defaultBotMark: defaultBotMark,
	}
}

type createGameRequest struct {
	Type    string       `json:"type"`
	BotMark *entity.Mark `json:"bot_mark"`
}

type turnRequest struct {
	Player entity.Mark `json:"player"`
	Cell   *int        `json:"cell"`
}

type suggestRequest struct {
	Board *entity.Board `json:"board"`
	Self  entity.Mark  `json:"self"`
}

type suggestResponse struct {
	Cell int `json:"cell"`
}

type gameResponse struct {
	ID          string        `json:"id"`
	Board       entity.Board  `json:"board"`
	Turn        entity.Mark   `json:"player_turn"`
	Status      entity.Status `json:"status"`
	Winner      entity.Mark   `json:"winner,omitempty"`
	WinningLine *entity.Line  `json:"winning_line,omitempty"`
	Type        string        `json:"type"`
	BotMark     entity.Mark   `json:"bot_mark,omitempty"`
	Message     string        `json:"message"`
}

type errorResponse struct {
	Error string        `json:"error"`
	Game  *gameResponse `json:"game,omitempty"`
}

func newGameResponse(game *entity.Game) *gameResponse {
	result := game.Result()

	return &gameResponse{
		ID:          game.ID,
		Board:       game.Board,
		Turn:        game.Turn,
		Status:      result.Status,
		Winner:      result.Winner,
		WinningLine: result.WinningLine,
		Type:        game.Type,
		BotMark:     game.BotMark,
		Message:     game.Message(),
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	// an empty body creates a game against the bot
	req := createGameRequest{Type: entity.WithBotType}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, errBadBody, nil)
		return
	}

	botMark := that.defaultBotMark
	if req.BotMark != nil {
		botMark = *req.BotMark
	}

	game, err := that.gamePlay.CreateGame(r.Context(), req.Type, botMark)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(game))
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errBadBody, nil)
		return
	}

	if req.Cell == nil {
		that.writeError(w, errMissingCell, nil)
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Player, *req.Cell)
	if err != nil {
		that.writeError(w, err, game)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(game))
}

func (that *handlers) CloseGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.CloseGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) SuggestMove(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, errBadBody, nil)
		return
	}

	if req.Board == nil {
		that.writeError(w, errMissingBoard, nil)
		return
	}

	cell, err := that.gamePlay.SuggestMove(*req.Board, req.Self)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, suggestResponse{Cell: cell})
}

func (that *handlers) writeError(w http.ResponseWriter, err error, game *entity.Game) {
	status := statusFromError(err)

	body := errorResponse{Error: err.Error()}
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		body.Error = http.StatusText(status)
	}

	if game != nil {
		body.Game = newGameResponse(game)
	}

	that.writeJSON(w, status, body)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNoLegalMove),
		errors.Is(err, apperror.ErrStaleGame):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidGameType),
		errors.Is(err, errBadBody),
		errors.Is(err, errMissingCell),
		errors.Is(err, errMissingBoard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
