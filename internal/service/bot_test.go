package service

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestChooseMove(t *testing.T) {
	tests := []struct {
		name  string
		board entity.Board
		self  entity.Mark
		want  int
	}{
		{
			name:  "empty board takes the center",
			board: entity.Board{},
			self:  o,
			want:  4,
		},
		{
			name: "blocks before taking the center",
			board: entity.Board{
				x, x, e,
				e, e, e,
				e, e, e,
			},
			self: o,
			want: 2,
		},
		{
			name: "win outranks a lower block",
			board: entity.Board{
				x, x, e,
				e, x, e,
				o, o, e,
			},
			self: o,
			want: 8,
		},
		{
			name: "lowest winning cell on ties",
			board: entity.Board{
				o, e, o,
				e, e, e,
				o, e, e,
			},
			self: o,
			want: 1,
		},
		{
			name: "lowest blocking cell on ties",
			board: entity.Board{
				x, e, x,
				e, o, e,
				x, e, e,
			},
			self: o,
			want: 1,
		},
		{
			name: "takes the lowest free corner",
			board: entity.Board{
				o, e, e,
				e, x, e,
				e, e, x,
			},
			self: o,
			want: 2,
		},
		{
			name: "first corner when only the center is taken",
			board: entity.Board{
				e, e, e,
				e, x, e,
				e, e, e,
			},
			self: o,
			want: 0,
		},
		{
			name: "falls back to the lowest side",
			board: entity.Board{
				x, o, x,
				e, x, e,
				o, x, o,
			},
			self: o,
			want: 3,
		},
		{
			name: "works for X as well",
			board: entity.Board{
				o, e, e,
				e, x, e,
				e, e, o,
			},
			self: x,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board snapshot and its copy
			before := tt.board

			// When: the bot chooses a move
			cell, err := ChooseMove(tt.board, tt.self, tt.self.Opponent())

			// Then: the expected cell is chosen and the board is untouched
			require.NoError(t, err)
			assert.Equal(t, tt.want, cell)
			assert.Equal(t, before, tt.board)
		})
	}

	t.Run("Full board has no legal move", func(t *testing.T) {
		// Given: a full board
		board := entity.Board{x, o, x, x, o, o, o, x, x}

		// When: the bot is asked to move
		_, err := ChooseMove(board, o, x)

		// Then: ErrNoLegalMove is returned
		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Bot opens with the center", func(t *testing.T) {
		// Given: a new game where the bot owns X
		game := entity.NewGame("g1", entity.WithBotType, x)
		bot := NewBotService()

		// When: the bot makes its turn
		result, err := bot.MakeTurn(game)

		// Then: it plays the center and hands the turn over
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, result.Status)
		assert.Equal(t, x, game.Board[4])
		assert.Equal(t, o, game.Turn)
	})

	t.Run("Error when it is not the bot's turn", func(t *testing.T) {
		// Given: a new game where the bot owns O
		game := entity.NewGame("g1", entity.WithBotType, o)
		bot := NewBotService()

		// When: the bot is asked to move on X's turn
		_, err := bot.MakeTurn(game)

		// Then: the request is rejected and nothing is played
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Corner then opposite corner beats the bot", func(t *testing.T) {
		// Given: a game where the bot owns O
		game := entity.NewGame("g1", entity.WithBotType, o)
		bot := NewBotService()

		// When: X plays 0, 8, 6, 7 and the bot answers each move
		var result entity.Result
		for _, cell := range []int{0, 8, 6, 7} {
			var err error
			result, err = game.ApplyMove(x, cell)
			require.NoError(t, err)

			if game.IsBotTurn() {
				_, err = bot.MakeTurn(game)
				require.NoError(t, err)
			}
		}

		// Then: the bot answered center, corner, block and still lost on the bottom row
		assert.Equal(t, entity.Board{
			x, e, o,
			o, o, e,
			x, x, x,
		}, game.Board)
		assert.Equal(t, entity.StatusWon, result.Status)
		assert.Equal(t, x, result.Winner)
		assert.Equal(t, entity.Line{6, 7, 8}, *result.WinningLine)
	})
}
