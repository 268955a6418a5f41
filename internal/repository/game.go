package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const gameKeyPrefix = "game:"

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// dbGame keeps only the live state of each session. Every write refreshes the ttl.
type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

// CreateOrUpdate saves game only if the stored copy still has game.Version,
// then bumps the version. A lost race returns apperror.ErrStaleGame.
func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	key := gameKeyPrefix + game.ID

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		version, err := that.storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}

		// an expired session cannot be written back from an old copy
		if version == 0 && game.Version != 0 {
			return apperror.ErrGameNotFound
		}

		if version != game.Version {
			return fmt.Errorf("%w: stored version %d, saving %d", apperror.ErrStaleGame, version, game.Version)
		}

		next := *game
		next.Version++

		gameJSON, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("could not marshal game: %w", err)
		}

		if _, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, that.ttl)
			return nil
		}); err != nil {
			return err
		}

		game.Version = next.Version

		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: concurrent write to %s", apperror.ErrStaleGame, key)
	}

	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

// storedVersion returns 0 when no session is stored under key.
func (that *dbGame) storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	response, err := tx.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get game: %w", err)
	}

	var stored entity.Game
	if err = json.Unmarshal([]byte(response), &stored); err != nil {
		return 0, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return stored.Version, nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrGameNotFound
	}

	return nil
}
