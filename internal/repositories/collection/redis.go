package collection

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	redisclient "github.com/daddeck/daddeck-api/internal/redis"
)

const (
	collectionKeyPrefix = "collection:"

	// Error messages
	errCollectionNil = "collection cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis collection repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed collection repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := collectionKeyPrefix + input.PlayerID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("collection for player %s not found", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get collection")
	}

	var col entities.Collection
	if err := json.Unmarshal([]byte(result), &col); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal collection")
	}

	return &GetOutput{Collection: &col}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Collection == nil {
		return nil, errors.InvalidArgument(errCollectionNil)
	}
	if input.Collection.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	input.Collection.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(input.Collection)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection")
	}

	key := collectionKeyPrefix + input.Collection.PlayerID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save collection")
	}

	return &SaveOutput{Collection: input.Collection}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := collectionKeyPrefix + input.PlayerID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete collection")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("collection for player %s not found", input.PlayerID)
	}

	return &DeleteOutput{}, nil
}
