package profile

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
	profileKeyPrefix = "profile:"

	// Error messages
	errProfileNil    = "profile cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis profile repository.
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

// NewRedis creates a new Redis-backed profile repository
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

	key := profileKeyPrefix + input.PlayerID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("profile for player %s not found", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get profile")
	}

	var prof entities.PlayerProfile
	if err := json.Unmarshal([]byte(result), &prof); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal profile")
	}

	return &GetOutput{Profile: &prof}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	now := r.clock.Now().Unix()
	if input.Profile.CreatedAt == 0 {
		input.Profile.CreatedAt = now
	}
	input.Profile.UpdatedAt = now

	data, err := json.Marshal(input.Profile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal profile")
	}

	key := profileKeyPrefix + input.Profile.PlayerID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save profile")
	}

	return &SaveOutput{Profile: input.Profile}, nil
}
