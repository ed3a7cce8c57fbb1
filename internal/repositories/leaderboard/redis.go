package leaderboard

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/daddeck/daddeck-api/internal/errors"
	redisclient "github.com/daddeck/daddeck-api/internal/redis"
)

const (
	leaderboardKey = "leaderboard:collection"

	// Error messages
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis leaderboard repository.
type RedisConfig struct {
	Client redisclient.Client
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

// NewRedis creates a new Redis-backed leaderboard repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) SetScore(ctx context.Context, input SetScoreInput) (*SetScoreOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	err := r.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(input.Score),
		Member: input.PlayerID,
	}).Err()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to set leaderboard score")
	}

	return &SetScoreOutput{}, nil
}

func (r *redisRepository) Top(ctx context.Context, input TopInput) (*TopOutput, error) {
	if input.Limit <= 0 {
		return nil, errors.InvalidArgument("limit must be positive")
	}
	if input.Offset < 0 {
		return nil, errors.InvalidArgument("offset cannot be negative")
	}

	rows, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, input.Offset, input.Offset+input.Limit-1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list leaderboard")
	}

	entries := make([]*Entry, 0, len(rows))
	for i, row := range rows {
		playerID, ok := row.Member.(string)
		if !ok {
			return nil, errors.Internalf("unexpected leaderboard member type %T", row.Member)
		}
		entries = append(entries, &Entry{
			PlayerID: playerID,
			Score:    int64(row.Score),
			Rank:     input.Offset + int64(i) + 1,
		})
	}

	return &TopOutput{Entries: entries}, nil
}

func (r *redisRepository) Rank(ctx context.Context, input RankInput) (*RankOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rank, err := r.client.ZRevRank(ctx, leaderboardKey, input.PlayerID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("player %s is not on the leaderboard", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get leaderboard rank")
	}

	score, err := r.client.ZScore(ctx, leaderboardKey, input.PlayerID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get leaderboard score")
	}

	return &RankOutput{Entry: &Entry{
		PlayerID: input.PlayerID,
		Score:    int64(score),
		Rank:     rank + 1,
	}}, nil
}
