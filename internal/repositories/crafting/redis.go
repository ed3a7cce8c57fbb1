package crafting

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	redisclient "github.com/daddeck/daddeck-api/internal/redis"
)

const (
	sessionKeyPrefix = "craft:session:"
	historyKeyPrefix = "craft:history:"

	// HistoryCap is how many records a player's history retains
	HistoryCap = 50

	// Error messages
	errSessionNil    = "session cannot be nil"
	errRecordNil     = "record cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis crafting repository.
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

// NewRedis creates a new Redis-backed crafting repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) GetSession(ctx context.Context, input GetSessionInput) (*GetSessionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := sessionKeyPrefix + input.PlayerID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no active crafting session for player %s", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get crafting session")
	}

	var session entities.CraftingSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal crafting session")
	}

	return &GetSessionOutput{Session: &session}, nil
}

func (r *redisRepository) SaveSession(ctx context.Context, input SaveSessionInput) (*SaveSessionOutput, error) {
	if input.Session == nil {
		return nil, errors.InvalidArgument(errSessionNil)
	}
	if input.Session.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal crafting session")
	}

	key := sessionKeyPrefix + input.Session.PlayerID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save crafting session")
	}

	return &SaveSessionOutput{Session: input.Session}, nil
}

func (r *redisRepository) DeleteSession(ctx context.Context, input DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := sessionKeyPrefix + input.PlayerID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete crafting session")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no active crafting session for player %s", input.PlayerID)
	}

	return &DeleteSessionOutput{}, nil
}

func (r *redisRepository) AddRecord(ctx context.Context, input AddRecordInput) (*AddRecordOutput, error) {
	if input.Record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if input.Record.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	data, err := json.Marshal(input.Record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal crafting record")
	}

	key := historyKeyPrefix + input.Record.PlayerID

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, HistoryCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to append crafting record")
	}

	return &AddRecordOutput{}, nil
}

func (r *redisRepository) ListRecords(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	stop := int64(HistoryCap - 1)
	if input.Limit > 0 && input.Limit < HistoryCap {
		stop = input.Limit - 1
	}

	key := historyKeyPrefix + input.PlayerID
	raw, err := r.client.LRange(ctx, key, 0, stop).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list crafting records")
	}

	records := make([]*entities.CraftingRecord, 0, len(raw))
	for _, item := range raw {
		var record entities.CraftingRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal crafting record")
		}
		records = append(records, &record)
	}

	return &ListRecordsOutput{Records: records}, nil
}
