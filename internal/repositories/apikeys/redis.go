package apikeys

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	redisclient "github.com/daddeck/daddeck-api/internal/redis"
)

const (
	keyPrefix = "apikey:"
	indexKey  = "apikey:index"

	// Error messages
	errKeyNil      = "api key cannot be nil"
	errKeyEmpty    = "key cannot be empty"
	errKeyIDEmpty  = "key ID cannot be empty"
	errTierInvalid = "tier is not valid"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis API key repository.
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

// NewRedis creates a new Redis-backed API key repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.APIKey == nil {
		return nil, errors.InvalidArgument(errKeyNil)
	}
	if input.APIKey.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if input.APIKey.ID == "" {
		return nil, errors.InvalidArgument(errKeyIDEmpty)
	}
	if !input.APIKey.Tier.IsValid() {
		return nil, errors.InvalidArgument(errTierInvalid)
	}

	key := keyPrefix + input.APIKey.Key

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check key existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExists("api key already exists")
	}

	data, err := json.Marshal(input.APIKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal api key")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, indexKey, input.APIKey.Key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create api key")
	}

	return &CreateOutput{APIKey: input.APIKey}, nil
}

func (r *redisRepository) GetByKey(ctx context.Context, input GetByKeyInput) (*GetByKeyOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	result, err := r.client.Get(ctx, keyPrefix+input.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("api key not found")
		}
		return nil, errors.Wrapf(err, "failed to get api key")
	}

	var apiKey entities.APIKey
	if err := json.Unmarshal([]byte(result), &apiKey); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal api key")
	}

	return &GetByKeyOutput{APIKey: &apiKey}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	secrets, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list api keys")
	}

	apiKeys := make([]*entities.APIKey, 0, len(secrets))
	for _, secret := range secrets {
		out, err := r.GetByKey(ctx, GetByKeyInput{Key: secret})
		if err != nil {
			// Stale index entry
			if errors.IsNotFound(err) {
				r.client.SRem(ctx, indexKey, secret)
				continue
			}
			return nil, err
		}
		out.APIKey.Key = "" // never expose secrets in listings
		apiKeys = append(apiKeys, out.APIKey)
	}

	return &ListOutput{APIKeys: apiKeys}, nil
}

func (r *redisRepository) Revoke(ctx context.Context, input RevokeInput) (*RevokeOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errKeyIDEmpty)
	}

	secrets, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list api keys")
	}

	for _, secret := range secrets {
		out, err := r.GetByKey(ctx, GetByKeyInput{Key: secret})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if out.APIKey.ID != input.ID {
			continue
		}

		out.APIKey.Revoked = true
		data, err := json.Marshal(out.APIKey)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal api key")
		}
		if err := r.client.Set(ctx, keyPrefix+secret, data, 0).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to revoke api key")
		}
		return &RevokeOutput{}, nil
	}

	return nil, errors.NotFoundf("api key with ID %s not found", input.ID)
}
