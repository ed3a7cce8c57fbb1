// Package auth implements the API key management orchestrator
package auth

//go:generate mockgen -destination=mock/mock_service.go -package=authmock github.com/daddeck/daddeck-api/internal/orchestrators/auth Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/pkg/idgen"
	"github.com/daddeck/daddeck-api/internal/repositories/apikeys"
)

// MaxKeyNameLength caps key names
const MaxKeyNameLength = 64

// MaxAllowedOrigins caps the CORS origin list on a key
const MaxAllowedOrigins = 10

// Service defines the interface for API key operations
type Service interface {
	// CreateKey issues a new key. The secret is only present in this response
	CreateKey(ctx context.Context, input *CreateKeyInput) (*CreateKeyOutput, error)

	// ListKeys retrieves all issued keys with secrets stripped
	ListKeys(ctx context.Context, input *ListKeysInput) (*ListKeysOutput, error)

	// RevokeKey marks a key revoked
	RevokeKey(ctx context.Context, input *RevokeKeyInput) (*RevokeKeyOutput, error)

	// Authenticate resolves a presented secret to a live key record
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
}

// CreateKeyInput defines the input for issuing a key
type CreateKeyInput struct {
	Name      string
	Tier      entities.APITier
	ExpiresAt int64 // unix seconds, 0 for no expiry
	// AllowedOrigins restricts browser callers; empty allows any origin
	AllowedOrigins []string
}

// CreateKeyOutput defines the output for issuing a key
type CreateKeyOutput struct {
	APIKey *entities.APIKey
}

// ListKeysInput defines the input for listing keys
type ListKeysInput struct{}

// ListKeysOutput defines the output for listing keys
type ListKeysOutput struct {
	APIKeys []*entities.APIKey
}

// RevokeKeyInput defines the input for revoking a key
type RevokeKeyInput struct {
	ID string
}

// RevokeKeyOutput defines the output for revoking a key
type RevokeKeyOutput struct{}

// AuthenticateInput defines the input for authenticating a secret
type AuthenticateInput struct {
	Key string
}

// AuthenticateOutput defines the output for authenticating a secret
type AuthenticateOutput struct {
	APIKey *entities.APIKey
}

// Config holds the dependencies for the auth orchestrator
type Config struct {
	APIKeyRepo apikeys.Repository
	// IDGenerator mints key record IDs
	IDGenerator idgen.Generator
	// SecretGenerator mints the key secrets handed to callers
	SecretGenerator idgen.Generator
	Clock           clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.APIKeyRepo == nil {
		vb.RequiredField("APIKeyRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.SecretGenerator == nil {
		vb.RequiredField("SecretGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	apiKeyRepo apikeys.Repository
	idGen      idgen.Generator
	secretGen  idgen.Generator
	clock      clock.Clock
}

// NewOrchestrator creates a new auth orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		apiKeyRepo: cfg.APIKeyRepo,
		idGen:      cfg.IDGenerator,
		secretGen:  cfg.SecretGenerator,
		clock:      c,
	}, nil
}

func (o *orchestrator) CreateKey(ctx context.Context, input *CreateKeyInput) (*CreateKeyOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.InvalidArgument("name is required")
	}
	if len(name) > MaxKeyNameLength {
		return nil, errors.InvalidArgumentf("name must be at most %d characters", MaxKeyNameLength)
	}
	if !input.Tier.IsValid() {
		return nil, errors.InvalidArgumentf("unknown tier: %s", input.Tier)
	}

	now := o.clock.Now().Unix()
	if input.ExpiresAt != 0 && input.ExpiresAt <= now {
		return nil, errors.InvalidArgument("expiry must be in the future")
	}

	if len(input.AllowedOrigins) > MaxAllowedOrigins {
		return nil, errors.InvalidArgumentf("at most %d allowed origins", MaxAllowedOrigins)
	}
	origins := make([]string, 0, len(input.AllowedOrigins))
	for _, origin := range input.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return nil, errors.InvalidArgument("allowed origins cannot be blank")
		}
		origins = append(origins, origin)
	}

	apiKey := &entities.APIKey{
		ID:             o.idGen.Generate(),
		Key:            o.secretGen.Generate(),
		Name:           name,
		Tier:           input.Tier,
		CreatedAt:      now,
		ExpiresAt:      input.ExpiresAt,
		AllowedOrigins: origins,
	}

	createOut, err := o.apiKeyRepo.Create(ctx, apikeys.CreateInput{APIKey: apiKey})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store api key")
	}

	slog.InfoContext(ctx, "api key issued",
		"key_id", apiKey.ID,
		"tier", apiKey.Tier,
	)

	return &CreateKeyOutput{APIKey: createOut.APIKey}, nil
}

func (o *orchestrator) ListKeys(ctx context.Context, _ *ListKeysInput) (*ListKeysOutput, error) {
	listOut, err := o.apiKeyRepo.List(ctx, apikeys.ListInput{})
	if err != nil {
		return nil, err
	}
	return &ListKeysOutput{APIKeys: listOut.APIKeys}, nil
}

func (o *orchestrator) RevokeKey(ctx context.Context, input *RevokeKeyInput) (*RevokeKeyOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("key ID is required")
	}
	if _, err := o.apiKeyRepo.Revoke(ctx, apikeys.RevokeInput{ID: input.ID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "api key revoked", "key_id", input.ID)

	return &RevokeKeyOutput{}, nil
}

func (o *orchestrator) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error) {
	if input.Key == "" {
		return nil, errors.Unauthenticated("api key is required")
	}

	getOut, err := o.apiKeyRepo.GetByKey(ctx, apikeys.GetByKeyInput{Key: input.Key})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthenticated("unknown api key")
		}
		return nil, errors.Wrap(err, "failed to look up api key")
	}

	apiKey := getOut.APIKey
	if apiKey.Revoked {
		return nil, errors.Unauthenticated("api key has been revoked")
	}
	if apiKey.ExpiresAt != 0 && apiKey.ExpiresAt <= o.clock.Now().Unix() {
		return nil, errors.Unauthenticated("api key has expired")
	}

	return &AuthenticateOutput{APIKey: apiKey}, nil
}
