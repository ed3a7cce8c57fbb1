// Package apikeys provides the interface for API key persistence
package apikeys

//go:generate mockgen -destination=mock/mock_repository.go -package=apikeysmock github.com/daddeck/daddeck-api/internal/repositories/apikeys Repository

import (
	"context"

	"github.com/daddeck/daddeck-api/internal/entities"
)

// Repository defines the interface for API key persistence
type Repository interface {
	// Create stores a newly issued key
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a key with the same secret exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// GetByKey looks up a key record by its secret
	// Returns errors.InvalidArgument for empty keys
	// Returns errors.NotFound if the key does not exist
	// Returns errors.Internal for storage failures
	GetByKey(ctx context.Context, input GetByKeyInput) (*GetByKeyOutput, error)

	// List retrieves all issued keys, secrets stripped
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Revoke marks a key revoked by its ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the key does not exist
	// Returns errors.Internal for storage failures
	Revoke(ctx context.Context, input RevokeInput) (*RevokeOutput, error)
}

// CreateInput defines the input for storing a key
type CreateInput struct {
	APIKey *entities.APIKey
}

// CreateOutput defines the output for storing a key
type CreateOutput struct {
	APIKey *entities.APIKey
}

// GetByKeyInput defines the input for looking up a key by secret
type GetByKeyInput struct {
	Key string
}

// GetByKeyOutput defines the output for looking up a key by secret
type GetByKeyOutput struct {
	APIKey *entities.APIKey
}

// ListInput defines the input for listing keys
type ListInput struct{}

// ListOutput defines the output for listing keys
type ListOutput struct {
	APIKeys []*entities.APIKey
}

// RevokeInput defines the input for revoking a key
type RevokeInput struct {
	ID string
}

// RevokeOutput defines the output for revoking a key
type RevokeOutput struct{}
