// Package collection provides the interface for card collection persistence
package collection

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/daddeck/daddeck-api/internal/repositories/collection Repository

import (
	"context"

	"github.com/daddeck/daddeck-api/internal/entities"
)

// Repository defines the interface for collection persistence
type Repository interface {
	// Get retrieves a player's collection
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no collection yet
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save writes a player's full collection, replacing any previous state
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a player's collection
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no collection
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting a collection
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for getting a collection
type GetOutput struct {
	Collection *entities.Collection
}

// SaveInput defines the input for saving a collection
type SaveInput struct {
	Collection *entities.Collection
}

// SaveOutput defines the output for saving a collection
type SaveOutput struct {
	Collection *entities.Collection
}

// DeleteInput defines the input for deleting a collection
type DeleteInput struct {
	PlayerID string
}

// DeleteOutput defines the output for deleting a collection
type DeleteOutput struct{}
