// Package profile provides the interface for player profile persistence
package profile

//go:generate mockgen -destination=mock/mock_repository.go -package=profilemock github.com/daddeck/daddeck-api/internal/repositories/profile Repository

import (
	"context"

	"github.com/daddeck/daddeck-api/internal/entities"
)

// Repository defines the interface for player profile persistence
type Repository interface {
	// Get retrieves a player's profile
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no profile yet
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save writes a player's full profile, replacing any previous state
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// GetInput defines the input for getting a profile
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for getting a profile
type GetOutput struct {
	Profile *entities.PlayerProfile
}

// SaveInput defines the input for saving a profile
type SaveInput struct {
	Profile *entities.PlayerProfile
}

// SaveOutput defines the output for saving a profile
type SaveOutput struct {
	Profile *entities.PlayerProfile
}
