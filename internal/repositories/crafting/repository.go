// Package crafting provides the interface for crafting session and history persistence
package crafting

//go:generate mockgen -destination=mock/mock_repository.go -package=craftingmock github.com/daddeck/daddeck-api/internal/repositories/crafting Repository

import (
	"context"

	"github.com/daddeck/daddeck-api/internal/entities"
)

// Repository defines the interface for crafting persistence. A player holds
// at most one active session; history is a capped, newest-first audit trail.
type Repository interface {
	// GetSession retrieves a player's active crafting session
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no active session
	// Returns errors.Internal for storage failures
	GetSession(ctx context.Context, input GetSessionInput) (*GetSessionOutput, error)

	// SaveSession writes a player's active session, replacing any previous one
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	SaveSession(ctx context.Context, input SaveSessionInput) (*SaveSessionOutput, error)

	// DeleteSession removes a player's active session
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no active session
	// Returns errors.Internal for storage failures
	DeleteSession(ctx context.Context, input DeleteSessionInput) (*DeleteSessionOutput, error)

	// AddRecord prepends a record to the player's crafting history,
	// trimming the history to its cap
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	AddRecord(ctx context.Context, input AddRecordInput) (*AddRecordOutput, error)

	// ListRecords retrieves the player's crafting history, newest first
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	ListRecords(ctx context.Context, input ListRecordsInput) (*ListRecordsOutput, error)
}

// GetSessionInput defines the input for getting a session
type GetSessionInput struct {
	PlayerID string
}

// GetSessionOutput defines the output for getting a session
type GetSessionOutput struct {
	Session *entities.CraftingSession
}

// SaveSessionInput defines the input for saving a session
type SaveSessionInput struct {
	Session *entities.CraftingSession
}

// SaveSessionOutput defines the output for saving a session
type SaveSessionOutput struct {
	Session *entities.CraftingSession
}

// DeleteSessionInput defines the input for deleting a session
type DeleteSessionInput struct {
	PlayerID string
}

// DeleteSessionOutput defines the output for deleting a session
type DeleteSessionOutput struct{}

// AddRecordInput defines the input for appending a history record
type AddRecordInput struct {
	Record *entities.CraftingRecord
}

// AddRecordOutput defines the output for appending a history record
type AddRecordOutput struct{}

// ListRecordsInput defines the input for listing history records
type ListRecordsInput struct {
	PlayerID string
	Limit    int64 // 0 means the full retained history
}

// ListRecordsOutput defines the output for listing history records
type ListRecordsOutput struct {
	Records []*entities.CraftingRecord
}
