// Package leaderboard provides the interface for the collection score leaderboard
package leaderboard

//go:generate mockgen -destination=mock/mock_repository.go -package=leaderboardmock github.com/daddeck/daddeck-api/internal/repositories/leaderboard Repository

import "context"

// Entry is one ranked row on the leaderboard
type Entry struct {
	PlayerID string `json:"playerId"`
	Score    int64  `json:"score"`
	Rank     int64  `json:"rank"` // 1-based
}

// Repository defines the interface for leaderboard persistence
type Repository interface {
	// SetScore writes a player's current score, replacing any previous one
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	SetScore(ctx context.Context, input SetScoreInput) (*SetScoreOutput, error)

	// Top retrieves the highest ranked entries
	// Returns errors.InvalidArgument for a non-positive limit
	// Returns errors.Internal for storage failures
	Top(ctx context.Context, input TopInput) (*TopOutput, error)

	// Rank retrieves a single player's rank and score
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.NotFound if the player has no score
	// Returns errors.Internal for storage failures
	Rank(ctx context.Context, input RankInput) (*RankOutput, error)
}

// SetScoreInput defines the input for setting a score
type SetScoreInput struct {
	PlayerID string
	Score    int64
}

// SetScoreOutput defines the output for setting a score
type SetScoreOutput struct{}

// TopInput defines the input for listing the top entries
type TopInput struct {
	Limit  int64
	Offset int64 // ranked entries to skip
}

// TopOutput defines the output for listing the top entries
type TopOutput struct {
	Entries []*Entry
}

// RankInput defines the input for looking up a player's rank
type RankInput struct {
	PlayerID string
}

// RankOutput defines the output for looking up a player's rank
type RankOutput struct {
	Entry *Entry
}
