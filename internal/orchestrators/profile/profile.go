// Package profile implements the player profile and leaderboard orchestrator
package profile

//go:generate mockgen -destination=mock/mock_service.go -package=profilemock github.com/daddeck/daddeck-api/internal/orchestrators/profile Service

import (
	"context"
	"log/slog"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	"github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	profilerepo "github.com/daddeck/daddeck-api/internal/repositories/profile"
)

const (
	// MaxDisplayNameLength caps profile display names
	MaxDisplayNameLength = 32
	// MaxBioLength caps profile bios
	MaxBioLength = 280
	// DefaultLeaderboardLimit is used when a request does not set one
	DefaultLeaderboardLimit = 10
	// MaxLeaderboardLimit caps leaderboard page size
	MaxLeaderboardLimit = 100
)

// LeaderboardRow is one leaderboard entry joined with profile data
type LeaderboardRow struct {
	Rank        int64  `json:"rank"`
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName,omitempty"`
	Score       int64  `json:"score"`
}

// Service defines the interface for profile operations
type Service interface {
	// GetProfile retrieves a player's profile, creating a default on first read
	GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error)

	// UpdateProfile updates a profile's presentation fields
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error)

	// GetLeaderboard retrieves the top collection scores with display names
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}

// GetProfileInput defines the input for getting a profile
type GetProfileInput struct {
	PlayerID string
}

// GetProfileOutput defines the output for getting a profile
type GetProfileOutput struct {
	Profile *entities.PlayerProfile
	Rank    int64 // 0 when the player is not on the leaderboard
	Score   int64
}

// UpdateProfileInput defines the input for updating a profile. Nil fields
// are left unchanged.
type UpdateProfileInput struct {
	PlayerID    string
	DisplayName *string
	Avatar      *string
	Bio         *string
}

// UpdateProfileOutput defines the output for updating a profile
type UpdateProfileOutput struct {
	Profile *entities.PlayerProfile
}

// GetLeaderboardInput defines the input for the leaderboard view
type GetLeaderboardInput struct {
	Limit  int64
	Offset int64
}

// GetLeaderboardOutput defines the output for the leaderboard view
type GetLeaderboardOutput struct {
	Rows []*LeaderboardRow
}

// Config holds the dependencies for the profile orchestrator
type Config struct {
	ProfileRepo     profilerepo.Repository
	LeaderboardRepo leaderboard.Repository
	Clock           clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if c.LeaderboardRepo == nil {
		vb.RequiredField("LeaderboardRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	profileRepo     profilerepo.Repository
	leaderboardRepo leaderboard.Repository
	clock           clock.Clock
}

// NewOrchestrator creates a new profile orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		profileRepo:     cfg.ProfileRepo,
		leaderboardRepo: cfg.LeaderboardRepo,
		clock:           c,
	}, nil
}

func (o *orchestrator) GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	var prof *entities.PlayerProfile
	getOut, err := o.profileRepo.Get(ctx, profilerepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load profile")
		}
		prof = &entities.PlayerProfile{PlayerID: input.PlayerID}
	} else {
		prof = getOut.Profile
	}

	out := &GetProfileOutput{Profile: prof}

	rankOut, err := o.leaderboardRepo.Rank(ctx, leaderboard.RankInput{PlayerID: input.PlayerID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load rank")
		}
	} else {
		out.Rank = rankOut.Entry.Rank
		out.Score = rankOut.Entry.Score
	}

	return out, nil
}

func (o *orchestrator) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	vb := errors.NewValidationBuilder()
	if input.DisplayName != nil && len(*input.DisplayName) > MaxDisplayNameLength {
		vb.Fieldf("DisplayName", "must be at most %d characters", MaxDisplayNameLength)
	}
	if input.Bio != nil && len(*input.Bio) > MaxBioLength {
		vb.Fieldf("Bio", "must be at most %d characters", MaxBioLength)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var prof *entities.PlayerProfile
	getOut, err := o.profileRepo.Get(ctx, profilerepo.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load profile")
		}
		prof = &entities.PlayerProfile{PlayerID: input.PlayerID}
	} else {
		prof = getOut.Profile
	}

	if input.DisplayName != nil {
		prof.DisplayName = *input.DisplayName
	}
	if input.Avatar != nil {
		prof.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		prof.Bio = *input.Bio
	}

	saveOut, err := o.profileRepo.Save(ctx, profilerepo.SaveInput{Profile: prof})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	slog.InfoContext(ctx, "profile updated", "player_id", input.PlayerID)

	return &UpdateProfileOutput{Profile: saveOut.Profile}, nil
}

func (o *orchestrator) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	topOut, err := o.leaderboardRepo.Top(ctx, leaderboard.TopInput{Limit: limit, Offset: offset})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load leaderboard")
	}

	rows := make([]*LeaderboardRow, 0, len(topOut.Entries))
	for _, entry := range topOut.Entries {
		row := &LeaderboardRow{
			Rank:     entry.Rank,
			PlayerID: entry.PlayerID,
			Score:    entry.Score,
		}
		getOut, err := o.profileRepo.Get(ctx, profilerepo.GetInput{PlayerID: entry.PlayerID})
		if err == nil {
			row.DisplayName = getOut.Profile.DisplayName
		} else if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load profile for leaderboard")
		}
		rows = append(rows, row)
	}

	return &GetLeaderboardOutput{Rows: rows}, nil
}
