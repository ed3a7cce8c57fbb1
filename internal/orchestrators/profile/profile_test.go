package profile_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/errors"
	profileorch "github.com/daddeck/daddeck-api/internal/orchestrators/profile"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	leaderboardrepo "github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	profilerepo "github.com/daddeck/daddeck-api/internal/repositories/profile"
	"github.com/daddeck/daddeck-api/internal/testutils"
)

type ProfileOrchestratorTestSuite struct {
	suite.Suite
	cleanup  func()
	service  profileorch.Service
	profiles profilerepo.Repository
	scores   leaderboardrepo.Repository
	ctx      context.Context
}

func (s *ProfileOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	fixed := &clock.Fixed{T: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)}

	var err error
	s.profiles, err = profilerepo.NewRedis(&profilerepo.RedisConfig{Client: client, Clock: fixed})
	s.Require().NoError(err)
	s.scores, err = leaderboardrepo.NewRedis(&leaderboardrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	service, err := profileorch.NewOrchestrator(&profileorch.Config{
		ProfileRepo:     s.profiles,
		LeaderboardRepo: s.scores,
		Clock:           fixed,
	})
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func (s *ProfileOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *ProfileOrchestratorTestSuite) TestGetProfileDefaultsForNewPlayer() {
	out, err := s.service.GetProfile(s.ctx, &profileorch.GetProfileInput{PlayerID: "player_new"})
	s.Require().NoError(err)

	s.Assert().Equal("player_new", out.Profile.PlayerID)
	s.Assert().Empty(out.Profile.DisplayName)
	s.Assert().Equal(int64(0), out.Rank)
	s.Assert().Equal(int64(0), out.Score)
}

func (s *ProfileOrchestratorTestSuite) TestGetProfileJoinsRank() {
	_, err := s.scores.SetScore(s.ctx, leaderboardrepo.SetScoreInput{PlayerID: "player_123", Score: 120})
	s.Require().NoError(err)
	_, err = s.scores.SetScore(s.ctx, leaderboardrepo.SetScoreInput{PlayerID: "player_456", Score: 300})
	s.Require().NoError(err)

	out, err := s.service.GetProfile(s.ctx, &profileorch.GetProfileInput{PlayerID: "player_123"})
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), out.Rank)
	s.Assert().Equal(int64(120), out.Score)
}

func (s *ProfileOrchestratorTestSuite) TestUpdateProfilePatchesOnlySetFields() {
	name := "Grill Sergeant"
	bio := "Medium rare or go home."
	_, err := s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{
		PlayerID:    "player_123",
		DisplayName: &name,
		Bio:         &bio,
	})
	s.Require().NoError(err)

	avatar := "spatula.png"
	out, err := s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{
		PlayerID: "player_123",
		Avatar:   &avatar,
	})
	s.Require().NoError(err)

	s.Assert().Equal("Grill Sergeant", out.Profile.DisplayName)
	s.Assert().Equal("spatula.png", out.Profile.Avatar)
	s.Assert().Equal("Medium rare or go home.", out.Profile.Bio)
	s.Assert().NotZero(out.Profile.CreatedAt)
}

func (s *ProfileOrchestratorTestSuite) TestUpdateProfileLengthLimits() {
	long := strings.Repeat("x", profileorch.MaxDisplayNameLength+1)
	_, err := s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{
		PlayerID:    "player_123",
		DisplayName: &long,
	})
	s.Assert().True(errors.IsInvalidArgument(err))

	longBio := strings.Repeat("x", profileorch.MaxBioLength+1)
	_, err = s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{
		PlayerID: "player_123",
		Bio:      &longBio,
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ProfileOrchestratorTestSuite) TestGetLeaderboardJoinsDisplayNames() {
	_, err := s.scores.SetScore(s.ctx, leaderboardrepo.SetScoreInput{PlayerID: "player_123", Score: 300})
	s.Require().NoError(err)
	_, err = s.scores.SetScore(s.ctx, leaderboardrepo.SetScoreInput{PlayerID: "player_456", Score: 120})
	s.Require().NoError(err)

	name := "Grill Sergeant"
	_, err = s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{
		PlayerID:    "player_123",
		DisplayName: &name,
	})
	s.Require().NoError(err)

	out, err := s.service.GetLeaderboard(s.ctx, &profileorch.GetLeaderboardInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Rows, 2)

	s.Assert().Equal(int64(1), out.Rows[0].Rank)
	s.Assert().Equal("player_123", out.Rows[0].PlayerID)
	s.Assert().Equal("Grill Sergeant", out.Rows[0].DisplayName)
	s.Assert().Equal(int64(300), out.Rows[0].Score)

	// No profile saved for second place, name stays empty
	s.Assert().Equal("player_456", out.Rows[1].PlayerID)
	s.Assert().Empty(out.Rows[1].DisplayName)
}

func (s *ProfileOrchestratorTestSuite) TestGetLeaderboardHonorsLimit() {
	for _, p := range []struct {
		id    string
		score int64
	}{{"a", 10}, {"b", 20}, {"c", 30}} {
		_, err := s.scores.SetScore(s.ctx, leaderboardrepo.SetScoreInput{PlayerID: p.id, Score: p.score})
		s.Require().NoError(err)
	}

	out, err := s.service.GetLeaderboard(s.ctx, &profileorch.GetLeaderboardInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Rows, 2)
	s.Assert().Equal("c", out.Rows[0].PlayerID)
	s.Assert().Equal("b", out.Rows[1].PlayerID)
}

func (s *ProfileOrchestratorTestSuite) TestValidation() {
	_, err := s.service.GetProfile(s.ctx, &profileorch.GetProfileInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.service.UpdateProfile(s.ctx, &profileorch.UpdateProfileInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestProfileOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(ProfileOrchestratorTestSuite))
}
