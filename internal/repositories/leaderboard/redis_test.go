package leaderboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	"github.com/daddeck/daddeck-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	cleanup func()
	repo    leaderboard.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := leaderboard.NewRedis(&leaderboard.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) seed() {
	scores := map[string]int64{
		"player_a": 120,
		"player_b": 340,
		"player_c": 55,
	}
	for playerID, score := range scores {
		_, err := s.repo.SetScore(s.ctx, leaderboard.SetScoreInput{
			PlayerID: playerID,
			Score:    score,
		})
		s.Require().NoError(err)
	}
}

func (s *RedisRepositoryTestSuite) TestTopOrdersByScore() {
	s.seed()

	topOut, err := s.repo.Top(s.ctx, leaderboard.TopInput{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(topOut.Entries, 3)

	s.Assert().Equal("player_b", topOut.Entries[0].PlayerID)
	s.Assert().Equal(int64(340), topOut.Entries[0].Score)
	s.Assert().Equal(int64(1), topOut.Entries[0].Rank)

	s.Assert().Equal("player_a", topOut.Entries[1].PlayerID)
	s.Assert().Equal("player_c", topOut.Entries[2].PlayerID)
	s.Assert().Equal(int64(3), topOut.Entries[2].Rank)
}

func (s *RedisRepositoryTestSuite) TestTopHonorsLimit() {
	s.seed()

	topOut, err := s.repo.Top(s.ctx, leaderboard.TopInput{Limit: 2})
	s.Require().NoError(err)
	s.Assert().Len(topOut.Entries, 2)
}

func (s *RedisRepositoryTestSuite) TestTopHonorsOffset() {
	s.seed()

	topOut, err := s.repo.Top(s.ctx, leaderboard.TopInput{Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(topOut.Entries, 2)

	s.Assert().Equal("player_a", topOut.Entries[0].PlayerID)
	s.Assert().Equal(int64(2), topOut.Entries[0].Rank)
	s.Assert().Equal("player_c", topOut.Entries[1].PlayerID)
	s.Assert().Equal(int64(3), topOut.Entries[1].Rank)
}

func (s *RedisRepositoryTestSuite) TestSetScoreReplaces() {
	s.seed()

	_, err := s.repo.SetScore(s.ctx, leaderboard.SetScoreInput{
		PlayerID: "player_c",
		Score:    999,
	})
	s.Require().NoError(err)

	rankOut, err := s.repo.Rank(s.ctx, leaderboard.RankInput{PlayerID: "player_c"})
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), rankOut.Entry.Rank)
	s.Assert().Equal(int64(999), rankOut.Entry.Score)
}

func (s *RedisRepositoryTestSuite) TestRankNotFound() {
	s.seed()

	_, err := s.repo.Rank(s.ctx, leaderboard.RankInput{PlayerID: "nobody"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.SetScore(s.ctx, leaderboard.SetScoreInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Top(s.ctx, leaderboard.TopInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Rank(s.ctx, leaderboard.RankInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
