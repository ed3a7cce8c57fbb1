package crafting_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	"github.com/daddeck/daddeck-api/internal/repositories/crafting"
	"github.com/daddeck/daddeck-api/internal/testutils"
)

const testPlayerID = "player_123"

type RedisRepositoryTestSuite struct {
	suite.Suite
	cleanup func()
	repo    crafting.Repository
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := crafting.NewRedis(&crafting.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestSessionLifecycle() {
	session := &entities.CraftingSession{
		ID:        "craft_001",
		PlayerID:  testPlayerID,
		RecipeID:  "rare_to_epic",
		CardIDs:   []string{"card_a", "card_b"},
		State:     entities.CraftingStateSelecting,
		StartedAt: 1700000000,
	}

	_, err := s.repo.SaveSession(s.ctx, crafting.SaveSessionInput{Session: session})
	s.Require().NoError(err)

	getOut, err := s.repo.GetSession(s.ctx, crafting.GetSessionInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Assert().Equal("craft_001", getOut.Session.ID)
	s.Assert().Equal(entities.CraftingStateSelecting, getOut.Session.State)
	s.Assert().Equal([]string{"card_a", "card_b"}, getOut.Session.CardIDs)

	// Saving again replaces the active session
	session.CardIDs = append(session.CardIDs, "card_c")
	_, err = s.repo.SaveSession(s.ctx, crafting.SaveSessionInput{Session: session})
	s.Require().NoError(err)

	getOut, err = s.repo.GetSession(s.ctx, crafting.GetSessionInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Assert().Len(getOut.Session.CardIDs, 3)

	_, err = s.repo.DeleteSession(s.ctx, crafting.DeleteSessionInput{PlayerID: testPlayerID})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(s.ctx, crafting.GetSessionInput{PlayerID: testPlayerID})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.DeleteSession(s.ctx, crafting.DeleteSessionInput{PlayerID: testPlayerID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestHistoryNewestFirst() {
	for i := 1; i <= 3; i++ {
		_, err := s.repo.AddRecord(s.ctx, crafting.AddRecordInput{
			Record: &entities.CraftingRecord{
				ID:         fmt.Sprintf("record_%03d", i),
				PlayerID:   testPlayerID,
				RecipeID:   "common_to_uncommon",
				Success:    i%2 == 0,
				ResolvedAt: int64(1700000000 + i),
			},
		})
		s.Require().NoError(err)
	}

	listOut, err := s.repo.ListRecords(s.ctx, crafting.ListRecordsInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Require().Len(listOut.Records, 3)
	s.Assert().Equal("record_003", listOut.Records[0].ID)
	s.Assert().Equal("record_001", listOut.Records[2].ID)

	limited, err := s.repo.ListRecords(s.ctx, crafting.ListRecordsInput{PlayerID: testPlayerID, Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(limited.Records, 2)
	s.Assert().Equal("record_003", limited.Records[0].ID)
}

func (s *RedisRepositoryTestSuite) TestHistoryTrimsAtCap() {
	for i := 0; i < crafting.HistoryCap+10; i++ {
		_, err := s.repo.AddRecord(s.ctx, crafting.AddRecordInput{
			Record: &entities.CraftingRecord{
				ID:       fmt.Sprintf("record_%03d", i),
				PlayerID: testPlayerID,
				RecipeID: "common_to_uncommon",
			},
		})
		s.Require().NoError(err)
	}

	listOut, err := s.repo.ListRecords(s.ctx, crafting.ListRecordsInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Assert().Len(listOut.Records, crafting.HistoryCap)

	// Oldest entries fell off the end
	last := listOut.Records[len(listOut.Records)-1]
	s.Assert().Equal("record_010", last.ID)
}

func (s *RedisRepositoryTestSuite) TestEmptyHistory() {
	listOut, err := s.repo.ListRecords(s.ctx, crafting.ListRecordsInput{PlayerID: "nobody"})
	s.Require().NoError(err)
	s.Assert().Empty(listOut.Records)
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.GetSession(s.ctx, crafting.GetSessionInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.SaveSession(s.ctx, crafting.SaveSessionInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.AddRecord(s.ctx, crafting.AddRecordInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.ListRecords(s.ctx, crafting.ListRecordsInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
