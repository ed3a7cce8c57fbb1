package collection_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/daddeck/daddeck-api/internal/catalog"
	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
	collectionorch "github.com/daddeck/daddeck-api/internal/orchestrators/collection"
	"github.com/daddeck/daddeck-api/internal/pkg/clock"
	collectionrepo "github.com/daddeck/daddeck-api/internal/repositories/collection"
	leaderboardrepo "github.com/daddeck/daddeck-api/internal/repositories/leaderboard"
	"github.com/daddeck/daddeck-api/internal/testutils"
)

const testPlayerID = "player_123"

type CollectionOrchestratorTestSuite struct {
	suite.Suite
	cleanup     func()
	service     collectionorch.Service
	collections collectionrepo.Repository
	scores      leaderboardrepo.Repository
	now         time.Time
	ctx         context.Context
}

func (s *CollectionOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	cat, err := catalog.New()
	s.Require().NoError(err)

	s.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	fixed := &clock.Fixed{T: s.now}

	s.collections, err = collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client, Clock: fixed})
	s.Require().NoError(err)
	s.scores, err = leaderboardrepo.NewRedis(&leaderboardrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	service, err := collectionorch.NewOrchestrator(&collectionorch.Config{
		Catalog:         cat,
		CollectionRepo:  s.collections,
		LeaderboardRepo: s.scores,
		Clock:           fixed,
	})
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func (s *CollectionOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *CollectionOrchestratorTestSuite) seed() {
	cards := map[string]*entities.OwnedCard{
		"bbq_dad_001":      {CardID: "bbq_dad_001", Count: 3, ObtainedAt: 100},
		"bbq_dad_101":      {CardID: "bbq_dad_101", Count: 1, ObtainedAt: 300},
		"bbq_dad_201":      {CardID: "bbq_dad_201", Count: 1, ObtainedAt: 200},
		"bbq_dad_001:holo": {CardID: "bbq_dad_001", Holo: true, Count: 1, ObtainedAt: 400},
	}
	_, err := s.collections.Save(s.ctx, collectionrepo.SaveInput{Collection: &entities.Collection{
		PlayerID: testPlayerID,
		Cards:    cards,
	}})
	s.Require().NoError(err)
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionSortedByRarity() {
	s.seed()

	out, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID: testPlayerID,
	})
	s.Require().NoError(err)

	s.Assert().Equal(int32(6), out.TotalCards)
	s.Assert().Equal(int32(4), out.UniqueCards)
	s.Require().Len(out.Entries, 4)

	// Highest rarity first: rare, uncommon, then the two common entries
	s.Assert().Equal("bbq_dad_201", out.Entries[0].Card.ID)
	s.Assert().Equal("bbq_dad_101", out.Entries[1].Card.ID)
	s.Assert().Equal("bbq_dad_001", out.Entries[2].Card.ID)
	s.Assert().False(out.Entries[2].Holo)
	s.Assert().Equal("bbq_dad_001", out.Entries[3].Card.ID)
	s.Assert().True(out.Entries[3].Holo)

	// 3 commons + holo common + uncommon + rare: 3 + 2 + 3 + 8
	s.Assert().Equal(int64(16), out.Score)
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionSortedByDate() {
	s.seed()

	out, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID: testPlayerID,
		SortBy:   collectionorch.SortByDate,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 4)

	// Newest first
	s.Assert().Equal(int64(400), out.Entries[0].ObtainedAt)
	s.Assert().Equal(int64(100), out.Entries[3].ObtainedAt)
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionSortOrder() {
	s.seed()

	// Ascending rarity reverses the default, commons leading
	out, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID:  testPlayerID,
		SortOrder: collectionorch.SortOrderAsc,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 4)
	s.Assert().Equal("bbq_dad_001", out.Entries[0].Card.ID)
	s.Assert().False(out.Entries[0].Holo)
	s.Assert().Equal("bbq_dad_001", out.Entries[1].Card.ID)
	s.Assert().True(out.Entries[1].Holo)
	s.Assert().Equal("bbq_dad_101", out.Entries[2].Card.ID)
	s.Assert().Equal("bbq_dad_201", out.Entries[3].Card.ID)

	// Oldest first
	out, err = s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID:  testPlayerID,
		SortBy:    collectionorch.SortByDate,
		SortOrder: collectionorch.SortOrderAsc,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 4)
	s.Assert().Equal(int64(100), out.Entries[0].ObtainedAt)
	s.Assert().Equal(int64(400), out.Entries[3].ObtainedAt)

	// Explicit desc matches the rarity default
	out, err = s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID:  testPlayerID,
		SortOrder: collectionorch.SortOrderDesc,
	})
	s.Require().NoError(err)
	s.Assert().Equal("bbq_dad_201", out.Entries[0].Card.ID)

	_, err = s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID:  testPlayerID,
		SortOrder: "sideways",
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionPagination() {
	s.seed()

	out, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID: testPlayerID,
		Page:     2,
		PageSize: 3,
	})
	s.Require().NoError(err)
	s.Assert().Len(out.Entries, 1)
	s.Assert().Equal(int32(2), out.TotalPages)
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionEmpty() {
	out, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID: "newcomer",
	})
	s.Require().NoError(err)
	s.Assert().Empty(out.Entries)
	s.Assert().Equal(int32(0), out.TotalCards)
}

func (s *CollectionOrchestratorTestSuite) TestGetCollectionRejectsUnknownSort() {
	_, err := s.service.GetCollection(s.ctx, &collectionorch.GetCollectionInput{
		PlayerID: testPlayerID,
		SortBy:   "vibes",
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *CollectionOrchestratorTestSuite) TestExportImportRoundTrip() {
	s.seed()

	exportOut, err := s.service.Export(s.ctx, &collectionorch.ExportInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Assert().Equal(int32(entities.BackupVersion), exportOut.Backup.Version)
	s.Assert().Equal(s.now.Unix(), exportOut.Backup.ExportedAt)
	s.Assert().Len(exportOut.Backup.Cards, 4)

	// Import the backup into another account
	importOut, err := s.service.Import(s.ctx, &collectionorch.ImportInput{
		PlayerID: "player_other",
		Backup:   exportOut.Backup,
	})
	s.Require().NoError(err)
	s.Assert().Equal(int32(4), importOut.Imported)
	s.Assert().Equal(int32(0), importOut.Skipped)

	colOut, err := s.collections.Get(s.ctx, collectionrepo.GetInput{PlayerID: "player_other"})
	s.Require().NoError(err)
	s.Assert().Equal(int32(6), colOut.Collection.TotalCards())

	// The leaderboard followed the import
	rankOut, err := s.scores.Rank(s.ctx, leaderboardrepo.RankInput{PlayerID: "player_other"})
	s.Require().NoError(err)
	s.Assert().Equal(int64(16), rankOut.Entry.Score)
}

func (s *CollectionOrchestratorTestSuite) TestImportSkipsUnknownCards() {
	backup := &entities.CollectionBackup{
		Version:  entities.BackupVersion,
		PlayerID: testPlayerID,
		Cards: []entities.OwnedCard{
			{CardID: "bbq_dad_001", Count: 1},
			{CardID: "retired_dad_999", Count: 2},
		},
	}

	importOut, err := s.service.Import(s.ctx, &collectionorch.ImportInput{
		PlayerID: testPlayerID,
		Backup:   backup,
	})
	s.Require().NoError(err)
	s.Assert().Equal(int32(1), importOut.Imported)
	s.Assert().Equal(int32(1), importOut.Skipped)
}

func (s *CollectionOrchestratorTestSuite) TestImportValidation() {
	_, err := s.service.Import(s.ctx, &collectionorch.ImportInput{PlayerID: testPlayerID})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.service.Import(s.ctx, &collectionorch.ImportInput{
		PlayerID: testPlayerID,
		Backup:   &entities.CollectionBackup{Version: 99},
	})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.service.Import(s.ctx, &collectionorch.ImportInput{
		PlayerID: testPlayerID,
		Backup: &entities.CollectionBackup{
			Version: entities.BackupVersion,
			Cards:   []entities.OwnedCard{{CardID: "bbq_dad_001", Count: 0}},
		},
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestCollectionOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(CollectionOrchestratorTestSuite))
}
