//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mcms/internal/camp/models"
	"mcms/pkg/platform/sentinel"
	"mcms/pkg/testutil/containers"
)

type MongoCampStoreSuite struct {
	suite.Suite
	mongo *containers.MongoContainer
	store *MongoCampStore
	ctx   context.Context
}

func TestMongoCampStoreSuite(t *testing.T) {
	suite.Run(t, new(MongoCampStoreSuite))
}

func (s *MongoCampStoreSuite) SetupSuite() {
	s.mongo = containers.NewMongoContainer(s.T())
	s.ctx = context.Background()
}

func (s *MongoCampStoreSuite) SetupTest() {
	s.store = NewMongoCampStore(s.mongo.Database(s.T()).Collection("camps"))
}

func (s *MongoCampStoreSuite) insert(title string) *models.Camp {
	camp := &models.Camp{Title: title, Fee: 10, CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}
	s.Require().NoError(s.store.Insert(s.ctx, camp))
	s.Require().NotEmpty(camp.ID)
	return camp
}

func (s *MongoCampStoreSuite) TestInsertAndFind() {
	camp := s.insert("Dental")

	got, err := s.store.FindByID(s.ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal("Dental", got.Title)
	s.Equal(camp.CreatedAt, got.CreatedAt)

	_, err = s.store.FindByID(s.ctx, "not-an-object-id")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *MongoCampStoreSuite) TestListPreservesInsertionOrder() {
	s.insert("first")
	s.insert("second")

	camps, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(camps, 2)
	s.Equal("first", camps[0].Title)
	s.Equal("second", camps[1].Title)
}

func (s *MongoCampStoreSuite) TestUpdateSetsOnlyProvidedFields() {
	camp := s.insert("Eye")
	location := "Sylhet"

	res, err := s.store.Update(s.ctx, camp.ID, models.Update{Location: &location})
	s.Require().NoError(err)
	s.Equal(int64(1), res.MatchedCount)

	got, err := s.store.FindByID(s.ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal("Eye", got.Title)
	s.Equal("Sylhet", got.Location)
}

func (s *MongoCampStoreSuite) TestIncrementAndDelete() {
	camp := s.insert("Cardio")

	res, err := s.store.IncrementParticipants(s.ctx, camp.ID, 1)
	s.Require().NoError(err)
	s.Equal(int64(1), res.ModifiedCount)
	got, err := s.store.FindByID(s.ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), got.ParticipantCount)

	res, err = s.store.IncrementParticipants(s.ctx, "bogus", 1)
	s.Require().NoError(err)
	s.Zero(res.MatchedCount)

	del, err := s.store.Delete(s.ctx, camp.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), del.DeletedCount)
	del, err = s.store.Delete(s.ctx, camp.ID)
	s.Require().NoError(err)
	s.Zero(del.DeletedCount)
}
