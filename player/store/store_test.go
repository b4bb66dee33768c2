package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/Ftotnem/player-roster/shared/models"
)

// PlayerStoreSuite runs the same contract against every PlayerStore implementation.
type PlayerStoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) PlayerStore
	store    PlayerStore
	ctx      context.Context
}

func TestMemoryPlayerStore(t *testing.T) {
	suite.Run(t, &PlayerStoreSuite{newStore: func(t *testing.T) PlayerStore {
		return NewMemoryPlayerStore()
	}})
}

func TestRedisPlayerStore(t *testing.T) {
	suite.Run(t, &PlayerStoreSuite{newStore: func(t *testing.T) PlayerStore {
		mini := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRedisPlayerStore(client)
	}})
}

func TestSQLitePlayerStore(t *testing.T) {
	suite.Run(t, &PlayerStoreSuite{newStore: func(t *testing.T) PlayerStore {
		s, err := NewSQLitePlayerStore(context.Background(), ":memory:")
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		return s
	}})
}

func (s *PlayerStoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *PlayerStoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func newPlayer(name string, experience int) *models.Player {
	return &models.Player{
		Name:           name,
		Title:          "Wanderer",
		Race:           models.RaceHobbit,
		Profession:     models.ProfessionRogue,
		Birthday:       1262304000000, // 2010-01-01
		Experience:     experience,
		Level:          1,
		UntilNextLevel: 10,
	}
}

func (s *PlayerStoreSuite) TestSaveAssignsIncreasingIDs() {
	first, err := s.store.Save(s.ctx, newPlayer("Frodo", 100))
	s.Require().NoError(err)
	second, err := s.store.Save(s.ctx, newPlayer("Sam", 200))
	s.Require().NoError(err)

	s.Positive(first.ID)
	s.Greater(second.ID, first.ID)
}

func (s *PlayerStoreSuite) TestSaveWritesIDBack() {
	p := newPlayer("Frodo", 100)
	saved, err := s.store.Save(s.ctx, p)
	s.Require().NoError(err)
	s.Equal(saved.ID, p.ID)
}

func (s *PlayerStoreSuite) TestFindByIDRoundTrip() {
	p := newPlayer("Merry", 300)
	p.Banned = true
	saved, err := s.store.Save(s.ctx, p)
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(*saved, *found)
}

func (s *PlayerStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(s.ctx, 42)
	s.ErrorIs(err, ErrPlayerNotFound)
}

func (s *PlayerStoreSuite) TestSaveExistingOverwrites() {
	saved, err := s.store.Save(s.ctx, newPlayer("Pippin", 10))
	s.Require().NoError(err)

	saved.Title = "Guard of the Citadel"
	saved.Experience = 5000
	_, err = s.store.Save(s.ctx, saved)
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal("Guard of the Citadel", found.Title)
	s.Equal(5000, found.Experience)

	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PlayerStoreSuite) TestFindAllOrderedByID() {
	for _, name := range []string{"Bilbo", "Frodo", "Sam", "Rosie"} {
		_, err := s.store.Save(s.ctx, newPlayer(name, 0))
		s.Require().NoError(err)
	}

	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	for i := 1; i < len(all); i++ {
		s.Less(all[i-1].ID, all[i].ID)
	}
	s.Equal("Bilbo", all[0].Name)
	s.Equal("Rosie", all[3].Name)
}

func (s *PlayerStoreSuite) TestFindAllEmpty() {
	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *PlayerStoreSuite) TestDelete() {
	saved, err := s.store.Save(s.ctx, newPlayer("Boromir", 900))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Delete(s.ctx, saved.ID))

	_, err = s.store.FindByID(s.ctx, saved.ID)
	s.ErrorIs(err, ErrPlayerNotFound)

	all, err := s.store.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *PlayerStoreSuite) TestDeleteNotFound() {
	s.ErrorIs(s.store.Delete(s.ctx, 7), ErrPlayerNotFound)
}
