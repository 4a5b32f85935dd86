package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordbingo/internal/model"
	"github.com/mcoot/wordbingo/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSetAndGet() {
	s.Require().NoError(s.storage.Set(s.ctx, "game:ABCDE", []byte(`{"id":"game:ABCDE"}`), time.Hour))

	value, err := s.storage.Get(s.ctx, "game:ABCDE")
	s.Require().NoError(err)
	s.Equal(`{"id":"game:ABCDE"}`, string(value))
	s.Equal(time.Hour, s.mini.TTL("game:ABCDE"))
}

func (s *StorageSuite) TestGetMissingKey() {
	_, err := s.storage.Get(s.ctx, "game:NOPE0")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestKeyExpires() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", []byte("v"), time.Minute))

	s.mini.FastForward(time.Minute)

	_, err := s.storage.Get(s.ctx, "k")
	s.ErrorIs(err, model.ErrKeyNotFound)
}

func (s *StorageSuite) TestDelete() {
	s.Require().NoError(s.storage.Set(s.ctx, "k", []byte("v"), 0))
	s.Require().NoError(s.storage.Delete(s.ctx, "k"))
	s.Require().NoError(s.storage.Delete(s.ctx, "k"))
	s.False(s.mini.Exists("k"))
}

func (s *StorageSuite) TestSetIfAbsent() {
	ok, err := s.storage.SetIfAbsent(s.ctx, "lock:game:ABCDE", []byte("locked"), 5*time.Second)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(5*time.Second, s.mini.TTL("lock:game:ABCDE"))

	ok, err = s.storage.SetIfAbsent(s.ctx, "lock:game:ABCDE", []byte("locked"), 5*time.Second)
	s.Require().NoError(err)
	s.False(ok)

	s.mini.FastForward(5 * time.Second)

	ok, err = s.storage.SetIfAbsent(s.ctx, "lock:game:ABCDE", []byte("locked"), 5*time.Second)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StorageSuite) TestGamesRepositoryRoundTrip() {
	games := storage.NewGames(s.storage, 2*time.Hour)
	game := &model.Game{
		ID:       model.GameIDFromRoomCode("abcde"),
		RoomCode: "ABCDE",
		HostID:   "host-1",
		Size:     3,
		Status:   model.GameStatusWaiting,
		Players:  map[model.PlayerID]model.Player{},
	}

	s.Require().NoError(games.Save(s.ctx, game))
	s.True(s.mini.Exists("game:ABCDE"))
	s.Equal(2*time.Hour, s.mini.TTL("game:ABCDE"))

	loaded, err := games.Get(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal(game.HostID, loaded.HostID)
	s.Equal(game.Size, loaded.Size)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
