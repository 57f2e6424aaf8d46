package neo4j

import (
	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
)

func (s *RepositorySuite) TestCheckpoint_roundTrip() {
	s.metrics.EXPECT().Observe("load_checkpoint", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("save_checkpoint", gomock.Nil(), gomock.Any()).Times(1)

	_, found, err := s.repo.LoadCheckpoint(s.testCtx)
	s.Require().NoError(err)
	s.False(found)

	cp := model.Checkpoint{
		Height: 12,
		Hash:   "hash12",
		Trail: []model.BlockRef{
			{Height: 12, Hash: "hash12"},
			{Height: 11, Hash: "hash11"},
			{Height: 10, Hash: "hash10"},
		},
	}
	s.Require().NoError(s.repo.SaveCheckpoint(s.testCtx, cp))

	got, found, err := s.repo.LoadCheckpoint(s.testCtx)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(cp, got)
}

// The checkpoint is one logical record: saving again overwrites it
// instead of accumulating history.
func (s *RepositorySuite) TestCheckpoint_overwrite() {
	s.metrics.EXPECT().Observe("save_checkpoint", gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("load_checkpoint", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.SaveCheckpoint(s.testCtx, model.Checkpoint{
		Height: 5, Hash: "hash5", Trail: []model.BlockRef{{Height: 5, Hash: "hash5"}},
	}))
	s.Require().NoError(s.repo.SaveCheckpoint(s.testCtx, model.Checkpoint{
		Height: 6, Hash: "hash6", Trail: []model.BlockRef{{Height: 6, Hash: "hash6"}, {Height: 5, Hash: "hash5"}},
	}))

	got, found, err := s.repo.LoadCheckpoint(s.testCtx)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(uint64(6), got.Height)
	s.Equal("hash6", got.Hash)
	s.Len(got.Trail, 2)

	s.Equal(int64(1), s.countNodes("Checkpoint"))
}
