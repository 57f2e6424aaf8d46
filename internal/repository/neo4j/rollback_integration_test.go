package neo4j

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
)

func (s *RepositorySuite) TestRollbackAbove() {
	ts := time.Unix(1700000000, 0).UTC()
	batch := model.GraphBatch{
		Addresses: []model.AddressNode{
			{Address: "alice", FirstSeenHeight: 5, LastSeenHeight: 7},
			{Address: "bob", FirstSeenHeight: 5, LastSeenHeight: 7},
		},
		Edges: []model.FlowEdge{
			{FromAddress: "alice", ToAddress: "bob", Value: 100, TxID: strings.Repeat("a", 64), OutputIndex: 0, BlockHeight: 5, Timestamp: ts},
			{FromAddress: "alice", ToAddress: "bob", Value: 200, TxID: strings.Repeat("b", 64), OutputIndex: 0, BlockHeight: 6, Timestamp: ts},
			{FromAddress: "bob", ToAddress: "alice", Value: 300, TxID: strings.Repeat("c", 64), OutputIndex: 0, BlockHeight: 7, Timestamp: ts},
		},
	}

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("rollback_above", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))
	s.Require().Equal(int64(3), s.countEdges())

	s.Require().NoError(s.repo.RollbackAbove(s.testCtx, 5))

	// Only the height-5 edge survives; address nodes are never deleted.
	s.Equal(int64(1), s.countEdges())
	s.Equal(int64(2), s.countNodes("Address"))
	s.Equal(int64(1), s.countQuery(
		"MATCH ()-[r:SENT]->() WHERE r.block_height = 5 RETURN count(r) AS c"))
}

// Rolling back at the current tip height is a no-op.
func (s *RepositorySuite) TestRollbackAbove_nothingAbove() {
	ts := time.Unix(1700000000, 0).UTC()
	batch := model.GraphBatch{
		Addresses: []model.AddressNode{
			{Address: "alice", FirstSeenHeight: 5, LastSeenHeight: 5},
			{Address: "bob", FirstSeenHeight: 5, LastSeenHeight: 5},
		},
		Edges: []model.FlowEdge{
			{FromAddress: "alice", ToAddress: "bob", Value: 100, TxID: strings.Repeat("d", 64), OutputIndex: 0, BlockHeight: 5, Timestamp: ts},
		},
	}

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(1)
	s.metrics.EXPECT().Observe("rollback_above", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))
	s.Require().NoError(s.repo.RollbackAbove(s.testCtx, 5))

	s.Equal(int64(1), s.countEdges())
}
