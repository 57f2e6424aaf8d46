package neo4j

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func flowBatch(height uint64, txID string) model.GraphBatch {
	ts := time.Unix(1700000000, 0).UTC()
	return model.GraphBatch{
		Addresses: []model.AddressNode{
			{Address: "alice", FirstSeenHeight: height, LastSeenHeight: height},
			{Address: "bob", FirstSeenHeight: height, LastSeenHeight: height},
			{Address: "carol", FirstSeenHeight: height, LastSeenHeight: height},
		},
		Edges: []model.FlowEdge{
			{FromAddress: "alice", ToAddress: "bob", Value: 7000, TxID: txID, OutputIndex: 0, BlockHeight: height, Timestamp: ts},
			{FromAddress: "alice", ToAddress: "carol", Value: 3000, TxID: txID, OutputIndex: 1, BlockHeight: height, Timestamp: ts},
		},
	}
}

func (s *RepositorySuite) TestWriteBatch() {
	batch := flowBatch(5, strings.Repeat("a", 64))

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))

	s.Equal(int64(3), s.countNodes("Address"))
	s.Equal(int64(2), s.countEdges())
}

// Replaying a batch must create no duplicate nodes or edges: upserts
// are keyed by identity, which is what makes flush retries after a
// partial failure safe.
func (s *RepositorySuite) TestWriteBatch_replayCreatesNoDuplicates() {
	batch := flowBatch(5, strings.Repeat("a", 64))

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))
	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))

	s.Equal(int64(3), s.countNodes("Address"))
	s.Equal(int64(2), s.countEdges())

	result, err := neo4j.ExecuteQuery(s.testCtx, s.repo.driver,
		`MATCH (:Address {address: "alice"})-[r:SENT]->(:Address {address: "bob"})
RETURN r.value_satoshi AS value, r.block_height AS height`,
		nil, neo4j.EagerResultTransformer)
	s.Require().NoError(err)
	s.Require().Len(result.Records, 1)

	value, ok := result.Records[0].Get("value")
	s.Require().True(ok)
	s.Equal(int64(7000), value)
	height, ok := result.Records[0].Get("height")
	s.Require().True(ok)
	s.Equal(int64(5), height)
}

// Distinct output indexes of one transaction stay distinct edges even
// between the same address pair.
func (s *RepositorySuite) TestWriteBatch_keepsParallelEdges() {
	txID := strings.Repeat("b", 64)
	ts := time.Unix(1700000000, 0).UTC()
	batch := model.GraphBatch{
		Addresses: []model.AddressNode{
			{Address: "alice", FirstSeenHeight: 6, LastSeenHeight: 6},
			{Address: "bob", FirstSeenHeight: 6, LastSeenHeight: 6},
		},
		Edges: []model.FlowEdge{
			{FromAddress: "alice", ToAddress: "bob", Value: 100, TxID: txID, OutputIndex: 0, BlockHeight: 6, Timestamp: ts},
			{FromAddress: "alice", ToAddress: "bob", Value: 200, TxID: txID, OutputIndex: 1, BlockHeight: 6, Timestamp: ts},
		},
	}

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, batch))

	s.Equal(int64(2), s.countEdges())
}

func (s *RepositorySuite) TestWriteBatch_extendsAddressRange() {
	first := model.GraphBatch{
		Addresses: []model.AddressNode{{Address: "alice", FirstSeenHeight: 5, LastSeenHeight: 5}},
	}
	second := model.GraphBatch{
		Addresses: []model.AddressNode{{Address: "alice", FirstSeenHeight: 9, LastSeenHeight: 9}},
	}

	s.metrics.EXPECT().Observe("write_batch", gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.WriteBatch(s.testCtx, first))
	s.Require().NoError(s.repo.WriteBatch(s.testCtx, second))

	s.Equal(int64(1), s.countNodes("Address"))

	result, err := neo4j.ExecuteQuery(s.testCtx, s.repo.driver,
		`MATCH (n:Address {address: "alice"})
RETURN n.first_seen_height AS first, n.last_seen_height AS last`,
		nil, neo4j.EagerResultTransformer)
	s.Require().NoError(err)
	s.Require().Len(result.Records, 1)

	firstSeen, ok := result.Records[0].Get("first")
	s.Require().True(ok)
	s.Equal(int64(5), firstSeen)
	lastSeen, ok := result.Records[0].Get("last")
	s.Require().True(ok)
	s.Equal(int64(9), lastSeen)
}
