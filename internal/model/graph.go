package model

import "time"

// CoinbaseSource is the synthetic source address attached to edges
// produced by generation transactions.
const CoinbaseSource = "coinbase"

// AddressNode is a persisted graph node keyed by address string.
// Balance is derivable from edges and never stored.
type AddressNode struct {
	Address         string
	FirstSeenHeight uint64
	LastSeenHeight  uint64
}

// FlowEdge is a persisted value transfer between two addresses.
// Identity is (TxID, OutputIndex, FromAddress); multiple edges between
// the same address pair are never merged.
type FlowEdge struct {
	FromAddress string
	ToAddress   string
	Value       uint64
	TxID        string
	OutputIndex uint32
	BlockHeight uint64
	Timestamp   time.Time
}

// BlockRef identifies a block by height and hash.
type BlockRef struct {
	Height uint64
	Hash   string
}

// Checkpoint records the last block fully committed to the graph
// store. A single logical record, overwritten atomically. Trail holds
// the most recent committed block refs (newest first, bounded by the
// reorg window) so a divergence point can be located without
// re-reading the node's history from genesis.
type Checkpoint struct {
	Height uint64
	Hash   string
	Trail  []BlockRef
}

// GraphBatch is the unit of accumulated entities committed to the
// graph store in one transactional write.
type GraphBatch struct {
	Addresses []AddressNode
	Edges     []FlowEdge
}
