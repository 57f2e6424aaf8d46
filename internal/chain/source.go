// Package chain defines interfaces and structs shared between
// funds-flow ingestion components.
package chain

import (
	"context"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
)

// Source provides decoded block data for sequential ingestion.
type Source interface {
	// LatestHeight returns the node's best-known block height.
	LatestHeight(ctx context.Context) (uint64, error)
	// BlockHash returns the node's hash at a height, for reorg checks.
	BlockHash(ctx context.Context, height uint64) (string, error)
	// FetchBlock retrieves and decodes the block at height. It fails
	// with ErrBlockNotFound past the tip and ErrNodeUnavailable on
	// transport errors; it never silently skips a height.
	FetchBlock(ctx context.Context, height uint64) (*DecodedBlock, error)
}

// DecodedBlock wraps a block and its fully resolved transactions.
type DecodedBlock struct {
	Block model.Block
	Txs   []model.Transaction
}

// TxCount returns the number of transactions in the block.
func (b *DecodedBlock) TxCount() int {
	return len(b.Txs)
}
