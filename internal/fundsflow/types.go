package fundsflow

import (
	"context"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=source_mocks_test.go -package=$GOPACKAGE github.com/goodnatureofminers/fundsflow7000-backend/internal/chain Source

type (
	// GraphWriter commits entity batches to the graph store.
	GraphWriter interface {
		// WriteBatch applies one transactional write containing all
		// node and edge upserts for the batch. Idempotent under
		// retry: upserts are keyed by identity.
		WriteBatch(ctx context.Context, batch model.GraphBatch) error
		// RollbackAbove removes flow edges above the given height, so
		// a reorged segment can be re-written from its divergence
		// point.
		RollbackAbove(ctx context.Context, height uint64) error
	}

	// CheckpointStore persists the last fully committed block.
	CheckpointStore interface {
		LoadCheckpoint(ctx context.Context) (model.Checkpoint, bool, error)
		SaveCheckpoint(ctx context.Context, cp model.Checkpoint) error
	}

	// IngesterMetrics records ingestion loop outcomes.
	IngesterMetrics interface {
		ObserveFetchBlock(err error, started time.Time)
		ObserveFlush(err error, blocks, txs int, started time.Time)
		ObserveReorg(depth uint64)
		SetCheckpointHeight(height uint64)
	}

	// BufferMetrics records buffer occupancy.
	BufferMetrics interface {
		SetBufferedBlocks(count int)
		SetBufferedTransactions(count int)
	}
)
