package fundsflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"go.uber.org/zap"
)

// State is the buffer manager's observable state.
type State string

const (
	StateIdle         State = "idle"
	StateAccumulating State = "accumulating"
	StateFlushing     State = "flushing"
)

// BufferConfig bounds accumulation before a flush is triggered.
type BufferConfig struct {
	// Enabled turns buffering on. When false every block flushes
	// immediately.
	Enabled bool
	// BlockLimit flushes once this many blocks are accumulated.
	BlockLimit int
	// TxLimit flushes once this many transactions are accumulated.
	TxLimit int
	// TrailDepth bounds the checkpoint's recent-block trail (the
	// reorg window).
	TrailDepth int
}

// Buffer accumulates graph entities across blocks and commits them as
// one transactional batch, advancing the checkpoint only after the
// write succeeds. The batch is retained on failure so a transient
// store error never discards data. Not safe for concurrent use; the
// ingester drives it from a single goroutine.
type Buffer struct {
	writer      GraphWriter
	checkpoints CheckpointStore
	cfg         BufferConfig
	metrics     IngesterMetrics
	bufMetrics  BufferMetrics
	logger      *zap.Logger

	state      State
	addresses  map[string]model.AddressNode
	edges      []model.FlowEdge
	blockCount int
	txCount    int
	last       model.BlockRef
	trail      []model.BlockRef
}

// NewBuffer constructs a Buffer. The trail seeds from the loaded
// checkpoint so rollback depth survives restarts.
func NewBuffer(
	writer GraphWriter,
	checkpoints CheckpointStore,
	cfg BufferConfig,
	metrics IngesterMetrics,
	bufMetrics BufferMetrics,
	logger *zap.Logger,
) *Buffer {
	if cfg.BlockLimit < 1 {
		cfg.BlockLimit = DefaultBufferBlockLimit
	}
	if cfg.TxLimit < 1 {
		cfg.TxLimit = DefaultBufferTxLimit
	}
	if cfg.TrailDepth < 1 {
		cfg.TrailDepth = DefaultReorgDepth
	}
	return &Buffer{
		writer:      writer,
		checkpoints: checkpoints,
		cfg:         cfg,
		metrics:     metrics,
		bufMetrics:  bufMetrics,
		logger:      logger,
		state:       StateIdle,
		addresses:   make(map[string]model.AddressNode),
	}
}

// State returns the current state of the flush state machine.
func (b *Buffer) State() State {
	return b.state
}

// Empty reports whether nothing is accumulated.
func (b *Buffer) Empty() bool {
	return b.blockCount == 0
}

// Checkpoint returns the checkpoint matching the newest appended
// block; it is durable only right after a successful Flush.
func (b *Buffer) Checkpoint() model.Checkpoint {
	return model.Checkpoint{
		Height: b.last.Height,
		Hash:   b.last.Hash,
		Trail:  append([]model.BlockRef(nil), b.trail...),
	}
}

// SeedTrail installs the recent-block trail from a loaded checkpoint.
func (b *Buffer) SeedTrail(cp model.Checkpoint) {
	b.trail = append([]model.BlockRef(nil), cp.Trail...)
	b.last = model.BlockRef{Height: cp.Height, Hash: cp.Hash}
}

// Append adds a block's entities to the in-memory batch.
func (b *Buffer) Append(ents BlockEntities) {
	for _, node := range ents.Addresses {
		existing, ok := b.addresses[node.Address]
		if !ok {
			b.addresses[node.Address] = node
			continue
		}
		if node.FirstSeenHeight < existing.FirstSeenHeight {
			existing.FirstSeenHeight = node.FirstSeenHeight
		}
		if node.LastSeenHeight > existing.LastSeenHeight {
			existing.LastSeenHeight = node.LastSeenHeight
		}
		b.addresses[node.Address] = existing
	}
	b.edges = append(b.edges, ents.Edges...)
	b.blockCount++
	b.txCount += ents.TxCount
	b.last = model.BlockRef{Height: ents.Block.Height, Hash: ents.Block.Hash}
	b.pushTrail(b.last)
	b.state = StateAccumulating

	b.bufMetrics.SetBufferedBlocks(b.blockCount)
	b.bufMetrics.SetBufferedTransactions(b.txCount)
}

// ShouldFlush reports whether accumulation has reached a flush
// trigger. Limits bound "at most this much before flushing"; a single
// over-limit block still flushes alone rather than being rejected.
func (b *Buffer) ShouldFlush() bool {
	if b.Empty() {
		return false
	}
	if !b.cfg.Enabled {
		return true
	}
	return b.blockCount >= b.cfg.BlockLimit || b.txCount >= b.cfg.TxLimit
}

// Flush commits the accumulated batch and advances the checkpoint to
// the last buffered block. On failure the batch is retained and the
// state returns to Accumulating for retry. Flushing an empty buffer
// is a no-op.
func (b *Buffer) Flush(ctx context.Context) error {
	if b.Empty() {
		return nil
	}

	b.state = StateFlushing
	started := time.Now()
	batch := b.batch()

	err := b.writer.WriteBatch(ctx, batch)
	if err == nil {
		err = b.checkpoints.SaveCheckpoint(ctx, model.Checkpoint{
			Height: b.last.Height,
			Hash:   b.last.Hash,
			Trail:  append([]model.BlockRef(nil), b.trail...),
		})
	}
	b.metrics.ObserveFlush(err, b.blockCount, b.txCount, started)
	if err != nil {
		// Retain the batch; a replayed write is idempotent.
		b.state = StateAccumulating
		return fmt.Errorf("flush batch ending at height %d: %w", b.last.Height, err)
	}

	b.metrics.SetCheckpointHeight(b.last.Height)
	b.logger.Info("batch committed",
		zap.Int("blocks", b.blockCount),
		zap.Int("transactions", b.txCount),
		zap.Int("edges", len(batch.Edges)),
		zap.Uint64("checkpointHeight", b.last.Height),
	)
	b.clear()
	return nil
}

// Reset discards the accumulated batch. Used after a reorg rollback,
// when buffered entities may belong to an orphaned segment.
func (b *Buffer) Reset(cp model.Checkpoint) {
	b.clear()
	b.SeedTrail(cp)
}

func (b *Buffer) batch() model.GraphBatch {
	addresses := make([]model.AddressNode, 0, len(b.addresses))
	for _, node := range b.addresses {
		addresses = append(addresses, node)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].Address < addresses[j].Address
	})
	return model.GraphBatch{
		Addresses: addresses,
		Edges:     b.edges,
	}
}

func (b *Buffer) clear() {
	b.addresses = make(map[string]model.AddressNode)
	b.edges = nil
	b.blockCount = 0
	b.txCount = 0
	b.state = StateIdle

	b.bufMetrics.SetBufferedBlocks(0)
	b.bufMetrics.SetBufferedTransactions(0)
}

func (b *Buffer) pushTrail(ref model.BlockRef) {
	b.trail = append([]model.BlockRef{ref}, b.trail...)
	if depth := b.cfg.TrailDepth; depth > 0 && len(b.trail) > depth {
		b.trail = b.trail[:depth]
	}
}
