package fundsflow

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/chain"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/clock"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// IngesterConfig tunes the ingestion loop.
type IngesterConfig struct {
	// StartHeight is where indexing begins when no checkpoint exists.
	StartHeight uint64
	// ReorgDepth bounds the rollback window; divergence past it is
	// fatal.
	ReorgDepth uint64
	// Prefetch is how many consecutive heights are fetched
	// concurrently ahead of processing.
	Prefetch int
	// MaxAttempts bounds consecutive retries of transient failures.
	MaxAttempts int
}

// IngesterService drives the funds-flow pipeline: fetch, decode,
// build, buffer, commit, checkpoint. Writes and checkpoint
// advancement are strictly sequential by height; only block fetching
// runs concurrently.
type IngesterService struct {
	logger      *zap.Logger
	coin        model.Coin
	network     model.Network
	metrics     IngesterMetrics
	sleep       func(context.Context, time.Duration) error
	idleSleep   time.Duration
	source      chain.Source
	builder     *Builder
	buffer      *Buffer
	writer      GraphWriter
	checkpoints CheckpointStore
	cfg         IngesterConfig

	next          uint64
	checkpoint    model.Checkpoint
	hasCheckpoint bool
	restored      bool
}

// NewIngesterService builds an IngesterService with dependencies.
func NewIngesterService(
	source chain.Source,
	writer GraphWriter,
	checkpoints CheckpointStore,
	buffer *Buffer,
	cfg IngesterConfig,
	metrics IngesterMetrics,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
) (*IngesterService, error) {
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if cfg.Prefetch < 1 {
		cfg.Prefetch = DefaultPrefetch
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	return &IngesterService{
		logger:      logger,
		coin:        coin,
		network:     network,
		metrics:     metrics,
		sleep:       clock.SleepWithContext,
		idleSleep:   idleSleepDuration,
		source:      source,
		builder:     NewBuilder(),
		buffer:      buffer,
		writer:      writer,
		checkpoints: checkpoints,
		cfg:         cfg,
	}, nil
}

// Run starts the ingestion loop until the context is canceled or a
// fatal error occurs. Transient failures are retried with bounded
// exponential backoff; every fatal exit reports the last durable
// checkpoint height.
func (s *IngesterService) Run(ctx context.Context) error {
	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.runOnce(ctx)
		if err == nil {
			attempts = 0
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if !chain.Retryable(err) {
			s.logger.Error("fatal ingestion error",
				zap.Error(err),
				zap.Uint64("durableHeight", s.checkpoint.Height),
			)
			return err
		}

		attempts++
		if attempts >= s.cfg.MaxAttempts {
			s.logger.Error("retries exhausted",
				zap.Error(err),
				zap.Int("attempts", attempts),
				zap.Uint64("durableHeight", s.checkpoint.Height),
			)
			return fmt.Errorf("retries exhausted after %d attempts: %w", attempts, err)
		}
		delay := clock.Backoff(attempts, retryBaseDelay, retryMaxDelay)
		s.logger.Warn("run iteration failed, backing off",
			zap.Error(err),
			zap.Int("attempt", attempts),
			zap.Duration("sleep", delay),
		)
		if sleepErr := s.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}

func (s *IngesterService) runOnce(ctx context.Context) error {
	if !s.restored {
		if err := s.restore(ctx); err != nil {
			return err
		}
	}

	if s.hasCheckpoint {
		if err := s.checkReorg(ctx); err != nil {
			return err
		}
	}

	blocks, tipReached, err := s.prefetch(ctx)
	if err != nil {
		return err
	}

	for _, decoded := range blocks {
		ents := s.builder.BuildBlock(decoded)
		s.buffer.Append(ents)
		s.next = decoded.Block.Height + 1

		if s.buffer.ShouldFlush() {
			if err := s.flush(ctx); err != nil {
				return err
			}
		}
	}

	if tipReached {
		// Forced flush: nothing may stay unflushed while we idle at
		// the tip.
		if err := s.flush(ctx); err != nil {
			return err
		}
		s.logger.Debug("caught up with chain tip; sleeping",
			zap.Duration("sleep", s.idleSleep),
			zap.Uint64("nextHeight", s.next),
		)
		return s.sleep(ctx, s.idleSleep)
	}
	return nil
}

func (s *IngesterService) restore(ctx context.Context) error {
	cp, found, err := s.checkpoints.LoadCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	if found {
		s.checkpoint = cp
		s.hasCheckpoint = true
		s.buffer.SeedTrail(cp)
		s.next = cp.Height + 1
		s.metrics.SetCheckpointHeight(cp.Height)
		s.logger.Info("resuming from checkpoint",
			zap.Uint64("height", cp.Height),
			zap.String("hash", cp.Hash),
		)
	} else {
		s.next = s.cfg.StartHeight
		s.logger.Info("no checkpoint found; starting from configured height",
			zap.Uint64("height", s.next),
		)
	}
	s.restored = true
	return nil
}

func (s *IngesterService) flush(ctx context.Context) error {
	if s.buffer.Empty() {
		return nil
	}
	if err := s.buffer.Flush(ctx); err != nil {
		return err
	}
	s.checkpoint = s.buffer.Checkpoint()
	s.hasCheckpoint = true
	return nil
}

// checkReorg compares the node's hash at the checkpointed height with
// the stored hash; a mismatch triggers a bounded rollback.
func (s *IngesterService) checkReorg(ctx context.Context) error {
	nodeHash, err := s.source.BlockHash(ctx, s.checkpoint.Height)
	if err != nil {
		if errors.Is(err, chain.ErrBlockNotFound) {
			// The node's chain is now shorter than our checkpoint:
			// the checkpointed block was reorged away.
			return s.rollback(ctx, "")
		}
		return err
	}
	if nodeHash == s.checkpoint.Hash {
		return nil
	}
	return s.rollback(ctx, nodeHash)
}

// rollback walks the checkpoint trail to the newest block the node
// still agrees on, removes edges above it and re-points the
// checkpoint there. Divergence past the trail window is fatal.
func (s *IngesterService) rollback(ctx context.Context, nodeHash string) error {
	for i, ref := range s.checkpoint.Trail {
		if ref.Height >= s.checkpoint.Height {
			continue
		}
		if s.cfg.ReorgDepth > 0 && s.checkpoint.Height-ref.Height > s.cfg.ReorgDepth {
			break
		}
		hash, err := s.source.BlockHash(ctx, ref.Height)
		if err != nil {
			if errors.Is(err, chain.ErrBlockNotFound) {
				continue
			}
			return err
		}
		if hash != ref.Hash {
			continue
		}

		depth := s.checkpoint.Height - ref.Height
		s.metrics.ObserveReorg(depth)
		s.logger.Warn("reorg detected; rolling back",
			zap.Uint64("checkpointHeight", s.checkpoint.Height),
			zap.Uint64("rollbackHeight", ref.Height),
			zap.Uint64("depth", depth),
		)

		if err := s.writer.RollbackAbove(ctx, ref.Height); err != nil {
			return fmt.Errorf("rollback edges above height %d: %w", ref.Height, err)
		}
		rolled := model.Checkpoint{
			Height: ref.Height,
			Hash:   ref.Hash,
			Trail:  append([]model.BlockRef(nil), s.checkpoint.Trail[i:]...),
		}
		if err := s.checkpoints.SaveCheckpoint(ctx, rolled); err != nil {
			return fmt.Errorf("save rolled-back checkpoint: %w", err)
		}

		s.checkpoint = rolled
		s.buffer.Reset(rolled)
		s.next = ref.Height + 1
		s.metrics.SetCheckpointHeight(ref.Height)
		return nil
	}

	return &chain.ReorgError{
		Height:       s.checkpoint.Height,
		StoredHash:   s.checkpoint.Hash,
		NodeHash:     nodeHash,
		BeyondWindow: true,
	}
}

// prefetch fetches up to cfg.Prefetch consecutive heights from next
// concurrently and returns the contiguous prefix that succeeded.
// tipReached is set when any of the heights is past the node's tip.
func (s *IngesterService) prefetch(ctx context.Context) ([]*chain.DecodedBlock, bool, error) {
	count := s.cfg.Prefetch
	heights := make([]uint64, count)
	indexes := make([]int, count)
	for i := range heights {
		heights[i] = s.next + uint64(i)
		indexes[i] = i
	}

	results := make([]*chain.DecodedBlock, count)
	var tip atomic.Bool

	err := workerpool.Process(ctx, count, indexes, func(ctx context.Context, i int) error {
		started := time.Now()
		decoded, err := s.source.FetchBlock(ctx, heights[i])
		s.metrics.ObserveFetchBlock(err, started)
		if err != nil {
			if errors.Is(err, chain.ErrBlockNotFound) {
				tip.Store(true)
				return nil
			}
			return err
		}
		results[i] = decoded
		return nil
	}, nil)
	if err != nil {
		return nil, false, err
	}

	blocks := make([]*chain.DecodedBlock, 0, count)
	for _, decoded := range results {
		if decoded == nil {
			break
		}
		blocks = append(blocks, decoded)
	}
	return blocks, tip.Load(), nil
}
