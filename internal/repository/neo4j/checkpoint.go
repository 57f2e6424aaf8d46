package neo4j

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/safe"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// LoadCheckpoint reads the single checkpoint record. found is false
// when the store has never been written.
func (r *Repository) LoadCheckpoint(ctx context.Context) (cp model.Checkpoint, found bool, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("load_checkpoint", err, started)
	}()

	result, err := neo4j.ExecuteQuery(ctx, r.driver,
		`MATCH (c:Checkpoint {id: $id}) RETURN c.height AS height, c.hash AS hash, c.trail AS trail`,
		map[string]any{"id": r.checkpointID()},
		neo4j.EagerResultTransformer,
	)
	if err != nil {
		err = fmt.Errorf("load checkpoint: %w", mapError(err))
		return model.Checkpoint{}, false, err
	}
	if len(result.Records) == 0 {
		return model.Checkpoint{}, false, nil
	}

	record := result.Records[0]
	height, ok := record.Get("height")
	if !ok {
		err = fmt.Errorf("checkpoint record missing height")
		return model.Checkpoint{}, false, err
	}
	h, ok := height.(int64)
	if !ok || h < 0 {
		err = fmt.Errorf("checkpoint height %v is not a non-negative integer", height)
		return model.Checkpoint{}, false, err
	}
	hash, _ := record.Get("hash")
	hashStr, ok := hash.(string)
	if !ok {
		err = fmt.Errorf("checkpoint record missing hash")
		return model.Checkpoint{}, false, err
	}

	cp = model.Checkpoint{Height: uint64(h), Hash: hashStr}
	if rawTrail, ok := record.Get("trail"); ok && rawTrail != nil {
		entries, ok := rawTrail.([]any)
		if !ok {
			err = fmt.Errorf("checkpoint trail %v is not a list", rawTrail)
			return model.Checkpoint{}, false, err
		}
		cp.Trail, err = parseTrail(entries)
		if err != nil {
			return model.Checkpoint{}, false, err
		}
	}
	return cp, true, nil
}

// SaveCheckpoint overwrites the checkpoint record in one write
// transaction. It is only called after a batch commit succeeds.
func (r *Repository) SaveCheckpoint(ctx context.Context, cp model.Checkpoint) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("save_checkpoint", err, started)
	}()

	height, err := safe.Int64(cp.Height)
	if err != nil {
		return fmt.Errorf("checkpoint height: %w", err)
	}

	_, err = neo4j.ExecuteQuery(ctx, r.driver,
		`MERGE (c:Checkpoint {id: $id})
SET c.height = $height, c.hash = $hash, c.trail = $trail, c.updated_at = timestamp()`,
		map[string]any{
			"id":     r.checkpointID(),
			"height": height,
			"hash":   cp.Hash,
			"trail":  formatTrail(cp.Trail),
		},
		neo4j.EagerResultTransformer,
	)
	if err != nil {
		err = fmt.Errorf("save checkpoint: %w", mapError(err))
		return err
	}
	return nil
}

// Trail entries are stored as "height:hash" strings, newest first.
func formatTrail(trail []model.BlockRef) []any {
	entries := make([]any, 0, len(trail))
	for _, ref := range trail {
		entries = append(entries, fmt.Sprintf("%d:%s", ref.Height, ref.Hash))
	}
	return entries
}

func parseTrail(entries []any) ([]model.BlockRef, error) {
	trail := make([]model.BlockRef, 0, len(entries))
	for _, entry := range entries {
		s, ok := entry.(string)
		if !ok {
			return nil, fmt.Errorf("trail entry %v is not a string", entry)
		}
		height, hash, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("trail entry %q is not height:hash", s)
		}
		h, err := strconv.ParseUint(height, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("trail entry %q height: %w", s, err)
		}
		trail = append(trail, model.BlockRef{Height: h, Hash: hash})
	}
	return trail, nil
}
