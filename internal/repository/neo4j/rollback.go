package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/safe"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// RollbackAbove deletes all flow edges above the given height, so a
// reorged segment can be re-written from its divergence point. Address
// nodes are kept; they are never deleted and re-merging is idempotent.
func (r *Repository) RollbackAbove(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("rollback_above", err, started)
	}()

	h, err := safe.Int64(height)
	if err != nil {
		return fmt.Errorf("rollback height: %w", err)
	}

	session := r.session(ctx)
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := runStatement(ctx, tx, rollbackQuery(), map[string]any{"height": h}); err != nil {
			return nil, fmt.Errorf("delete edges above height %d: %w", height, err)
		}
		return nil, nil
	})
	if err != nil {
		err = mapError(err)
		return err
	}
	return nil
}

func rollbackQuery() string {
	return `
MATCH ()-[s:SENT]->()
WHERE s.block_height > $height
DELETE s`
}
