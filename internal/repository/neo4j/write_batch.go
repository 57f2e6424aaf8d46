package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/safe"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// WriteBatch applies all node and edge upserts of a batch in one write
// transaction. Upserts are keyed by identity (address string; txid +
// output index + source), so replaying a batch after a partial failure
// creates no duplicates.
func (r *Repository) WriteBatch(ctx context.Context, batch model.GraphBatch) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("write_batch", err, started)
	}()

	if len(batch.Addresses) == 0 && len(batch.Edges) == 0 {
		return nil
	}

	addresses, err := addressParams(batch.Addresses)
	if err != nil {
		return err
	}
	edges, err := edgeParams(batch.Edges)
	if err != nil {
		return err
	}

	session := r.session(ctx)
	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil && err == nil {
			err = fmt.Errorf("close session: %w", closeErr)
		}
	}()

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := runStatement(ctx, tx, upsertAddressesQuery(), map[string]any{"addresses": addresses}); err != nil {
			return nil, fmt.Errorf("upsert addresses: %w", err)
		}
		if err := runStatement(ctx, tx, upsertEdgesQuery(), map[string]any{"edges": edges}); err != nil {
			return nil, fmt.Errorf("upsert edges: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		err = mapError(err)
		return err
	}
	return nil
}

func runStatement(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]any) error {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func upsertAddressesQuery() string {
	return `
UNWIND $addresses AS a
MERGE (n:Address {address: a.address})
ON CREATE SET
	n.first_seen_height = a.first_seen_height,
	n.last_seen_height = a.last_seen_height
ON MATCH SET
	n.first_seen_height = CASE WHEN a.first_seen_height < n.first_seen_height THEN a.first_seen_height ELSE n.first_seen_height END,
	n.last_seen_height = CASE WHEN a.last_seen_height > n.last_seen_height THEN a.last_seen_height ELSE n.last_seen_height END`
}

func upsertEdgesQuery() string {
	return `
UNWIND $edges AS e
MATCH (from:Address {address: e.from_address})
MATCH (to:Address {address: e.to_address})
MERGE (from)-[s:SENT {tx_id: e.tx_id, output_index: e.output_index, from_address: e.from_address}]->(to)
ON CREATE SET
	s.value_satoshi = e.value_satoshi,
	s.block_height = e.block_height,
	s.timestamp = e.timestamp`
}

func addressParams(nodes []model.AddressNode) ([]any, error) {
	params := make([]any, 0, len(nodes))
	for _, node := range nodes {
		first, err := safe.Int64(node.FirstSeenHeight)
		if err != nil {
			return nil, fmt.Errorf("address %s first seen height: %w", node.Address, err)
		}
		last, err := safe.Int64(node.LastSeenHeight)
		if err != nil {
			return nil, fmt.Errorf("address %s last seen height: %w", node.Address, err)
		}
		params = append(params, map[string]any{
			"address":           node.Address,
			"first_seen_height": first,
			"last_seen_height":  last,
		})
	}
	return params, nil
}

func edgeParams(edges []model.FlowEdge) ([]any, error) {
	params := make([]any, 0, len(edges))
	for _, edge := range edges {
		value, err := safe.Int64(edge.Value)
		if err != nil {
			return nil, fmt.Errorf("edge %s:%d value: %w", edge.TxID, edge.OutputIndex, err)
		}
		height, err := safe.Int64(edge.BlockHeight)
		if err != nil {
			return nil, fmt.Errorf("edge %s:%d block height: %w", edge.TxID, edge.OutputIndex, err)
		}
		params = append(params, map[string]any{
			"from_address":  edge.FromAddress,
			"to_address":    edge.ToAddress,
			"value_satoshi": value,
			"tx_id":         edge.TxID,
			"output_index":  int64(edge.OutputIndex),
			"block_height":  height,
			"timestamp":     edge.Timestamp.Unix(),
		})
	}
	return params, nil
}
