package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

//go:generate mockgen -source=$GOFILE -destination=resolver_mocks_test.go -package=$GOPACKAGE

// PrevOutput is the resolved view of a prior transaction output: the
// amount and destination address an input spends.
type PrevOutput struct {
	Value   uint64
	Address string
}

// NodeLookup fetches the outputs of an already-committed transaction
// from the node, for references that predate the current run.
type NodeLookup interface {
	TransactionOutputs(ctx context.Context, txid string) ([]PrevOutput, error)
}

// OutputResolver resolves input references against outputs seen during
// the current run, falling back to a node lookup for older
// transactions. Lookup results are cached for the lifetime of the
// resolver. Safe for concurrent use by prefetch workers.
type OutputResolver struct {
	node NodeLookup

	mu    sync.Mutex
	local map[string][]PrevOutput
}

// NewOutputResolver constructs an OutputResolver backed by the node.
func NewOutputResolver(node NodeLookup) *OutputResolver {
	return &OutputResolver{
		node:  node,
		local: make(map[string][]PrevOutput),
	}
}

// Seed registers a transaction's outputs so same-run references
// resolve without a node round trip.
// maxLocalOutputs bounds the run-local cache; past it the cache is
// dropped wholesale and older references fall back to node lookups.
const maxLocalOutputs = 100_000

func (r *OutputResolver) Seed(txid string, outputs []PrevOutput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.local) >= maxLocalOutputs {
		r.local = make(map[string][]PrevOutput)
	}
	r.local[txid] = outputs
}

// Resolve returns the output an input spends. A miss against the node
// is retried once, since replication lag can cause transient misses;
// a repeat miss escalates as UnresolvedInputError.
func (r *OutputResolver) Resolve(ctx context.Context, spendingTxID, prevTxID string, prevVout uint32) (PrevOutput, error) {
	r.mu.Lock()
	outputs, ok := r.local[prevTxID]
	r.mu.Unlock()
	if !ok {
		var err error
		outputs, err = r.lookup(ctx, prevTxID)
		if err != nil {
			// One retry covers ordering/replication lag.
			outputs, err = r.lookup(ctx, prevTxID)
			if err != nil {
				if errors.Is(err, ErrTxNotFound) {
					return PrevOutput{}, &UnresolvedInputError{
						TxID:     spendingTxID,
						PrevTxID: prevTxID,
						PrevVout: prevVout,
					}
				}
				return PrevOutput{}, fmt.Errorf("resolve outputs for tx %s: %w", prevTxID, err)
			}
		}
		r.Seed(prevTxID, outputs)
	}

	if int(prevVout) >= len(outputs) {
		return PrevOutput{}, &UnresolvedInputError{
			TxID:     spendingTxID,
			PrevTxID: prevTxID,
			PrevVout: prevVout,
		}
	}
	return outputs[prevVout], nil
}

func (r *OutputResolver) lookup(ctx context.Context, txid string) ([]PrevOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.node.TransactionOutputs(ctx, txid)
}
