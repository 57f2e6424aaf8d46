// Package fundsflow converts decoded blocks into a funds-flow graph
// and commits it in checkpointed batches.
package fundsflow

import (
	"math/bits"
	"sort"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/chain"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
)

// BlockEntities is the graph view of one block: address nodes deduped
// within the block and one flow edge per (output, source address).
type BlockEntities struct {
	Block     model.Block
	Addresses []model.AddressNode
	Edges     []model.FlowEdge
	TxCount   int
}

// Builder converts decoded transactions into graph entities.
type Builder struct{}

// NewBuilder constructs a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildBlock converts all transactions of a decoded block. Output
// ordering is preserved so edges map deterministically to
// (txid, output index, source) for idempotent replay.
func (b *Builder) BuildBlock(block *chain.DecodedBlock) BlockEntities {
	ents := BlockEntities{
		Block:   block.Block,
		TxCount: len(block.Txs),
	}

	seen := make(map[string]int)
	touch := func(address string) {
		if i, ok := seen[address]; ok {
			node := &ents.Addresses[i]
			if block.Block.Height < node.FirstSeenHeight {
				node.FirstSeenHeight = block.Block.Height
			}
			if block.Block.Height > node.LastSeenHeight {
				node.LastSeenHeight = block.Block.Height
			}
			return
		}
		seen[address] = len(ents.Addresses)
		ents.Addresses = append(ents.Addresses, model.AddressNode{
			Address:         address,
			FirstSeenHeight: block.Block.Height,
			LastSeenHeight:  block.Block.Height,
		})
	}

	for _, tx := range block.Txs {
		edges := buildEdges(tx)
		for _, edge := range edges {
			// The synthetic coinbase source gets a node too, so edge
			// upserts can always match both endpoints.
			touch(edge.FromAddress)
			touch(edge.ToAddress)
		}
		ents.Edges = append(ents.Edges, edges...)
	}

	return ents
}

// buildEdges derives the flow edges of one transaction. Coinbase
// transactions send each output's value from the synthetic coinbase
// source. Otherwise each distinct input address sends its full
// contribution, distributed across outputs pro-rata by output value
// (a single output receives each contribution whole); truncation
// remainders land on the source's largest output edge, so per-tx edge
// totals equal input totals exactly.
func buildEdges(tx model.Transaction) []model.FlowEdge {
	if tx.IsCoinbase {
		edges := make([]model.FlowEdge, 0, len(tx.Outputs))
		for _, out := range tx.Outputs {
			edges = append(edges, newEdge(tx, model.CoinbaseSource, out, out.Value))
		}
		return edges
	}

	sources, _ := inputContributions(tx)
	outTotal := tx.OutputTotal()
	if len(sources) == 0 || len(tx.Outputs) == 0 || outTotal == 0 {
		return nil
	}

	maxOut := 0
	for oi, out := range tx.Outputs {
		if out.Value > tx.Outputs[maxOut].Value {
			maxOut = oi
		}
	}

	shares := make([][]uint64, len(sources))
	for si, src := range sources {
		shares[si] = make([]uint64, len(tx.Outputs))
		assigned := uint64(0)
		for oi, out := range tx.Outputs {
			share := mulDiv(src.value, out.Value, outTotal)
			shares[si][oi] = share
			assigned += share
		}
		shares[si][maxOut] += src.value - assigned
	}

	// Output-major so edges keep the (txid, output index) order.
	edges := make([]model.FlowEdge, 0, len(tx.Outputs)*len(sources))
	for oi, out := range tx.Outputs {
		for si, src := range sources {
			edges = append(edges, newEdge(tx, src.address, out, shares[si][oi]))
		}
	}
	return edges
}

type contribution struct {
	address string
	value   uint64
}

// inputContributions aggregates input values per distinct source
// address, ordered by descending value then address for determinism.
func inputContributions(tx model.Transaction) ([]contribution, uint64) {
	byAddress := make(map[string]uint64)
	var total uint64
	for _, in := range tx.Inputs {
		if in.IsCoinbase {
			continue
		}
		byAddress[in.Address] += in.Value
		total += in.Value
	}

	sources := make([]contribution, 0, len(byAddress))
	for address, value := range byAddress {
		sources = append(sources, contribution{address: address, value: value})
	}
	sort.Slice(sources, func(i, j int) bool {
		if sources[i].value != sources[j].value {
			return sources[i].value > sources[j].value
		}
		return sources[i].address < sources[j].address
	})
	return sources, total
}

func newEdge(tx model.Transaction, from string, out model.Output, value uint64) model.FlowEdge {
	return model.FlowEdge{
		FromAddress: from,
		ToAddress:   out.Address,
		Value:       value,
		TxID:        tx.TxID,
		OutputIndex: out.Index,
		BlockHeight: tx.BlockHeight,
		Timestamp:   tx.Timestamp,
	}
}

// mulDiv computes value*part/total in 128-bit intermediate precision.
// Requires part <= total, which holds for output shares of a total.
func mulDiv(value, part, total uint64) uint64 {
	hi, lo := bits.Mul64(value, part)
	q, _ := bits.Div64(hi, lo, total)
	return q
}
