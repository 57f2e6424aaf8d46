package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/chain"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/safe"
	"go.uber.org/zap"
)

type (
	// SourceMetrics records decode outcomes for the node source.
	SourceMetrics interface {
		ObserveSkippedTransaction()
	}
)

// NodeSource implements chain.Source for Bitcoin: it fetches verbose
// blocks over RPC and decodes every transaction into the funds-flow
// model, resolving inputs through a run-local output resolver that
// falls back to node lookups for older transactions.
type NodeSource struct {
	rpc      RPC
	decoder  ScriptDecoder
	resolver *chain.OutputResolver
	network  model.Network
	policy   MalformedPolicy
	metrics  SourceMetrics
	logger   *zap.Logger
}

// NewNodeSource creates a NodeSource for Bitcoin.
func NewNodeSource(
	rpc RPC,
	network model.Network,
	policy MalformedPolicy,
	metrics SourceMetrics,
	logger *zap.Logger,
) (*NodeSource, error) {
	if metrics == nil {
		return nil, errors.New("source metrics is required")
	}
	decoder, err := NewScriptDecoder(network)
	if err != nil {
		return nil, err
	}

	s := &NodeSource{
		rpc:     rpc,
		decoder: decoder,
		network: network,
		policy:  policy,
		metrics: metrics,
		logger:  logger,
	}
	s.resolver = chain.NewOutputResolver(&nodeLookup{rpc: rpc, decoder: decoder})
	return s, nil
}

// LatestHeight returns the latest block height from the node.
func (s *NodeSource) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, classifyRPCError(err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// BlockHash returns the node's block hash at the given height.
func (s *NodeSource) BlockHash(ctx context.Context, height uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if height > math.MaxInt64 {
		return "", fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return "", classifyRPCError(err)
	}
	return hash.String(), nil
}

// FetchBlock retrieves and decodes the block at the given height.
func (s *NodeSource) FetchBlock(ctx context.Context, height uint64) (*chain.DecodedBlock, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, classifyRPCError(err))
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, classifyRPCError(err))
	}

	block, err := BuildBlockFromVerbose(*src, s.network)
	if err != nil {
		return nil, err
	}

	txs := make([]model.Transaction, 0, len(src.Tx))
	for _, rawTx := range src.Tx {
		tx, err := s.decodeTransaction(ctx, rawTx, block)
		if err != nil {
			if errors.Is(err, chain.ErrMalformedTransaction) && s.policy == MalformedSkip {
				s.metrics.ObserveSkippedTransaction()
				s.logger.Error("skipping malformed transaction",
					zap.String("txid", rawTx.Txid),
					zap.Uint64("height", block.Height),
					zap.Error(err),
				)
				continue
			}
			return nil, err
		}
		txs = append(txs, tx)
	}

	return &chain.DecodedBlock{Block: block, Txs: txs}, nil
}

func (s *NodeSource) decodeTransaction(ctx context.Context, tx btcjson.TxRawResult, block model.Block) (model.Transaction, error) {
	outputs, prevOutputs, err := s.convertOutputs(tx)
	if err != nil {
		return model.Transaction{}, err
	}
	// Seed before resolving inputs so in-block spends (which always
	// reference earlier transactions in block order) hit the cache.
	s.resolver.Seed(tx.Txid, prevOutputs)

	isCoinbase := len(tx.Vin) > 0 && tx.Vin[0].IsCoinBase()

	inputs := make([]model.Input, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		if err := ctx.Err(); err != nil {
			return model.Transaction{}, err
		}
		if vin.IsCoinBase() {
			inputs = append(inputs, model.Input{IsCoinbase: true})
			continue
		}
		if vin.Txid == "" {
			return model.Transaction{}, fmt.Errorf("%w: tx %s input without prev txid", chain.ErrMalformedTransaction, tx.Txid)
		}
		prev, err := s.resolver.Resolve(ctx, tx.Txid, vin.Txid, vin.Vout)
		if err != nil {
			return model.Transaction{}, err
		}
		inputs = append(inputs, model.Input{
			PrevTxID: vin.Txid,
			PrevVout: vin.Vout,
			Value:    prev.Value,
			Address:  prev.Address,
		})
	}

	decoded := model.Transaction{
		Coin:        model.BTC,
		Network:     s.network,
		TxID:        tx.Txid,
		BlockHeight: block.Height,
		Timestamp:   block.Timestamp,
		IsCoinbase:  isCoinbase,
		Inputs:      inputs,
		Outputs:     outputs,
	}

	if !isCoinbase && decoded.InputTotal() < decoded.OutputTotal() {
		return model.Transaction{}, fmt.Errorf("%w: tx %s outputs %d exceed inputs %d",
			chain.ErrMalformedTransaction, tx.Txid, decoded.OutputTotal(), decoded.InputTotal())
	}

	return decoded, nil
}

func (s *NodeSource) convertOutputs(tx btcjson.TxRawResult) ([]model.Output, []chain.PrevOutput, error) {
	outputs := make([]model.Output, 0, len(tx.Vout))
	prevOutputs := make([]chain.PrevOutput, 0, len(tx.Vout))

	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return nil, nil, fmt.Errorf("%w: tx %s output %d negative value: %f",
				chain.ErrMalformedTransaction, tx.Txid, idx, vout.Value)
		}
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: tx %s output index overflow: %v",
				chain.ErrMalformedTransaction, tx.Txid, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: tx %s output %d value: %v",
				chain.ErrMalformedTransaction, tx.Txid, idx, err)
		}
		address, err := outputAddress(s.decoder, tx.Txid, index, vout)
		if err != nil {
			return nil, nil, fmt.Errorf("decode addresses for tx %s output %d: %w", tx.Txid, idx, err)
		}

		outputs = append(outputs, model.Output{Index: index, Value: value, Address: address})
		prevOutputs = append(prevOutputs, chain.PrevOutput{Value: value, Address: address})
	}
	return outputs, prevOutputs, nil
}

// outputAddress picks the destination address of an output. Outputs
// without a decodable address keep their value flow under a synthetic
// nonstandard destination instead of being dropped.
func outputAddress(decoder ScriptDecoder, txid string, index uint32, vout btcjson.Vout) (string, error) {
	addresses, err := decoder.decodeAddresses(vout)
	if err != nil {
		return "", err
	}
	if len(addresses) > 0 {
		return addresses[0], nil
	}
	return fmt.Sprintf("nonstandard:%s:%d", txid, index), nil
}

// nodeLookup resolves committed transactions' outputs via RPC.
type nodeLookup struct {
	rpc     RPC
	decoder ScriptDecoder
}

func (l *nodeLookup) TransactionOutputs(ctx context.Context, txid string) ([]chain.PrevOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %s: %w", txid, err)
	}
	tx, err := l.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return nil, classifyTxLookupError(err)
	}

	outputs := make([]chain.PrevOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", txid, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", txid, idx, err)
		}
		address, err := outputAddress(l.decoder, txid, index, vout)
		if err != nil {
			return nil, fmt.Errorf("decode addresses for tx %s output %d: %w", txid, idx, err)
		}
		outputs = append(outputs, chain.PrevOutput{Value: value, Address: address})
	}
	return outputs, nil
}
