// Package bitcoin implements Bitcoin-specific chain access for the
// funds-flow pipeline.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/pkg/safe"
)

// BtcToSatoshis converts a BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// BuildBlockFromVerbose maps a btcjson block result into a model.Block.
func BuildBlockFromVerbose(src btcjson.GetBlockVerboseTxResult, network model.Network) (model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d overflow: %w", src.Height, err)
	}

	txIDs := make([]string, 0, len(src.Tx))
	for _, tx := range src.Tx {
		txIDs = append(txIDs, tx.Txid)
	}

	return model.Block{
		Coin:      model.BTC,
		Network:   network,
		Height:    height,
		Hash:      src.Hash,
		PrevHash:  src.PreviousHash,
		Timestamp: time.Unix(src.Time, 0).UTC(),
		TxIDs:     txIDs,
	}, nil
}
