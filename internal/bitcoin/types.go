package bitcoin

import (
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPC is the subset of node RPC operations the source needs.
	RPC interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
	}
)

// MalformedPolicy decides what FetchBlock does with a structurally
// invalid transaction.
type MalformedPolicy string

const (
	// MalformedAbort fails the whole block fetch.
	MalformedAbort MalformedPolicy = "abort"
	// MalformedSkip drops the transaction with an explicit gap marker
	// (error log + counter) and keeps decoding.
	MalformedSkip MalformedPolicy = "skip"
)
