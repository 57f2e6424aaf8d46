package bitcoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/chain"
)

// classifyRPCError maps node RPC failures onto the pipeline taxonomy.
// Heights past the tip surface as chain.ErrBlockNotFound; everything
// else (transport errors, timeouts, node-side internal errors) is
// treated as chain.ErrNodeUnavailable and retried by the caller.
func classifyRPCError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		// ErrRPCOutOfRange is btcd's answer to getblockhash past the
		// tip; Bitcoin Core answers -8 (invalid parameter) and -5
		// (block not found) depending on version.
		if rpcErr.Code == btcjson.ErrRPCOutOfRange ||
			rpcErr.Code == btcjson.ErrRPCBlockNotFound ||
			rpcErr.Code == btcjson.ErrRPCInvalidParameter {
			return fmt.Errorf("%w: %s", chain.ErrBlockNotFound, rpcErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", chain.ErrNodeUnavailable, err)
}

// classifyTxLookupError is like classifyRPCError for transaction
// lookups, where an unknown txid must not be confused with a missing
// block: it maps to chain.ErrTxNotFound so the resolver can report an
// unresolved input.
func classifyTxLookupError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		// btcd answers ErrRPCNoTxInfo for an unknown txid; Bitcoin
		// Core answers -5 (invalid address or key), the same code.
		if rpcErr.Code == btcjson.ErrRPCNoTxInfo {
			return fmt.Errorf("%w: %s", chain.ErrTxNotFound, rpcErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", chain.ErrNodeUnavailable, err)
}
