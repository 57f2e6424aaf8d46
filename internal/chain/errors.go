package chain

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying pipeline failures. Components wrap these
// with context; callers match with errors.Is.
var (
	// ErrNodeUnavailable marks transient node connectivity/timeout
	// failures. Retryable with backoff.
	ErrNodeUnavailable = errors.New("node unavailable")
	// ErrBlockNotFound marks a height beyond the node's current tip.
	// Not retryable; it means "caught up, wait and re-poll".
	ErrBlockNotFound = errors.New("block not found")
	// ErrStoreUnavailable marks transient graph store failures.
	// Retryable with backoff.
	ErrStoreUnavailable = errors.New("graph store unavailable")
	// ErrConstraintViolation marks a schema constraint failure on
	// write. Fatal: it indicates a data-model bug.
	ErrConstraintViolation = errors.New("graph constraint violation")
	// ErrMalformedTransaction marks structurally invalid transaction
	// data. Handled per the configured malformed-tx policy.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrTxNotFound marks a transaction the node does not know. The
	// resolver escalates it as an UnresolvedInputError.
	ErrTxNotFound = errors.New("transaction not found")
)

// UnresolvedInputError reports an input whose referenced output could
// not be found. Retryable once; a repeat means prerequisite blocks are
// missing from the dataset.
type UnresolvedInputError struct {
	TxID     string
	PrevTxID string
	PrevVout uint32
}

func (e *UnresolvedInputError) Error() string {
	return fmt.Sprintf("tx %s: input reference %s:%d unresolved", e.TxID, e.PrevTxID, e.PrevVout)
}

// ReorgError reports chain divergence at a checkpointed height. Within
// the configured window the pipeline rolls back; beyond it the error
// is fatal.
type ReorgError struct {
	Height       uint64
	StoredHash   string
	NodeHash     string
	BeyondWindow bool
}

func (e *ReorgError) Error() string {
	if e.BeyondWindow {
		return fmt.Sprintf("reorg at height %d exceeds rollback window (stored %s, node %s)", e.Height, e.StoredHash, e.NodeHash)
	}
	return fmt.Sprintf("reorg detected at height %d (stored %s, node %s)", e.Height, e.StoredHash, e.NodeHash)
}

// Retryable reports whether an error is transient and worth another
// bounded attempt with backoff.
func Retryable(err error) bool {
	return errors.Is(err, ErrNodeUnavailable) || errors.Is(err, ErrStoreUnavailable)
}
