// Package model defines domain models for funds-flow ingestion.
package model

import "time"

// Block represents a chain block fetched from the node. Blocks are
// transient: they live only until their entities are flushed.
type Block struct {
	Coin      Coin
	Network   Network
	Height    uint64
	Hash      string
	PrevHash  string
	Timestamp time.Time
	TxIDs     []string
}
