package fundsflow

import "time"

const (
	// DefaultBufferBlockLimit flushes after this many buffered blocks.
	DefaultBufferBlockLimit = 10
	// DefaultBufferTxLimit flushes after this many buffered
	// transactions.
	DefaultBufferTxLimit = 1000
	// DefaultReorgDepth bounds the rollback window.
	DefaultReorgDepth = 6
	// DefaultPrefetch is the look-ahead fetch window.
	DefaultPrefetch = 4

	defaultMaxAttempts = 8
	retryBaseDelay     = 500 * time.Millisecond
	retryMaxDelay      = time.Minute
	idleSleepDuration  = 5 * time.Second
)
