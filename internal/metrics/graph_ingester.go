package metrics

import (
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "fetch_block_total",
		Help:      "Count of block fetch+decode attempts.",
	}, []string{"coin", "network", "status"})

	ingesterFetchBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "fetch_block_duration_seconds",
		Help:      "Duration of fetching and decoding a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "flush_total",
		Help:      "Count of batch flush attempts.",
	}, []string{"coin", "network", "status"})

	ingesterFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "flush_duration_seconds",
		Help:      "Duration of committing a batch to the graph store.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterFlushBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "flush_blocks",
		Help:      "Number of blocks per flushed batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"coin", "network"})

	ingesterFlushTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "flush_transactions",
		Help:      "Number of transactions per flushed batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"coin", "network"})

	ingesterReorgTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "reorg_total",
		Help:      "Count of chain reorganizations handled by rollback.",
	}, []string{"coin", "network"})

	ingesterReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "reorg_depth",
		Help:      "Rollback depth of handled reorganizations.",
		Buckets:   prometheus.LinearBuckets(1, 1, 12),
	}, []string{"coin", "network"})

	ingesterCheckpointHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "checkpoint_height",
		Help:      "Height of the last fully committed block.",
	}, []string{"coin", "network"})

	ingesterBufferedBlocks = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "buffered_blocks",
		Help:      "Blocks currently accumulated in the flush buffer.",
	}, []string{"coin", "network"})

	ingesterBufferedTransactions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "buffered_transactions",
		Help:      "Transactions currently accumulated in the flush buffer.",
	}, []string{"coin", "network"})

	ingesterSkippedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_ingester",
		Name:      "skipped_transactions_total",
		Help:      "Count of malformed transactions skipped under the skip policy.",
	}, []string{"coin", "network"})
)

// GraphIngester records ingestion pipeline outcomes.
type GraphIngester struct {
	coin    model.Coin
	network model.Network
}

// NewGraphIngester constructs a metrics collector for the ingester.
func NewGraphIngester(coin model.Coin, network model.Network) *GraphIngester {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &GraphIngester{coin: coin, network: network}
}

func (m GraphIngester) ObserveFetchBlock(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterFetchBlockTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterFetchBlockDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

func (m GraphIngester) ObserveFlush(err error, blocks, txs int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterFlushTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterFlushDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		ingesterFlushBlocks.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(blocks))
		ingesterFlushTransactions.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(txs))
	}
}

func (m GraphIngester) ObserveReorg(depth uint64) {
	ingesterReorgTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
	ingesterReorgDepth.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(depth))
}

func (m GraphIngester) SetCheckpointHeight(height uint64) {
	ingesterCheckpointHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}

func (m GraphIngester) SetBufferedBlocks(count int) {
	ingesterBufferedBlocks.WithLabelValues(string(m.coin), string(m.network)).Set(float64(count))
}

func (m GraphIngester) SetBufferedTransactions(count int) {
	ingesterBufferedTransactions.WithLabelValues(string(m.coin), string(m.network)).Set(float64(count))
}

func (m GraphIngester) ObserveSkippedTransaction() {
	ingesterSkippedTransactions.WithLabelValues(string(m.coin), string(m.network)).Inc()
}
