package metrics

import (
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	graphStoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_store",
		Name:      "operations_total",
		Help:      "Count of graph store operations.",
	}, []string{"operation", "coin", "network", "status"})
	graphStoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fundsflow7000",
		Subsystem: "graph_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of graph store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// GraphStore tracks metrics for queries against the graph database.
type GraphStore struct {
	coin    model.Coin
	network model.Network
}

// NewGraphStore constructs a metrics collector for graph store calls.
func NewGraphStore(coin model.Coin, network model.Network) *GraphStore {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &GraphStore{coin: coin, network: network}
}

// Observe records a single store operation outcome and duration.
func (m GraphStore) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	graphStoreOperationsTotal.WithLabelValues(operation, string(m.coin), string(m.network), status).Inc()
	graphStoreOperationDuration.WithLabelValues(operation, string(m.coin), string(m.network), status).Observe(time.Since(started).Seconds())
}
