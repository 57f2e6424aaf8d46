// Package neo4j persists the funds-flow graph over the Bolt protocol.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics records graph store operation outcomes.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Repository implements the graph writer and checkpoint store against
// a Neo4j-compatible server (Neo4j, Memgraph) reached over Bolt.
type Repository struct {
	driver  neo4j.DriverWithContext
	metrics Metrics
	coin    model.Coin
	network model.Network
}

// NewRepository connects to the graph store with basic auth.
func NewRepository(ctx context.Context, url, username, password string, coin model.Coin, network model.Network, metrics Metrics) (*Repository, error) {
	if url == "" {
		return nil, errors.New("graph db url is required")
	}
	if metrics == nil {
		return nil, errors.New("repository metrics is required")
	}

	driver, err := neo4j.NewDriverWithContext(url, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create graph db driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify graph db connectivity: %w", mapError(err))
	}

	return &Repository{
		driver:  driver,
		metrics: metrics,
		coin:    coin,
		network: network,
	}, nil
}

// Close releases the driver's connection pool.
func (r *Repository) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *Repository) session(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

// checkpointID keys the single logical checkpoint record.
func (r *Repository) checkpointID() string {
	return fmt.Sprintf("funds-flow:%s:%s", r.coin, r.network)
}
