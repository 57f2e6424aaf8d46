package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/bitcoin"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/fundsflow"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/metrics"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/model"
	"github.com/goodnatureofminers/fundsflow7000-backend/internal/repository/neo4j"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	Network         model.Network `long:"network" env:"BTC_GRAPH_NETWORK" description:"network name" required:"true"`
	RPCURL          string        `long:"rpc-url" env:"BTC_GRAPH_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser         string        `long:"rpc-user" env:"BTC_GRAPH_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword     string        `long:"rpc-password" env:"BTC_GRAPH_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRateLimit    int           `long:"rpc-rps" env:"BTC_GRAPH_RPC_RPS" description:"max RPC requests per second" default:"50"`
	HTTPTimeout     time.Duration `long:"http-timeout" env:"BTC_GRAPH_HTTP_TIMEOUT" description:"HTTP timeout for RPC requests" default:"30s"`
	GraphDBURL      string        `long:"graph-db-url" env:"BTC_GRAPH_DB_URL" description:"graph database Bolt URL" default:"bolt://localhost:7687"`
	GraphDBUser     string        `long:"graph-db-user" env:"BTC_GRAPH_DB_USER" description:"graph database username"`
	GraphDBPassword string        `long:"graph-db-password" env:"BTC_GRAPH_DB_PASSWORD" description:"graph database password"`
	StartHeight     uint64        `long:"start-height" env:"BTC_GRAPH_START_HEIGHT" description:"height to start from when no checkpoint exists" default:"0"`
	DisableBuffer   bool          `long:"disable-buffer" env:"BTC_GRAPH_DISABLE_BUFFER" description:"flush every block immediately instead of accumulating"`
	BlockLimit      int           `long:"buffer-block-limit" env:"BTC_GRAPH_BUFFER_BLOCK_LIMIT" description:"max buffered blocks before a flush" default:"10"`
	TxLimit         int           `long:"buffer-tx-limit" env:"BTC_GRAPH_BUFFER_TX_LIMIT" description:"max buffered transactions before a flush" default:"1000"`
	ReorgDepth      uint64        `long:"reorg-depth" env:"BTC_GRAPH_REORG_DEPTH" description:"max rollback depth on chain reorganization" default:"6"`
	Prefetch        int           `long:"prefetch" env:"BTC_GRAPH_PREFETCH" description:"blocks fetched concurrently ahead of processing" default:"4"`
	OnMalformed     string        `long:"on-malformed" env:"BTC_GRAPH_ON_MALFORMED" description:"malformed transaction policy: abort or skip" default:"abort" choice:"abort" choice:"skip"`
	MetricsAddr     string        `long:"metrics-addr" env:"BTC_GRAPH_METRICS_ADDR" description:"address for metrics server" default:":9090"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("btc graph ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := neo4j.NewRepository(ctx, cfg.GraphDBURL, cfg.GraphDBUser, cfg.GraphDBPassword,
		model.BTC, cfg.Network, metrics.NewGraphStore(model.BTC, cfg.Network))
	if err != nil {
		return fmt.Errorf("init graph repository: %w", err)
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Error("failed to close graph repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword, cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(model.BTC, cfg.Network), cfg.RPCRateLimit)

	ingesterMetrics := metrics.NewGraphIngester(model.BTC, cfg.Network)
	source, err := bitcoin.NewNodeSource(rpc, cfg.Network, bitcoin.MalformedPolicy(cfg.OnMalformed), ingesterMetrics, logger)
	if err != nil {
		return fmt.Errorf("init node source: %w", err)
	}

	buffer := fundsflow.NewBuffer(repo, repo, fundsflow.BufferConfig{
		Enabled:    !cfg.DisableBuffer,
		BlockLimit: cfg.BlockLimit,
		TxLimit:    cfg.TxLimit,
		TrailDepth: int(cfg.ReorgDepth),
	}, ingesterMetrics, ingesterMetrics, logger)

	svc, err := fundsflow.NewIngesterService(
		source,
		repo,
		repo,
		buffer,
		fundsflow.IngesterConfig{
			StartHeight: cfg.StartHeight,
			ReorgDepth:  cfg.ReorgDepth,
			Prefetch:    cfg.Prefetch,
		},
		ingesterMetrics,
		model.BTC,
		cfg.Network,
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string, timeout time.Duration) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	//if timeout > 0 {
	//	HTTPTimeout = timeout
	//}

	return rpcclient.New(cfg, nil)
}
