// Command apistaked drives the staking engine as a standalone process:
// it loads configuration, opens a storage backend, wires a
// runtime.Engine, and advances a synthetic block loop calling
// OnInitialize/OnTimestampSet on a fixed interval. It does not
// implement consensus, networking, or RPC — those remain out of scope
// for this module, which has no peer-to-peer surface of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apistake/config"
	"apistake/core/state"
	"apistake/currency"
	"apistake/observability/logging"
	"apistake/observability/tracing"
	"apistake/runtime"
	"apistake/storage"
)

func main() {
	configFile := flag.String("config", "./apistaked.toml", "Path to the configuration file")
	memOnly := flag.Bool("mem", false, "Use an in-memory store instead of LevelDB (for local experimentation)")
	blockInterval := flag.Duration("block-interval", 2*time.Second, "Interval between synthetic blocks")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup("apistaked", cfg.Env)
	logger.Info("configuration loaded", "config_file", *configFile, "data_dir", cfg.DataDir)

	shutdownTracing, err := initTracing(cfg)
	if err != nil {
		logger.Error("failed to initialise tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if shutdownTracing != nil {
			_ = shutdownTracing(context.Background())
		}
	}()

	db, err := openDatabase(cfg, *memOnly)
	if err != nil {
		logger.Error("failed to open storage backend", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := state.New(db)
	cur := currency.NewMemory()
	engine := runtime.New(cfg.ToRuntime(), store, cur)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("apistaked running", "block_interval", blockInterval.String())
	runBlockLoop(ctx, logger, engine, *blockInterval)
	logger.Info("apistaked shutting down")
}

func initTracing(cfg *config.Config) (func(context.Context) error, error) {
	_, shutdown, err := tracing.Init(tracing.Config{ServiceName: "apistaked", Environment: cfg.Env})
	return shutdown, err
}

func openDatabase(cfg *config.Config, memOnly bool) (storage.Database, error) {
	if memOnly {
		return storage.NewMemDB(), nil
	}
	return storage.NewLevelDB(cfg.DataDir)
}

// runBlockLoop drives OnInitialize/OnTimestampSet at blockInterval
// cadence until ctx is cancelled, mirroring the shape of a real node's
// block-production loop without reimplementing consensus.
func runBlockLoop(ctx context.Context, logger *slog.Logger, engine *runtime.Engine, blockInterval time.Duration) {
	ticker := time.NewTicker(blockInterval)
	defer ticker.Stop()

	var blockNumber uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			blockNumber++
			if _, err := engine.OnInitialize(blockNumber); err != nil {
				logger.Error("on_initialize failed", "block", blockNumber, "error", err)
				continue
			}
			if err := engine.OnTimestampSet(); err != nil {
				logger.Error("on_timestamp_set failed", "block", blockNumber, "error", err)
				continue
			}
			era, err := engine.CurrentEra()
			if err != nil {
				logger.Error("current_era lookup failed", "block", blockNumber, "error", err)
				continue
			}
			logger.Info("block processed", "block", blockNumber, "era", era)
		}
	}
}
