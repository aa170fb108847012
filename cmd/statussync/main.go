// Command statussync runs the syndication status sync on its own, outside
// the API process. Useful for one-off backfills (-once) or when the poll
// loop should live in a separate deployment.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/listing-console/cian"
	"github.com/yourorg/listing-console/internal/config"
	"github.com/yourorg/listing-console/internal/events"
	"github.com/yourorg/listing-console/internal/logger"
	"github.com/yourorg/listing-console/internal/redisx"
	"github.com/yourorg/listing-console/internal/statussync"
	"github.com/yourorg/listing-console/internal/store"
)

func main() {
	once := flag.Bool("once", false, "run a single sync and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.CianAPIKey == "" {
		log.Fatal("CIAN_API_KEY is required")
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zlog.Sync()

	st, err := store.Open(cfg.PostgresDSN)
	if err != nil {
		zlog.Fatal("store open failed", zap.Error(err))
	}
	defer st.DB.Close()

	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Ping(bootCtx); err != nil {
		cancel()
		zlog.Fatal("postgres ping failed", zap.Error(err))
	}
	if err := st.Migrate(bootCtx); err != nil {
		cancel()
		zlog.Fatal("postgres migrate failed", zap.Error(err))
	}
	cancel()

	syncer := &statussync.Syncer{
		Client:    cian.NewClient(cfg.CianAPIKey),
		Redis:     redisx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		Store:     st,
		Pub:       events.NewInMemory(256),
		Log:       zlog,
		ReportTTL: cfg.CianReportTTL,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if err := syncer.SyncOnce(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
			zlog.Fatal("sync failed", zap.Error(err))
		}
		return
	}

	if err := syncer.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("status sync stopped with error", zap.Error(err))
	}
}
