package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/listing-console/cian"
	httpapi "github.com/yourorg/listing-console/http"
	"github.com/yourorg/listing-console/internal/cache"
	"github.com/yourorg/listing-console/internal/config"
	"github.com/yourorg/listing-console/internal/events"
	"github.com/yourorg/listing-console/internal/logger"
	"github.com/yourorg/listing-console/internal/redisx"
	"github.com/yourorg/listing-console/internal/statussync"
	"github.com/yourorg/listing-console/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
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

	rdb := redisx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	pub := events.NewInMemory(256)
	objCache := cache.New()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inv := &cache.Invalidator{Pub: pub, Cache: objCache, Log: zlog}
	go inv.Run(rootCtx)

	var syncer *statussync.Syncer
	if cfg.CianAPIKey != "" {
		syncer = &statussync.Syncer{
			Client:    cian.NewClient(cfg.CianAPIKey),
			Redis:     rdb,
			Store:     st,
			Pub:       pub,
			Log:       zlog,
			ReportTTL: cfg.CianReportTTL,
		}
		go func() {
			if err := syncer.Run(rootCtx); err != nil {
				zlog.Warn("status sync stopped", zap.Error(err))
			}
		}()
	} else {
		zlog.Info("CIAN_API_KEY not set, status sync disabled")
	}

	router := BuildRouter(zlog,
		httpapi.ObjectsDeps{Store: st, Cache: objCache, Pub: pub, Log: zlog, ListLimit: cfg.ObjectsListLimit},
		httpapi.SyndicationDeps{Syncer: syncer})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-rootCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zlog.Info("listing-console listening", zap.Int("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zlog.Fatal("server error", zap.Error(err))
	}
}
