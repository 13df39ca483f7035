package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/repository/feeds"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/scheduler"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/server/handlers"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/server/router"
	inventorysvc "github.com/Mohnish-Sivakumar/FTCInventory/internal/service/inventory"
	transfersvc "github.com/Mohnish-Sivakumar/FTCInventory/internal/service/transfer"
	"github.com/Mohnish-Sivakumar/FTCInventory/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var source feeds.Source
	if cfg.Sheets.Enabled() {
		sheetsSource, err := feeds.NewSheetsSource(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets feed source", zap.Error(err))
		}
		source = sheetsSource
		baseLogger.Info("reading feeds through the Sheets API")
	} else {
		source = feeds.NewHTTPSource(cfg.Feeds, baseLogger.Named("repo.feeds"))
	}

	store := inventorysvc.NewStore()
	inventoryService := inventorysvc.NewService(store, cfg.Locations.Neutral, baseLogger.Named("svc.inventory"))
	submitter := transfersvc.NewSubmitter(cfg.Submit, inventoryService, baseLogger.Named("svc.transfer"))

	refresher := scheduler.NewRefresher(cfg.Polling, source, store, baseLogger.Named("refresher"))
	refresher.Start()
	defer refresher.Stop()

	handler := handlers.NewInventoryHandler(inventoryService, submitter, cfg.Locations, baseLogger.Named("handlers.inventory"))
	engine := router.New(handler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
