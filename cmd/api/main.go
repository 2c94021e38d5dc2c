package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/config"
	"github.com/hamed0406/nethealth/internal/health"
	"github.com/hamed0406/nethealth/internal/history"
	"github.com/hamed0406/nethealth/internal/httpapi"
	"github.com/hamed0406/nethealth/internal/logging"
	"github.com/hamed0406/nethealth/internal/publish"
	"github.com/hamed0406/nethealth/internal/scheduler"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	var store history.Store
	if cfg.HistoryPath != "" {
		s, err := history.OpenSQLite(cfg.HistoryPath)
		if err != nil {
			logger.Fatal("history_open_failed", zap.String("path", cfg.HistoryPath), zap.Error(err))
		}
		defer s.Close()
		store = s
	} else {
		store = history.NewMemory()
	}
	tracker := history.NewTracker(store, logger)

	checker := health.New(logger, tracker)

	api := httpapi.NewServer(logger, checker, tracker)
	api.AdminAPIKeys = cfg.AdminAPIKeys
	api.TriggerRPM = cfg.TriggerRPM
	api.TriggerBurst = cfg.TriggerBurst

	runner := scheduler.NewRunner(logger, checker,
		publish.Multi{api, &publish.LogSink{Logger: logger}},
		cfg.CheckInterval,
	)
	go runner.Run(context.Background())

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
