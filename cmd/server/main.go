package main

import (
	"fmt"

	"bugbounty-tracker/internal/config"
	"bugbounty-tracker/internal/database"
	"bugbounty-tracker/internal/logging"
	"bugbounty-tracker/internal/server"
	"bugbounty-tracker/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db, err := database.Open(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	r := server.NewRouter(cfg, store.New(db), logger)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
