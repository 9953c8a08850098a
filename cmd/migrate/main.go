package main

import (
	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/database"
	"kalavpp_backend/internal/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("database connection failed", "error", err.Error())
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", "error", err.Error())
	}
	logger.Info("migration complete")
}
