package api

import (
	"os"

	"Quill/config"
	"Quill/controllers"
	"Quill/seed"
	"Quill/utils/logger"

	"github.com/joho/godotenv"
)

var server = controllers.Server{}

func init() {
	// Load .env only outside production; deployed config comes from the
	// environment.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.LogLevel, cfg.LogPath)
	defer logger.Log.Sync()

	if err := server.Initialize(cfg); err != nil {
		logger.Sugar.Fatalw("initialize failed", "err", err)
	}

	if !cfg.IsProduction() && os.Getenv("SEED_DB") == "true" {
		seed.Load(server.DB)
	}

	addr := ":" + cfg.Port
	if err := server.Run(addr); err != nil {
		logger.Sugar.Fatalw("server stopped", "err", err)
	}
}
