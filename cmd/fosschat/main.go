package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fosschat/internal/app"
	"fosschat/internal/config"
	"fosschat/internal/server"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	svc, err := app.Assemble(cfg, logger)
	if err != nil {
		logger.Fatalw("assembly failed", "error", err)
	}

	srv := server.New(svc, cfg.Server.StaticDir, cfg.Server.AllowedOrigins, logger)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
