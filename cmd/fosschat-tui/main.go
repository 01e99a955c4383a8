package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fosschat/internal/app"
	"fosschat/internal/config"
	"fosschat/internal/tui"
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

	// Log to a file so zap output does not fight the TUI for the terminal.
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"fosschat-tui.log"}
	zcfg.ErrorOutputPaths = []string{"fosschat-tui.log"}
	zl, err := zcfg.Build()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	svc, err := app.Assemble(cfg, logger)
	if err != nil {
		logger.Fatalw("assembly failed", "error", err)
	}

	m := tui.New(svc)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
