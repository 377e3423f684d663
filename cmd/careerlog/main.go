package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/careerlog/careerlog/internal/app"
	"github.com/careerlog/careerlog/internal/logging"
	"github.com/careerlog/careerlog/internal/model"
	"github.com/careerlog/careerlog/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	created, err := model.EnsureConfig(configPath)
	if err != nil {
		return err
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if created {
		logger.Info("wrote default config", zap.String("path", configPath))
	}

	s, err := store.NewSQLiteStore(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("open database failed", zap.String("path", cfg.Database.Path), zap.Error(err))
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	logger.Info("starting", zap.String("database", cfg.Database.Path))

	p := tea.NewProgram(app.New(s, logger, *cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		return err
	}
	return nil
}
