package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"kiosk/internal/api"
	"kiosk/internal/config"
	"kiosk/internal/journal"
	"kiosk/internal/logger"
	"kiosk/internal/monitoring"
	"kiosk/internal/ordering"
	"kiosk/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
)

var (
	configFile = flag.String("config", "", "Path to YAML configuration file")
	logFile    = flag.String("log-file", "", "Override the log file from the configuration")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kiosk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	log, closer, err := logger.Open("kiosk", cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	menu, err := cfg.Catalog()
	if err != nil {
		return err
	}

	receipts, err := journal.Open(cfg.JournalDSN)
	if err != nil {
		log.Error("startup", "failed to open receipt journal", err)
		return err
	}
	defer receipts.Close()

	monitor := monitoring.NewMonitor()
	if cfg.Metrics.Enabled {
		shutdown := startMetricsServer(cfg, monitor, log)
		defer shutdown()
	}

	session := ordering.NewSession(menu)
	kiosk := api.NewKioskAPI(session, receipts, monitor, log)

	opts := []tea.ProgramOption{}
	if cfg.Fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	log.Info("startup", "kiosk started", slog.Int("dishes", menu.Len()), slog.String("journal", cfg.JournalDSN))

	p := tea.NewProgram(ui.New(kiosk, ui.Options{
		Title:      cfg.Title,
		ImageDir:   cfg.ImageDir,
		Fullscreen: cfg.Fullscreen,
	}), opts...)
	if _, err := p.Run(); err != nil {
		log.Error("shutdown", "kiosk screen failed", err)
		return fmt.Errorf("error running program: %w", err)
	}

	log.Info("shutdown", "kiosk stopped")
	return nil
}

func startMetricsServer(cfg *config.Config, monitor *monitoring.Monitor, log *logger.Logger) func() {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	server := monitoring.NewServer(cfg.MetricsAddr(), cfg.Metrics.Path, monitor)
	go func() {
		log.Info("metrics", "starting metrics server", slog.String("addr", cfg.MetricsAddr()))
		if err := server.ListenAndServe(); err != nil {
			log.Error("metrics", "metrics server stopped", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("metrics", "metrics server shutdown error", err)
		}
	}
}
