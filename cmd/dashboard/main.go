package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"grantcli/internal/app"
	"grantcli/internal/config"
	"grantcli/internal/infrastructure"
)

func main() {
	dir := flag.String("dir", "", "directory holding _CLEANED.csv files (default: pipeline.data_dir)")
	port := flag.Int("port", 0, "port to listen on (default: server.port)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Pipeline.DataDir = *dir
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
	infrastructure.CloseLogFile()
}
