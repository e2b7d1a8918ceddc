// Package main is the entry point for the qrforge converter.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/qrforge/internal/config"
	"github.com/Faultbox/qrforge/internal/convert"
	"github.com/Faultbox/qrforge/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	res, err := convert.Run(cfg)
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("done",
		zap.String("output", res.Path),
		zap.Int("triangles", res.Triangles))
}
