package main

import (
	"context"
	"flag"
	"os"

	"github.com/beetracked/fleet-ops/config"
	"github.com/beetracked/fleet-ops/internal/app"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

var configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")

func main() {
	flag.Parse()

	ctx := context.Background()
	log := logger.InitLogger("fleet-ops", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		os.Exit(1)
	}

	log = logger.InitLogger("fleet-ops", cfg.Log.Level)

	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
