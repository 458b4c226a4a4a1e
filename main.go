// @title Exam Admin API
// @version 1.0
// @description Backend service for exam administration: authoring, sessions, scoring and reports.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"exam_admin_backend/internal/app"
	"exam_admin_backend/internal/config"
	"exam_admin_backend/pkg/configwatcher"
	"exam_admin_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(raw interface{}) {
		if newCfg, ok := raw.(*config.Config); ok {
			application.ApplyConfig(newCfg)
		}
	})

	application.Run()
}
