// main.go
package main

import (
	"context"
	"log"
	"time"

	"electromart/cmd"
	"electromart/internal/data/repository"
	"electromart/internal/wire"
	"electromart/pkg/database"
	"electromart/pkg/realtime"
	"electromart/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database. A missing database config is not fatal: the
	// app serves empty reads and rejects writes until one is supplied.
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if db == nil {
		logger.Warn("Database not configured, running without a store")
	} else {
		defer db.Close()
		logger.Info("Database connected successfully")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Periodic sweep of long-expired sessions
	if db != nil {
		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if err := repos.Session.CleanExpiredSessions(context.Background()); err != nil {
					logger.Warn("Session cleanup failed", zap.Error(err))
				}
			}
		}()
	}

	// Change feed source shares the store's connection string
	var source realtime.ConnSource
	if config.Database.Configured() {
		source = realtime.NewConnSource(database.ConnString(config.Database))
	}
	feed := realtime.NewManager(source, logger)
	defer feed.UnsubscribeAll()

	// Wire all dependencies
	app := wire.Wiring(repos, feed, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
