package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "gearshare-backend/internal/api/http"
	"gearshare-backend/internal/catalog"
	"gearshare-backend/internal/config"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/pricing"
	"gearshare-backend/internal/repository/postgres"
	"gearshare-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearShare backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Equipment reference data: embedded seed unless a file override is set.
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			logger.Error("Failed to load catalog", "path", cfg.Catalog.Path, "error", err)
			log.Fatalf("Failed to load catalog: %v", err)
		}
		logger.Info("Loaded catalog from file", "path", cfg.Catalog.Path, "records", cat.Len())
	} else {
		cat = catalog.Default()
		logger.Info("Loaded embedded catalog", "records", cat.Len())
	}

	store := postgres.NewStore(db)
	engine := pricing.NewEngine(cat)
	listingSvc := service.NewListingService(store.ListingRepository, cat, engine)

	handler := httpapi.NewHandler(cat, engine, listingSvc)
	router := httpapi.NewRouter(handler)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
