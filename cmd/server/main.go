package main

import (
	"log"

	"github.com/staylens/rental-market-go/internal/api"
	"github.com/staylens/rental-market-go/internal/config"
	"github.com/staylens/rental-market-go/internal/database"
	"github.com/staylens/rental-market-go/internal/repository"
	"github.com/staylens/rental-market-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	svc, err := service.NewFromFiles(cfg)
	if err != nil {
		log.Fatal("Failed to build report service: ", err)
	}

	var repo *repository.SnapshotRepository
	if cfg.Server.DBPath != "" {
		db, err := database.Open(cfg.Server.DBPath)
		if err != nil {
			log.Fatal("Failed to initialize database: ", err)
		}
		defer db.Close()
		repo = repository.NewSnapshotRepository(db)
	}

	router := api.SetupRouter(svc, repo)

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
