package main

import (
	"context"
	"log"

	"github.com/fabi0dev/amby/internal/bootstrap"
	"github.com/fabi0dev/amby/internal/config"
	"github.com/fabi0dev/amby/internal/server"
	"github.com/fabi0dev/amby/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting reindex consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
