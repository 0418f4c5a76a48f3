package main

import (
	"log"

	"github.com/belenos68/glucolife-app/config"
	"github.com/belenos68/glucolife-app/internal/database"
	"github.com/belenos68/glucolife-app/internal/router"
	"github.com/belenos68/glucolife-app/internal/server"
	"github.com/belenos68/glucolife-app/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)

	// The API stays up without the AI collaborator; meal analysis then
	// returns 503 while everything else keeps working.
	var advisor service.IAdvisorService
	llmService, err := service.NewLLMService()
	if err != nil {
		log.Printf("Warning: meal analysis disabled: %v", err)
	} else {
		advisor = llmService
	}

	r := router.SetupRouter(db, authService, advisor, cfg)

	srv := server.New(r)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
