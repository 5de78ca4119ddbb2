package main

import (
	"log"

	"github.com/joho/godotenv"

	"goeda/internal/config"
	"goeda/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig.AI.APIKey == "" {
		log.Println("[Main] EURI_API_KEY not set; profiling works, AI insights will report a configuration error")
	}

	server := ui.NewServer(appConfig)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
