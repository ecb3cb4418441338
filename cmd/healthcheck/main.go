package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/breaching/moodix/internal/config"
	"github.com/breaching/moodix/internal/database"
	"github.com/breaching/moodix/internal/services"
	"github.com/breaching/moodix/internal/utils"
)

// Container health probe: checks the HTTP port first, then falls back to a
// direct database check when the server is unreachable.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := utils.PingServer(cfg.Port); err == nil {
		fmt.Println("server responding")
		os.Exit(0)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	result := services.HealthCheck(cfg, db, zap.NewNop())

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}
	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
