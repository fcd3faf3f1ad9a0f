// migrate_gorm.go - Run this file to apply GORM migrations without starting the API
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"log"

	"github.com/sahilchouksey/academia-api/config"
	"github.com/sahilchouksey/academia-api/database"
)

func main() {
	log.Println("=== GORM Migration ===")

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	// Initialize GORM connection
	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Health check
	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	mappings, err := database.BuildMappings(database.Models...)
	if err != nil {
		log.Fatal("Failed to build schema mappings:", err)
	}

	log.Println("✅ All migrations completed successfully!")
	log.Println("✅ Database connection healthy!")
	log.Println("\nTables:")
	for _, m := range mappings {
		log.Printf("  - %s", m.Table)
	}
}
