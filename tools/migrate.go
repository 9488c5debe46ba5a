package main

import (
	"context"
	"fmt"
	"os"

	"admission-portal/config"
	"admission-portal/database"
	"admission-portal/services/cleanup"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate  - Create or update the schema")
		fmt.Println("  go run tools/migrate.go cleanup  - Delete stale unverified accounts once")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		// InitDB migrates the schema before returning.
		if _, err := database.InitDB(cfg.DB); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "cleanup":
		db, err := database.InitDB(cfg.DB)
		if err != nil {
			fmt.Printf("❌ Database connection failed: %v\n", err)
			os.Exit(1)
		}
		deleted, err := cleanup.NewCleaner(db, cfg.Cleanup.Retention).Run(context.Background())
		if err != nil {
			fmt.Printf("❌ Cleanup failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ Deleted %d unverified accounts\n", deleted)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, cleanup")
	}
}
