package main

import (
	"fmt"
	"os"

	"patient-followup/database"
	"patient-followup/database/seeders"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate - Run database migrations")
		fmt.Println("  go run tools/migrate.go seed    - Run migrations and seed demo data")
		return
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.RunMigrations(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "seed":
		fmt.Println("🚀 Running database migrations...")
		if err := database.RunMigrations(); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		seeders.SeedDemoProtocol(database.GetDB())
		fmt.Println("✅ Seeding completed successfully!")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, seed")
	}
}
