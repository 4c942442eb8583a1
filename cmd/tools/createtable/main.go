// Command createtable creates the mock backend's products table ahead of
// time, for databases where the runtime user may not run DDL.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/viccjiang/hexadmin/internal/backend/fakeapi"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := fakeapi.OpenDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := fakeapi.Migrate(db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
	log.Println("✓ mock_products table is up to date")
}
