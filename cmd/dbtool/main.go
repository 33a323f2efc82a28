package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/config"
	"tour-route-service/internal/platform/db"
)

func main() {
	config.LoadDotEnv()

	databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", ""))
	seedPath := config.Get("SEED_PATH", "data/seeds/cities.json")

	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	if databaseURL != "" {
		conn, err = db.Open(databaseURL)
		dialect = repositories.Postgres
	} else {
		conn, err = db.OpenSqlite(config.Get("DB_PATH", "data/app.db"))
		dialect = repositories.Sqlite
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeed(conn, dialect, seedPath)
}

func initAndSeed(conn *sql.DB, dialect repositories.Dialect, seedPath string) {
	log.Println("Initializing database schema...")
	var err error
	if dialect == repositories.Postgres {
		err = repositories.InitPostgresSchema(conn)
	} else {
		err = repositories.InitSchema(conn)
	}
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(context.Background(), conn, seedPath, dialect); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
