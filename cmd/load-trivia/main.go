package main

import (
	"flag"
	"log"

	"trivia/internal/config"
	"trivia/internal/db"
)

func main() {
	filePath := flag.String("file", "trivia.csv", "path to a category,answer,question csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	loaded, err := db.LoadTriviaLibrary(conn, *filePath)
	if err != nil {
		log.Fatalf("failed to load trivia: %v", err)
	}
	log.Printf("loaded %d trivia", loaded)
}
