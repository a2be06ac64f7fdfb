package main

import (
	"context"
	"log"
	"os"

	"importexport-hub/internal/config"
	"importexport-hub/internal/db"
	"importexport-hub/internal/importer"
	productrepo "importexport-hub/internal/repository/product"
)

func main() {
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if len(os.Args) < 2 {
		logger.Fatalf("usage: importer <catalog.csv>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatalf("open catalog: %v", err)
	}
	defer file.Close()

	cfg := config.FromEnv()
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(file, repo)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}
	logger.Printf("imported %d products", count)
}
