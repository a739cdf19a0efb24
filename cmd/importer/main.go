package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"localwear-storefront/internal/config"
	"localwear-storefront/internal/importer"
	"localwear-storefront/internal/operator"
)

func main() {
	var (
		filePath string
		creds    operator.Credentials
	)
	flag.StringVar(&filePath, "file", "", "Path to product CSV (name,description,price,category,sizes,quantityInStock,imageUrl)")
	flag.StringVar(&creds.Email, "email", "", "Admin email; omit to reuse the saved session")
	flag.StringVar(&creds.Password, "password", "", "Admin password; defaults to ADMIN_PASSWORD")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("load .env: %v", err)
	}
	cfg := config.FromEnv()
	ctx := context.Background()

	admin, err := operator.AdminSession(ctx, cfg, logger, creds)
	if err != nil {
		logger.Fatalf("admin session: %v", err)
	}
	defer admin.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, admin.Client)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d products: %v", count, err)
	}

	fmt.Printf("Imported %d products into %s in %s\n", count, cfg.APIBase, time.Since(start).Truncate(time.Millisecond))
}
