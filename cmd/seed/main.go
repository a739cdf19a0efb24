package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"localwear-storefront/internal/config"
	"localwear-storefront/internal/operator"
	"localwear-storefront/internal/seed"
)

func main() {
	var creds operator.Credentials
	flag.StringVar(&creds.Email, "email", "", "Admin email; omit to reuse the saved session")
	flag.StringVar(&creds.Password, "password", "", "Admin password; defaults to ADMIN_PASSWORD")
	flag.Parse()

	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)
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

	created, err := seed.Apply(ctx, admin.Client)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied, %d products created", created)
}
