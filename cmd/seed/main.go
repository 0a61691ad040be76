// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"allot/internal/domain/auth"
	"allot/internal/domain/catalogs/distributor"
	"allot/internal/domain/catalogs/party"
	"allot/internal/domain/catalogs/ticket"
	"allot/internal/infrastructure/storage/postgres"
	"allot/internal/infrastructure/storage/postgres/auth_repo"
	"allot/internal/infrastructure/storage/postgres/catalog_repo"
	"allot/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	userRepo := auth_repo.NewUserRepo(txManager)

	exists, err := userRepo.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		log.Infow("admin user already exists", "username", username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := auth.NewUser(username, string(hash))
	user.FullName = "Administrator"
	user.IsAdmin = true

	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Infow("admin user created", "username", username, "id", user.ID.String())
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	ticketService := ticket.NewService(catalog_repo.NewTicketRepo(txManager))
	distributorService := distributor.NewService(catalog_repo.NewDistributorRepo(txManager))
	partyService := party.NewService(catalog_repo.NewPartyRepo(txManager))

	for _, name := range []string{"M5", "D10", "D25", "D30", "E200"} {
		t := ticket.New(name)
		if err := ticketService.Create(ctx, t); err != nil {
			// Duplicate names are fine on repeated runs
			log.Warnw("skipping ticket", "name", name, "error", err)
			continue
		}
		log.Infow("ticket created", "name", t.Name, "multiplier", t.Multiplier())
	}

	demoDistributors := []string{"Sri Lakshmi Agencies", "Meenakshi Lottery House"}
	for _, name := range demoDistributors {
		d := distributor.New(name)
		if err := distributorService.Create(ctx, d); err != nil {
			log.Warnw("skipping distributor", "name", name, "error", err)
			continue
		}
		log.Infow("distributor created", "name", d.Name, "code", d.Code)
	}

	demoParties := []string{"Ganesh Lottery Centre", "Murugan Stores"}
	for _, name := range demoParties {
		p := party.New(name)
		if err := partyService.Create(ctx, p); err != nil {
			log.Warnw("skipping party", "name", name, "error", err)
			continue
		}
		log.Infow("party created", "name", p.Name, "code", p.Code)
	}

	return nil
}
