package main

import (
	"fmt"
	"log"

	"scanstation/internal/config"
	"scanstation/internal/handler"
	"scanstation/internal/ledger"
	"scanstation/internal/recognizer"
	"scanstation/internal/recognizer/fuel"
	"scanstation/internal/recognizer/generic"
	"scanstation/internal/recognizer/synth"
	"scanstation/internal/repository/postgres"
	"scanstation/internal/router"
	"scanstation/internal/service"
	s3storage "scanstation/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	auditRepo := postgres.NewScanAuditRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Recognition pipeline: fuel pass first, then generic, synthesized
	// fallback when both fail.
	chain := recognizer.NewChain(cfg.Recognizer.PassTimeout(),
		fuel.New(&cfg.Recognizer),
		generic.New(&cfg.Recognizer),
	)
	synthesizer := synth.New(cfg.Synth.Seed)

	ledgerClient := ledger.New(&cfg.Ledger)
	history := service.NewRecentHistory(cfg.History.Capacity)

	scanSvc := service.NewScanService(chain, synthesizer, ledgerClient, s3Client, auditRepo, history, &cfg.S3)

	// Initialize handlers
	scanH := handler.NewScanHandler(scanSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, scanH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
