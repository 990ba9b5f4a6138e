// The updater runs one reconciliation cycle and exits: non-zero when the
// cycle could not be persisted. Partial provider or cluster failures are
// reported but do not fail the run.
package main

import (
	"context"
	"os"
	"time"

	"github.com/aantony2/nautilus/internal/config"
	"github.com/aantony2/nautilus/internal/k8s"
	"github.com/aantony2/nautilus/internal/pkg/logger"
	"github.com/aantony2/nautilus/internal/reconcile"
	"github.com/aantony2/nautilus/internal/repository"
)

func main() {
	log := logger.StdLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	pipeline := &reconcile.Pipeline{
		Settings: repo,
		Store:    repo,
		Enricher: k8s.NewEnricher(time.Duration(cfg.K8sTimeoutSec) * time.Second),
		Log:      log,
	}

	report, err := pipeline.Run(context.Background())
	if err != nil {
		log.Error("reconciliation cycle failed", "error", err)
		os.Exit(1)
	}

	for _, p := range report.Providers {
		if p.Err != nil {
			log.Warn("provider failed", "provider", string(p.Provider), "error", p.Err)
		}
	}
	for _, c := range report.Clusters {
		if c.Err != nil {
			log.Warn("cluster enrichment failed", "cluster", c.ClusterID, "error", c.Err)
		}
	}
}
