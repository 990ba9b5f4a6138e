// Package scheduler triggers the reconciliation pipeline: once at startup and
// on the cron expression stored in the cloud_credentials settings document.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/aantony2/nautilus/internal/pkg/metrics"
	"github.com/aantony2/nautilus/internal/reconcile"
	"github.com/aantony2/nautilus/internal/repository"
)

// Runner is the pipeline dependency, satisfied by *reconcile.Pipeline.
type Runner interface {
	Run(ctx context.Context) (*reconcile.Report, error)
}

// Scheduler owns the single recurring reconciliation job. A run-lock ensures
// at most one cycle is active: a cron trigger firing while the previous run
// is still executing is skipped, not queued.
type Scheduler struct {
	Settings repository.SettingsRepository
	Pipeline Runner
	Log      *slog.Logger

	cron    *cron.Cron
	running atomic.Bool
}

// Start reads the cloud credentials, and when at least one provider is
// configured, runs one immediate cycle and registers the recurring entry.
// With nothing configured it logs and schedules nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	creds, err := repository.LoadCloudCredentials(ctx, s.Settings)
	if err != nil {
		return fmt.Errorf("failed to load cloud credentials: %w", err)
	}
	if !creds.AnyConfigured() {
		s.Log.Info("no cloud provider configured, scheduler idle")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(creds.UpdateSchedule, func() { s.trigger(ctx) }); err != nil {
		return fmt.Errorf("invalid update schedule %q: %w", creds.UpdateSchedule, err)
	}
	s.cron.Start()
	s.Log.Info("reconciliation scheduled", "schedule", creds.UpdateSchedule)

	// Immediate run at startup in addition to the recurring schedule.
	go s.trigger(ctx)
	return nil
}

// Stop halts the cron loop; an in-flight run finishes on its own.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// trigger runs one cycle unless a previous one is still active.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.Log.Warn("previous reconciliation run still active, skipping trigger")
		metrics.ScheduledRunsSkipped.Inc()
		return
	}
	defer s.running.Store(false)

	if _, err := s.Pipeline.Run(ctx); err != nil {
		s.Log.Error("reconciliation run failed", "error", err)
	}
}
