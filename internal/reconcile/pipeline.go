package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/cloud"
	"github.com/aantony2/nautilus/internal/k8s"
	"github.com/aantony2/nautilus/internal/models"
	"github.com/aantony2/nautilus/internal/pkg/metrics"
	"github.com/aantony2/nautilus/internal/repository"
)

// Enricher is the live-cluster query dependency, satisfied by k8s.Enricher.
type Enricher interface {
	Enrich(ctx context.Context, clusterID string, cfg *rest.Config) (*k8s.Enrichment, error)
}

// Pipeline is one discover -> enrich -> diff -> persist cycle. Credentials
// are loaded from the settings store at the start of every run and passed
// explicitly; nothing is cached between runs.
type Pipeline struct {
	Settings repository.SettingsRepository
	Store    repository.ReconcileStore
	Enricher Enricher
	Log      *slog.Logger

	// Providers builds the provider set for a credentials document.
	// Defaults to cloud.EnabledProviders; injectable for tests.
	Providers func(models.CloudCredentials) []cloud.Provider
}

// Run executes one full reconciliation cycle. Provider and per-cluster
// failures are isolated into the report; only a settings or persistence
// failure returns an error.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}
	defer func() {
		report.FinishedAt = time.Now()
		metrics.PipelineRunDurationSeconds.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	}()

	creds, err := repository.LoadCloudCredentials(ctx, p.Settings)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to load cloud credentials: %w", err)
	}

	buildProviders := p.Providers
	if buildProviders == nil {
		buildProviders = cloud.EnabledProviders
	}
	providers := buildProviders(creds)
	if len(providers) == 0 {
		p.Log.Info("no cloud provider configured, nothing to reconcile")
		metrics.PipelineRunsTotal.WithLabelValues("ok").Inc()
		return report, nil
	}

	var freshClusters []models.Cluster
	var freshNamespaces []models.Namespace

	for _, provider := range providers {
		discoveries, err := provider.Discover(ctx)
		if err != nil {
			p.Log.Error("provider discovery failed",
				"provider", string(provider.Name()), "error", err)
			report.Providers = append(report.Providers, ProviderResult{
				Provider: provider.Name(), Err: err, Error: err.Error(),
			})
			continue
		}
		report.Providers = append(report.Providers, ProviderResult{
			Provider: provider.Name(), Clusters: len(discoveries),
		})
		metrics.ClustersDiscovered.WithLabelValues(string(provider.Name())).Set(float64(len(discoveries)))

		for _, d := range discoveries {
			record := d.Cluster
			result := ClusterResult{ClusterID: record.ClusterID, Provider: provider.Name()}

			enrichment, err := p.Enricher.Enrich(ctx, record.ClusterID, d.REST)
			if err != nil {
				// The cluster keeps its provider-API fields and contributes
				// no namespaces this cycle.
				p.Log.Warn("cluster enrichment failed",
					"cluster", record.ClusterID, "error", err)
				metrics.EnrichmentFailuresTotal.Inc()
				result.Err = err
				result.Error = err.Error()
			} else {
				applyEnrichment(&record, enrichment)
				freshNamespaces = append(freshNamespaces, enrichment.Namespaces...)
				result.Enriched = true
			}
			freshClusters = append(freshClusters, record)
			report.Clusters = append(report.Clusters, result)
		}
	}

	existingIDs, err := p.Store.ListClusterIDs(ctx)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to load persisted cluster ids: %w", err)
	}
	existingNamespaces, err := p.Store.ListNamespacesForClusters(ctx, report.EnrichedClusterIDs())
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to load persisted namespaces: %w", err)
	}

	changes := Diff(existingIDs, existingNamespaces, freshClusters, freshNamespaces)
	if err := p.Store.ApplyChangeSet(ctx, changes); err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to apply changes: %w", err)
	}

	report.ClustersInserted = len(changes.InsertClusters)
	report.ClustersUpdated = len(changes.UpdateClusters)
	report.NamespacesInserted = len(changes.InsertNamespaces)
	report.NamespacesUpdated = len(changes.UpdateNamespaces)
	report.NamespacesDeleted = len(changes.DeleteNamespaceIDs)

	metrics.ReconcileRows.WithLabelValues("cluster", "insert").Add(float64(report.ClustersInserted))
	metrics.ReconcileRows.WithLabelValues("cluster", "update").Add(float64(report.ClustersUpdated))
	metrics.ReconcileRows.WithLabelValues("namespace", "insert").Add(float64(report.NamespacesInserted))
	metrics.ReconcileRows.WithLabelValues("namespace", "update").Add(float64(report.NamespacesUpdated))
	metrics.ReconcileRows.WithLabelValues("namespace", "delete").Add(float64(report.NamespacesDeleted))
	metrics.PipelineRunsTotal.WithLabelValues("ok").Inc()

	p.Log.Info("reconciliation cycle finished",
		"clusters_inserted", report.ClustersInserted,
		"clusters_updated", report.ClustersUpdated,
		"namespaces_inserted", report.NamespacesInserted,
		"namespaces_updated", report.NamespacesUpdated,
		"namespaces_deleted", report.NamespacesDeleted,
	)
	return report, nil
}

// applyEnrichment copies live counts and metadata onto the canonical record.
func applyEnrichment(record *models.Cluster, e *k8s.Enrichment) {
	record.NodesTotal = e.NodesTotal
	record.NodesReady = e.NodesReady
	record.PodsTotal = e.PodsTotal
	record.PodsRunning = e.PodsRunning
	record.Namespaces = len(e.Namespaces)
	record.Services = e.Services
	record.Deployments = e.Deployments
	record.Ingresses = e.Ingresses
	record.Metadata = e.Metadata.ToJSONMap()
}
