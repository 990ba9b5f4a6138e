package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/cloud"
	"github.com/aantony2/nautilus/internal/k8s"
	"github.com/aantony2/nautilus/internal/models"
	"github.com/aantony2/nautilus/internal/pkg/logger"
)

// fakeSettings implements repository.SettingsRepository in memory.
type fakeSettings struct {
	docs map[string]json.RawMessage
}

func (f *fakeSettings) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok := f.docs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (f *fakeSettings) Set(ctx context.Context, key string, value interface{}) error {
	if f.docs == nil {
		f.docs = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.docs[key] = raw
	return nil
}

// fakeStore implements repository.ReconcileStore and records the applied set.
type fakeStore struct {
	clusterIDs map[string]bool
	namespaces []models.Namespace

	requestedClusterIDs []string
	applied             *models.ChangeSet
	applyErr            error
}

func (f *fakeStore) ListClusterIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range f.clusterIDs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) ListNamespacesForClusters(ctx context.Context, clusterIDs []string) ([]models.Namespace, error) {
	f.requestedClusterIDs = clusterIDs
	requested := make(map[string]bool, len(clusterIDs))
	for _, id := range clusterIDs {
		requested[id] = true
	}
	var out []models.Namespace
	for _, ns := range f.namespaces {
		if requested[ns.ClusterID] {
			out = append(out, ns)
		}
	}
	return out, nil
}

func (f *fakeStore) ApplyChangeSet(ctx context.Context, changes models.ChangeSet) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = &changes
	return nil
}

// fakeProvider returns canned discoveries or a canned error.
type fakeProvider struct {
	name        models.CloudProvider
	discoveries []cloud.Discovery
	err         error
}

func (f *fakeProvider) Name() models.CloudProvider { return f.name }

func (f *fakeProvider) Discover(ctx context.Context) ([]cloud.Discovery, error) {
	return f.discoveries, f.err
}

// fakeEnricher fails for ids in fail, otherwise returns the canned enrichment.
type fakeEnricher struct {
	fail        map[string]bool
	enrichments map[string]*k8s.Enrichment
}

func (f *fakeEnricher) Enrich(ctx context.Context, clusterID string, cfg *rest.Config) (*k8s.Enrichment, error) {
	if f.fail[clusterID] {
		return nil, errors.New("connection refused")
	}
	if e, ok := f.enrichments[clusterID]; ok {
		return e, nil
	}
	return &k8s.Enrichment{}, nil
}

func discovery(provider models.CloudProvider, clusterID string) cloud.Discovery {
	return cloud.Discovery{
		Cluster: models.Cluster{ClusterID: clusterID, Name: clusterID, Provider: provider, Status: models.StatusHealthy},
		REST:    &rest.Config{Host: "https://example.invalid"},
	}
}

func newTestPipeline(store *fakeStore, enricher Enricher, providers ...cloud.Provider) *Pipeline {
	return &Pipeline{
		Settings:  &fakeSettings{},
		Store:     store,
		Enricher:  enricher,
		Log:       logger.StdLogger(),
		Providers: func(models.CloudCredentials) []cloud.Provider { return providers },
	}
}

func TestPipeline_ProviderFailureIsIsolated(t *testing.T) {
	store := &fakeStore{clusterIDs: map[string]bool{}}
	pipeline := newTestPipeline(store, &fakeEnricher{},
		&fakeProvider{name: models.ProviderGKE, discoveries: []cloud.Discovery{discovery(models.ProviderGKE, "gke-1")}},
		&fakeProvider{name: models.ProviderAKS, err: errors.New("401 unauthorized")},
		&fakeProvider{name: models.ProviderEKS, discoveries: []cloud.Discovery{discovery(models.ProviderEKS, "eks-1")}},
	)

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, store.applied)
	assert.Len(t, store.applied.InsertClusters, 2)

	require.Len(t, report.Providers, 3)
	assert.NoError(t, report.Providers[0].Err)
	assert.Error(t, report.Providers[1].Err)
	assert.NoError(t, report.Providers[2].Err)
}

func TestPipeline_EnrichmentFailureKeepsProviderFields(t *testing.T) {
	store := &fakeStore{clusterIDs: map[string]bool{}}
	enricher := &fakeEnricher{fail: map[string]bool{"gke-bad": true}}
	pipeline := newTestPipeline(store, enricher,
		&fakeProvider{name: models.ProviderGKE, discoveries: []cloud.Discovery{
			discovery(models.ProviderGKE, "gke-good"),
			discovery(models.ProviderGKE, "gke-bad"),
		}},
	)

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	// Both clusters are persisted; only the enriched one is marked so.
	require.NotNil(t, store.applied)
	assert.Len(t, store.applied.InsertClusters, 2)
	assert.Equal(t, []string{"gke-good"}, report.EnrichedClusterIDs())
}

func TestPipeline_FailedClusterNamespacesNotDeleted(t *testing.T) {
	store := &fakeStore{
		clusterIDs: map[string]bool{"gke-good": true, "gke-bad": true},
		namespaces: []models.Namespace{
			{ID: 1, ClusterID: "gke-good", Name: "default"},
			{ID: 2, ClusterID: "gke-bad", Name: "default"},
			{ID: 3, ClusterID: "gke-bad", Name: "backend"},
		},
	}
	enricher := &fakeEnricher{
		fail: map[string]bool{"gke-bad": true},
		enrichments: map[string]*k8s.Enrichment{
			"gke-good": {Namespaces: []models.Namespace{{ClusterID: "gke-good", Name: "default"}}},
		},
	}
	pipeline := newTestPipeline(store, enricher,
		&fakeProvider{name: models.ProviderGKE, discoveries: []cloud.Discovery{
			discovery(models.ProviderGKE, "gke-good"),
			discovery(models.ProviderGKE, "gke-bad"),
		}},
	)

	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	// Only the enriched cluster's namespaces entered the diff.
	assert.Equal(t, []string{"gke-good"}, store.requestedClusterIDs)
	require.NotNil(t, store.applied)
	assert.Empty(t, store.applied.DeleteNamespaceIDs)
	require.Len(t, store.applied.UpdateNamespaces, 1)
	assert.Equal(t, "gke-good", store.applied.UpdateNamespaces[0].ClusterID)
}

func TestPipeline_PersistenceFailureIsFatal(t *testing.T) {
	store := &fakeStore{clusterIDs: map[string]bool{}, applyErr: errors.New("deadlock detected")}
	pipeline := newTestPipeline(store, &fakeEnricher{},
		&fakeProvider{name: models.ProviderGKE, discoveries: []cloud.Discovery{discovery(models.ProviderGKE, "gke-1")}},
	)

	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply changes")
}

func TestPipeline_NoProvidersConfigured(t *testing.T) {
	store := &fakeStore{clusterIDs: map[string]bool{}}
	pipeline := newTestPipeline(store, &fakeEnricher{})

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Providers)
	assert.Nil(t, store.applied)
}

func TestPipeline_EnrichmentCountsFlowIntoRecord(t *testing.T) {
	store := &fakeStore{clusterIDs: map[string]bool{}}
	enricher := &fakeEnricher{enrichments: map[string]*k8s.Enrichment{
		"gke-1": {
			NodesTotal: 4, NodesReady: 3, PodsTotal: 50, PodsRunning: 47,
			Services: 12, Deployments: 9, Ingresses: 2,
			Namespaces: []models.Namespace{
				{ClusterID: "gke-1", Name: "default"},
				{ClusterID: "gke-1", Name: "kube-system"},
			},
		},
	}}
	pipeline := newTestPipeline(store, enricher,
		&fakeProvider{name: models.ProviderGKE, discoveries: []cloud.Discovery{discovery(models.ProviderGKE, "gke-1")}},
	)

	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, store.applied)
	require.Len(t, store.applied.InsertClusters, 1)
	c := store.applied.InsertClusters[0]
	assert.Equal(t, 4, c.NodesTotal)
	assert.Equal(t, 3, c.NodesReady)
	assert.Equal(t, 50, c.PodsTotal)
	assert.Equal(t, 47, c.PodsRunning)
	assert.Equal(t, 2, c.Namespaces)
	assert.Equal(t, 12, c.Services)
	assert.Equal(t, 9, c.Deployments)
	assert.Equal(t, 2, c.Ingresses)
	assert.Len(t, store.applied.InsertNamespaces, 2)
}
