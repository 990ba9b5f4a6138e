package repository

import (
	"context"

	"github.com/aantony2/nautilus/internal/models"
)

// SettingsRepository is the generic key -> JSON document store. Get unmarshals
// the stored document into out and reports whether the row existed.
type SettingsRepository interface {
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// ClusterRepository serves the dashboard's read paths.
type ClusterRepository interface {
	ListClusters(ctx context.Context) ([]models.Cluster, error)
	GetCluster(ctx context.Context, clusterID string) (*models.Cluster, error)
	ListNamespaces(ctx context.Context) ([]models.Namespace, error)
	ListNamespacesByCluster(ctx context.Context, clusterID string) ([]models.Namespace, error)
	GetNamespace(ctx context.Context, id int64) (*models.Namespace, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// ReconcileStore is what one reconciliation cycle needs from storage: the
// current state for diffing and a transactional apply.
type ReconcileStore interface {
	ListClusterIDs(ctx context.Context) ([]string, error)
	ListNamespacesForClusters(ctx context.Context, clusterIDs []string) ([]models.Namespace, error)
	ApplyChangeSet(ctx context.Context, changes models.ChangeSet) error
}

// NetworkRepository serves dependency and network-resource reads.
type NetworkRepository interface {
	ListDependencies(ctx context.Context) ([]models.Dependency, error)
	GetDependency(ctx context.Context, id int64) (*models.Dependency, error)
	ListDependenciesByType(ctx context.Context, depType string) ([]models.Dependency, error)
	ListDependenciesByCluster(ctx context.Context, clusterID string) ([]models.Dependency, error)

	ListIngressControllers(ctx context.Context, clusterID string) ([]models.IngressController, error)
	ListLoadBalancers(ctx context.Context, clusterID string) ([]models.LoadBalancer, error)
	ListRoutes(ctx context.Context, clusterID string) ([]models.NetworkRoute, error)
	ListPolicies(ctx context.Context, clusterID string) ([]models.NetworkPolicy, error)
}
