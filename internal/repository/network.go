package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aantony2/nautilus/internal/models"
)

func (r *PostgresRepository) ListDependencies(ctx context.Context) ([]models.Dependency, error) {
	deps := []models.Dependency{}
	err := r.db.SelectContext(ctx, &deps, `SELECT * FROM dependencies ORDER BY cluster_id, name`)
	return deps, err
}

func (r *PostgresRepository) GetDependency(ctx context.Context, id int64) (*models.Dependency, error) {
	var dep models.Dependency
	err := r.db.GetContext(ctx, &dep, `SELECT * FROM dependencies WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dependency not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &dep, nil
}

func (r *PostgresRepository) ListDependenciesByType(ctx context.Context, depType string) ([]models.Dependency, error) {
	deps := []models.Dependency{}
	err := r.db.SelectContext(ctx, &deps,
		`SELECT * FROM dependencies WHERE type = $1 ORDER BY cluster_id, name`, depType)
	return deps, err
}

func (r *PostgresRepository) ListDependenciesByCluster(ctx context.Context, clusterID string) ([]models.Dependency, error) {
	deps := []models.Dependency{}
	err := r.db.SelectContext(ctx, &deps,
		`SELECT * FROM dependencies WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return deps, err
}

// Network-resource reads. An empty clusterID means all clusters.

func (r *PostgresRepository) ListIngressControllers(ctx context.Context, clusterID string) ([]models.IngressController, error) {
	out := []models.IngressController{}
	if clusterID == "" {
		err := r.db.SelectContext(ctx, &out, `SELECT * FROM ingress_controllers ORDER BY cluster_id, name`)
		return out, err
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM ingress_controllers WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return out, err
}

func (r *PostgresRepository) ListLoadBalancers(ctx context.Context, clusterID string) ([]models.LoadBalancer, error) {
	out := []models.LoadBalancer{}
	if clusterID == "" {
		err := r.db.SelectContext(ctx, &out, `SELECT * FROM load_balancers ORDER BY cluster_id, name`)
		return out, err
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM load_balancers WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return out, err
}

func (r *PostgresRepository) ListRoutes(ctx context.Context, clusterID string) ([]models.NetworkRoute, error) {
	out := []models.NetworkRoute{}
	if clusterID == "" {
		err := r.db.SelectContext(ctx, &out, `SELECT * FROM network_routes ORDER BY cluster_id, name`)
		return out, err
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM network_routes WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return out, err
}

func (r *PostgresRepository) ListPolicies(ctx context.Context, clusterID string) ([]models.NetworkPolicy, error) {
	out := []models.NetworkPolicy{}
	if clusterID == "" {
		err := r.db.SelectContext(ctx, &out, `SELECT * FROM network_policies ORDER BY cluster_id, name`)
		return out, err
	}
	err := r.db.SelectContext(ctx, &out,
		`SELECT * FROM network_policies WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return out, err
}
