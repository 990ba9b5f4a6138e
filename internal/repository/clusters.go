package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aantony2/nautilus/internal/models"
)

func (r *PostgresRepository) ListClusters(ctx context.Context) ([]models.Cluster, error) {
	clusters := []models.Cluster{}
	err := r.db.SelectContext(ctx, &clusters, `SELECT * FROM clusters ORDER BY name`)
	return clusters, err
}

func (r *PostgresRepository) GetCluster(ctx context.Context, clusterID string) (*models.Cluster, error) {
	var cluster models.Cluster
	err := r.db.GetContext(ctx, &cluster, `SELECT * FROM clusters WHERE cluster_id = $1`, clusterID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cluster not found: %s", clusterID)
	}
	if err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (r *PostgresRepository) ListNamespaces(ctx context.Context) ([]models.Namespace, error) {
	namespaces := []models.Namespace{}
	err := r.db.SelectContext(ctx, &namespaces, `SELECT * FROM namespaces ORDER BY cluster_id, name`)
	return namespaces, err
}

func (r *PostgresRepository) ListNamespacesByCluster(ctx context.Context, clusterID string) ([]models.Namespace, error) {
	namespaces := []models.Namespace{}
	err := r.db.SelectContext(ctx, &namespaces,
		`SELECT * FROM namespaces WHERE cluster_id = $1 ORDER BY name`, clusterID)
	return namespaces, err
}

func (r *PostgresRepository) GetNamespace(ctx context.Context, id int64) (*models.Namespace, error) {
	var ns models.Namespace
	err := r.db.GetContext(ctx, &ns, `SELECT * FROM namespaces WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("namespace not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &ns, nil
}

// Stats aggregates cluster-level counters for the dashboard header.
func (r *PostgresRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			COUNT(*)                                            AS "clusters",
			COUNT(*) FILTER (WHERE status = 'Healthy')          AS "healthyclusters",
			COALESCE(SUM(nodes_total), 0)                       AS "nodestotal",
			COALESCE(SUM(nodes_ready), 0)                       AS "nodesready",
			COALESCE(SUM(pods_total), 0)                        AS "podstotal",
			COALESCE(SUM(pods_running), 0)                      AS "podsrunning",
			COALESCE(SUM(namespaces), 0)                        AS "namespaces",
			COALESCE(SUM(services), 0)                          AS "services",
			COUNT(*) FILTER (WHERE status != 'Healthy')         AS "alerts"
		FROM clusters
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
