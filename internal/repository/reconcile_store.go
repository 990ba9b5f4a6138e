package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aantony2/nautilus/internal/models"
)

func (r *PostgresRepository) ListClusterIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := r.db.SelectContext(ctx, &ids, `SELECT cluster_id FROM clusters`)
	return ids, err
}

// ListNamespacesForClusters returns the stored namespaces belonging to the
// given cluster IDs only. The reconciler passes the successfully enriched set
// so namespaces of failed clusters never enter the diff.
func (r *PostgresRepository) ListNamespacesForClusters(ctx context.Context, clusterIDs []string) ([]models.Namespace, error) {
	if len(clusterIDs) == 0 {
		return []models.Namespace{}, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM namespaces WHERE cluster_id IN (?)`, clusterIDs)
	if err != nil {
		return nil, err
	}
	namespaces := []models.Namespace{}
	err = r.db.SelectContext(ctx, &namespaces, r.db.Rebind(query), args...)
	return namespaces, err
}

// ApplyChangeSet writes one cycle's changes inside a single transaction. Any
// error rolls back every write of the cycle.
func (r *PostgresRepository) ApplyChangeSet(ctx context.Context, changes models.ChangeSet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range changes.InsertClusters {
		if err := insertCluster(ctx, tx, c); err != nil {
			return fmt.Errorf("failed to insert cluster %s: %w", c.ClusterID, err)
		}
	}
	for _, c := range changes.UpdateClusters {
		if err := updateCluster(ctx, tx, c); err != nil {
			return fmt.Errorf("failed to update cluster %s: %w", c.ClusterID, err)
		}
	}
	for _, ns := range changes.InsertNamespaces {
		if err := insertNamespace(ctx, tx, ns); err != nil {
			return fmt.Errorf("failed to insert namespace %s/%s: %w", ns.ClusterID, ns.Name, err)
		}
	}
	for _, ns := range changes.UpdateNamespaces {
		if err := updateNamespace(ctx, tx, ns); err != nil {
			return fmt.Errorf("failed to update namespace %s/%s: %w", ns.ClusterID, ns.Name, err)
		}
	}
	if len(changes.DeleteNamespaceIDs) > 0 {
		query, args, err := sqlx.In(`DELETE FROM namespaces WHERE id IN (?)`, changes.DeleteNamespaceIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("failed to delete namespaces: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reconcile transaction: %w", err)
	}
	return nil
}

func insertCluster(ctx context.Context, tx *sqlx.Tx, c models.Cluster) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO clusters (cluster_id, name, provider, version, version_status, region,
			status, nodes_total, nodes_ready, pods_total, pods_running, namespaces,
			services, deployments, ingresses, created_at, metadata)
		VALUES (:cluster_id, :name, :provider, :version, :version_status, :region,
			:status, :nodes_total, :nodes_ready, :pods_total, :pods_running, :namespaces,
			:services, :deployments, :ingresses, :created_at, :metadata)
	`, c)
	return err
}

func updateCluster(ctx context.Context, tx *sqlx.Tx, c models.Cluster) error {
	_, err := tx.NamedExecContext(ctx, `
		UPDATE clusters SET
			name = :name, provider = :provider, version = :version,
			version_status = :version_status, region = :region, status = :status,
			nodes_total = :nodes_total, nodes_ready = :nodes_ready,
			pods_total = :pods_total, pods_running = :pods_running,
			namespaces = :namespaces, services = :services,
			deployments = :deployments, ingresses = :ingresses, metadata = :metadata
		WHERE cluster_id = :cluster_id
	`, c)
	return err
}

func insertNamespace(ctx context.Context, tx *sqlx.Tx, ns models.Namespace) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO namespaces (cluster_id, name, status, phase, age, labels,
			annotations, pod_count, resource_quota, created_at)
		VALUES (:cluster_id, :name, :status, :phase, :age, :labels,
			:annotations, :pod_count, :resource_quota, :created_at)
	`, ns)
	return err
}

func updateNamespace(ctx context.Context, tx *sqlx.Tx, ns models.Namespace) error {
	_, err := tx.NamedExecContext(ctx, `
		UPDATE namespaces SET
			status = :status, phase = :phase, age = :age, labels = :labels,
			annotations = :annotations, pod_count = :pod_count,
			resource_quota = :resource_quota
		WHERE id = :id
	`, ns)
	return err
}
