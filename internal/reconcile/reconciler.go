// Package reconcile diffs freshly collected cloud state against persisted
// state and applies the result in one transaction.
package reconcile

import (
	"github.com/aantony2/nautilus/internal/models"
)

// Diff computes the change set for one cycle.
//
// Clusters are matched on cluster_id: unknown ids insert, known ids update.
// Clusters present in storage but absent from the fresh set are left alone.
//
// Namespaces are matched on (cluster_id, name). existingNamespaces must
// contain only rows belonging to successfully enriched clusters; rows of
// failed clusters never enter the diff, so they can never be deleted.
func Diff(existingClusterIDs []string, existingNamespaces []models.Namespace,
	freshClusters []models.Cluster, freshNamespaces []models.Namespace) models.ChangeSet {

	known := make(map[string]bool, len(existingClusterIDs))
	for _, id := range existingClusterIDs {
		known[id] = true
	}

	var changes models.ChangeSet
	for _, c := range freshClusters {
		if known[c.ClusterID] {
			changes.UpdateClusters = append(changes.UpdateClusters, c)
		} else {
			changes.InsertClusters = append(changes.InsertClusters, c)
		}
	}

	existingByKey := make(map[models.NamespaceKey]models.Namespace, len(existingNamespaces))
	for _, ns := range existingNamespaces {
		existingByKey[ns.Key()] = ns
	}

	seen := make(map[models.NamespaceKey]bool, len(freshNamespaces))
	for _, ns := range freshNamespaces {
		key := ns.Key()
		seen[key] = true
		if existing, ok := existingByKey[key]; ok {
			ns.ID = existing.ID // preserve the surrogate row id
			changes.UpdateNamespaces = append(changes.UpdateNamespaces, ns)
		} else {
			changes.InsertNamespaces = append(changes.InsertNamespaces, ns)
		}
	}

	for _, ns := range existingNamespaces {
		if !seen[ns.Key()] {
			changes.DeleteNamespaceIDs = append(changes.DeleteNamespaceIDs, ns.ID)
		}
	}

	return changes
}
