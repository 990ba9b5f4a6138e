package reconcile

import (
	"time"

	"github.com/aantony2/nautilus/internal/models"
)

// ProviderResult records the outcome of one provider's discovery pass.
type ProviderResult struct {
	Provider models.CloudProvider `json:"provider"`
	Clusters int                  `json:"clusters"`
	Err      error                `json:"-"`
	Error    string               `json:"error,omitempty"`
}

// ClusterResult records the outcome of one cluster's enrichment.
type ClusterResult struct {
	ClusterID string               `json:"clusterId"`
	Provider  models.CloudProvider `json:"provider"`
	Enriched  bool                 `json:"enriched"`
	Err       error                `json:"-"`
	Error     string               `json:"error,omitempty"`
}

// Report is the structured outcome of one reconciliation cycle. Partial
// failures are recorded here rather than surfaced as errors; only a
// persistence failure makes Run return an error.
type Report struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Providers  []ProviderResult `json:"providers"`
	Clusters   []ClusterResult  `json:"clusters"`

	ClustersInserted   int `json:"clustersInserted"`
	ClustersUpdated    int `json:"clustersUpdated"`
	NamespacesInserted int `json:"namespacesInserted"`
	NamespacesUpdated  int `json:"namespacesUpdated"`
	NamespacesDeleted  int `json:"namespacesDeleted"`
}

// EnrichedClusterIDs returns the ids of clusters whose enrichment succeeded
// this cycle; namespace deletes are scoped to exactly this set.
func (r *Report) EnrichedClusterIDs() []string {
	var ids []string
	for _, c := range r.Clusters {
		if c.Enriched {
			ids = append(ids, c.ClusterID)
		}
	}
	return ids
}
