package models

import "time"

// Namespace phases as reported by the Kubernetes API.
const (
	NamespaceActive      = "Active"
	NamespaceTerminating = "Terminating"
)

// Namespace is one namespace observed in a cluster. Identity is the
// (ClusterID, Name) pair; ID is the surrogate row id and is preserved across
// updates.
type Namespace struct {
	ID            int64     `json:"id" db:"id"`
	ClusterID     string    `json:"clusterId" db:"cluster_id"`
	Name          string    `json:"name" db:"name"`
	Status        string    `json:"status" db:"status"`
	Phase         string    `json:"phase" db:"phase"`
	Age           string    `json:"age" db:"age"`
	Labels        JSONMap   `json:"labels" db:"labels"`
	Annotations   JSONMap   `json:"annotations" db:"annotations"`
	PodCount      int       `json:"podCount" db:"pod_count"`
	ResourceQuota bool      `json:"resourceQuota" db:"resource_quota"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Key returns the identity used for reconciliation matching.
func (n Namespace) Key() NamespaceKey {
	return NamespaceKey{ClusterID: n.ClusterID, Name: n.Name}
}

// NamespaceKey is the composite namespace identity.
type NamespaceKey struct {
	ClusterID string
	Name      string
}
