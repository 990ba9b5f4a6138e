package models

// ChangeSet is the output of one reconciliation diff. The whole set is applied
// in a single database transaction: all writes commit or none do.
type ChangeSet struct {
	InsertClusters     []Cluster
	UpdateClusters     []Cluster
	InsertNamespaces   []Namespace
	UpdateNamespaces   []Namespace
	DeleteNamespaceIDs []int64
}

// Empty reports whether applying the set would write nothing.
func (c ChangeSet) Empty() bool {
	return len(c.InsertClusters) == 0 && len(c.UpdateClusters) == 0 &&
		len(c.InsertNamespaces) == 0 && len(c.UpdateNamespaces) == 0 &&
		len(c.DeleteNamespaceIDs) == 0
}
