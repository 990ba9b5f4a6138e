package models

import (
	"encoding/json"
	"time"
)

// CloudProvider identifies the managed-Kubernetes offering a cluster came from.
type CloudProvider string

const (
	ProviderGKE CloudProvider = "GKE"
	ProviderAKS CloudProvider = "AKS"
	ProviderEKS CloudProvider = "EKS"
)

// Health status derived from the provider-reported cluster state.
const (
	StatusHealthy  = "Healthy"
	StatusWarning  = "Warning"
	StatusCritical = "Critical"
)

// Version freshness relative to the version the cluster was created with.
const (
	VersionUpToDate        = "Up to date"
	VersionUpdateAvailable = "Update available"
)

// Cluster is the canonical, provider-agnostic cluster record. ClusterID is the
// provider-qualified external identifier and the reconciliation key; it is
// stable across polling cycles.
type Cluster struct {
	ID            int64         `json:"id" db:"id"`
	ClusterID     string        `json:"clusterId" db:"cluster_id"`
	Name          string        `json:"name" db:"name"`
	Provider      CloudProvider `json:"provider" db:"provider"`
	Version       string        `json:"version" db:"version"`
	VersionStatus string        `json:"versionStatus" db:"version_status"`
	Region        string        `json:"region" db:"region"`
	Status        string        `json:"status" db:"status"`
	NodesTotal    int           `json:"nodesTotal" db:"nodes_total"`
	NodesReady    int           `json:"nodesReady" db:"nodes_ready"`
	PodsTotal     int           `json:"podsTotal" db:"pods_total"`
	PodsRunning   int           `json:"podsRunning" db:"pods_running"`
	Namespaces    int           `json:"namespaces" db:"namespaces"`
	Services      int           `json:"services" db:"services"`
	Deployments   int           `json:"deployments" db:"deployments"`
	Ingresses     int           `json:"ingresses" db:"ingresses"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	Metadata      JSONMap       `json:"metadata" db:"metadata"`
}

// ClusterMetadata is the open-ended blob stored in clusters.metadata: recent
// events and per-node summaries collected during enrichment.
type ClusterMetadata struct {
	Events []ClusterEvent `json:"events,omitempty"`
	Nodes  []NodeSummary  `json:"nodes,omitempty"`
}

// ClusterEvent is a condensed Kubernetes event kept for display.
type ClusterEvent struct {
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	Object    string    `json:"object"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NodeSummary is a condensed node record kept for display.
type NodeSummary struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ToJSONMap marshals the metadata into the generic blob shape stored in the DB.
func (m ClusterMetadata) ToJSONMap() JSONMap {
	raw, err := json.Marshal(m)
	if err != nil {
		return JSONMap{}
	}
	var out JSONMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return JSONMap{}
	}
	return out
}

// ClusterMetrics is the per-cluster metrics payload served by the dashboard.
type ClusterMetrics struct {
	ClusterID   string  `json:"clusterId"`
	CPUUsage    float64 `json:"cpuUsage"`
	MemoryUsage float64 `json:"memoryUsage"`
	DiskUsage   float64 `json:"diskUsage"`
	PodsTotal   int     `json:"podsTotal"`
	PodsRunning int     `json:"podsRunning"`
	NodesTotal  int     `json:"nodesTotal"`
	NodesReady  int     `json:"nodesReady"`
}
