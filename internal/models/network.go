package models

import "time"

// Dependency is an add-on installed into a cluster (service mesh, cert
// manager, ingress controller chart and so on) tracked for the dashboard.
type Dependency struct {
	ID          int64     `json:"id" db:"id"`
	ClusterID   string    `json:"clusterId" db:"cluster_id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	Namespace   string    `json:"namespace" db:"namespace"`
	Version     string    `json:"version" db:"version"`
	Status      string    `json:"status" db:"status"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
	Metadata    JSONMap   `json:"metadata" db:"metadata"`
}

// IngressController is one ingress controller deployment in a cluster.
type IngressController struct {
	ID        int64   `json:"id" db:"id"`
	ClusterID string  `json:"clusterId" db:"cluster_id"`
	Name      string  `json:"name" db:"name"`
	Namespace string  `json:"namespace" db:"namespace"`
	Type      string  `json:"type" db:"type"`
	Status    string  `json:"status" db:"status"`
	Replicas  int     `json:"replicas" db:"replicas"`
	Metadata  JSONMap `json:"metadata" db:"metadata"`
}

// LoadBalancer is a provider-managed load balancer fronting a cluster.
type LoadBalancer struct {
	ID        int64   `json:"id" db:"id"`
	ClusterID string  `json:"clusterId" db:"cluster_id"`
	Name      string  `json:"name" db:"name"`
	Type      string  `json:"type" db:"type"`
	IPAddress string  `json:"ipAddress" db:"ip_address"`
	Status    string  `json:"status" db:"status"`
	Metadata  JSONMap `json:"metadata" db:"metadata"`
}

// NetworkRoute is an HTTP route/ingress rule exposed by a cluster.
type NetworkRoute struct {
	ID        int64   `json:"id" db:"id"`
	ClusterID string  `json:"clusterId" db:"cluster_id"`
	Name      string  `json:"name" db:"name"`
	Namespace string  `json:"namespace" db:"namespace"`
	Host      string  `json:"host" db:"host"`
	Path      string  `json:"path" db:"path"`
	Service   string  `json:"service" db:"service"`
	TLS       bool    `json:"tls" db:"tls"`
	Metadata  JSONMap `json:"metadata" db:"metadata"`
}

// NetworkPolicy is a Kubernetes NetworkPolicy summary.
type NetworkPolicy struct {
	ID          int64   `json:"id" db:"id"`
	ClusterID   string  `json:"clusterId" db:"cluster_id"`
	Name        string  `json:"name" db:"name"`
	Namespace   string  `json:"namespace" db:"namespace"`
	PolicyTypes string  `json:"policyTypes" db:"policy_types"`
	PodSelector string  `json:"podSelector" db:"pod_selector"`
	Metadata    JSONMap `json:"metadata" db:"metadata"`
}

// NetworkResources is the combined payload for GET /api/network/resources.
type NetworkResources struct {
	IngressControllers []IngressController `json:"ingressControllers"`
	LoadBalancers      []LoadBalancer      `json:"loadBalancers"`
	Routes             []NetworkRoute      `json:"routes"`
	Policies           []NetworkPolicy     `json:"policies"`
}

// DashboardStats is the aggregate payload for GET /api/stats.
type DashboardStats struct {
	Clusters        int `json:"clusters"`
	HealthyClusters int `json:"healthyClusters"`
	NodesTotal      int `json:"nodesTotal"`
	NodesReady      int `json:"nodesReady"`
	PodsTotal       int `json:"podsTotal"`
	PodsRunning     int `json:"podsRunning"`
	Namespaces      int `json:"namespaces"`
	Services        int `json:"services"`
	Alerts          int `json:"alerts"`
}
