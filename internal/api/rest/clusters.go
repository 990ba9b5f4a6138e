package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ListClusters handles GET /clusters.
func (h *Handler) ListClusters(w http.ResponseWriter, r *http.Request) {
	clusters, err := h.Clusters.ListClusters(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch clusters")
		return
	}
	respondJSON(w, http.StatusOK, clusters)
}

// GetCluster handles GET /clusters/{id}.
func (h *Handler) GetCluster(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cluster, err := h.Clusters.GetCluster(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Cluster not found")
		return
	}
	respondJSON(w, http.StatusOK, cluster)
}

// GetClusterMetrics handles GET /clusters/{id}/metrics. Utilization figures
// are derived from the persisted counters; the pipeline does not collect
// per-container usage.
func (h *Handler) GetClusterMetrics(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	cluster, err := h.Clusters.GetCluster(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Cluster not found")
		return
	}
	respondJSON(w, http.StatusOK, deriveClusterMetrics(cluster))
}

// ListClusterNamespaces handles GET /clusters/{id}/namespaces.
func (h *Handler) ListClusterNamespaces(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	namespaces, err := h.Clusters.ListNamespacesByCluster(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch namespaces")
		return
	}
	respondJSON(w, http.StatusOK, namespaces)
}

// ListNamespaces handles GET /namespaces.
func (h *Handler) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	namespaces, err := h.Clusters.ListNamespaces(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch namespaces")
		return
	}
	respondJSON(w, http.StatusOK, namespaces)
}

// GetNamespace handles GET /namespaces/{id}.
func (h *Handler) GetNamespace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid namespace id")
		return
	}
	ns, err := h.Clusters.GetNamespace(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Namespace not found")
		return
	}
	respondJSON(w, http.StatusOK, ns)
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Clusters.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
