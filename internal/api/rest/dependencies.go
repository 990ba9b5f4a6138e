package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// ListDependencies handles GET /dependencies.
func (h *Handler) ListDependencies(w http.ResponseWriter, r *http.Request) {
	deps, err := h.Network.ListDependencies(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch dependencies")
		return
	}
	respondJSON(w, http.StatusOK, deps)
}

// GetDependency handles GET /dependencies/{id}.
func (h *Handler) GetDependency(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid dependency id")
		return
	}
	dep, err := h.Network.GetDependency(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Dependency not found")
		return
	}
	respondJSON(w, http.StatusOK, dep)
}

// ListDependenciesByType handles GET /dependencies/type/{type}.
func (h *Handler) ListDependenciesByType(w http.ResponseWriter, r *http.Request) {
	depType := mux.Vars(r)["type"]
	deps, err := h.Network.ListDependenciesByType(r.Context(), depType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch dependencies")
		return
	}
	respondJSON(w, http.StatusOK, deps)
}

// ListClusterDependencies handles GET /clusters/{id}/dependencies.
func (h *Handler) ListClusterDependencies(w http.ResponseWriter, r *http.Request) {
	clusterID := mux.Vars(r)["id"]
	deps, err := h.Network.ListDependenciesByCluster(r.Context(), clusterID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch dependencies")
		return
	}
	respondJSON(w, http.StatusOK, deps)
}
