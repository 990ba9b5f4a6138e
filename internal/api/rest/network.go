package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aantony2/nautilus/internal/models"
)

// GetNetworkResources handles GET /network/resources: all four kinds in one
// payload.
func (h *Handler) GetNetworkResources(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	controllers, err := h.Network.ListIngressControllers(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch network resources")
		return
	}
	balancers, err := h.Network.ListLoadBalancers(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch network resources")
		return
	}
	routes, err := h.Network.ListRoutes(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch network resources")
		return
	}
	policies, err := h.Network.ListPolicies(ctx, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch network resources")
		return
	}
	respondJSON(w, http.StatusOK, models.NetworkResources{
		IngressControllers: controllers,
		LoadBalancers:      balancers,
		Routes:             routes,
		Policies:           policies,
	})
}

// clusterScope returns the {id} path variable when the route is mounted under
// /clusters/{id}/..., empty for the global variants.
func clusterScope(r *http.Request) string {
	return mux.Vars(r)["id"]
}

// ListIngressControllers handles both /network/ingress-controllers and
// /clusters/{id}/network/ingress-controllers.
func (h *Handler) ListIngressControllers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Network.ListIngressControllers(r.Context(), clusterScope(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch ingress controllers")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// ListLoadBalancers handles both global and per-cluster variants.
func (h *Handler) ListLoadBalancers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Network.ListLoadBalancers(r.Context(), clusterScope(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch load balancers")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// ListRoutes handles both global and per-cluster variants.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	out, err := h.Network.ListRoutes(r.Context(), clusterScope(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch routes")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// ListPolicies handles both global and per-cluster variants.
func (h *Handler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	out, err := h.Network.ListPolicies(r.Context(), clusterScope(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch network policies")
		return
	}
	respondJSON(w, http.StatusOK, out)
}
