// Package rest is the HTTP layer of the dashboard backend.
package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aantony2/nautilus/internal/cloud"
	"github.com/aantony2/nautilus/internal/models"
	"github.com/aantony2/nautilus/internal/repository"
)

// Handler holds the dependencies of every route.
type Handler struct {
	Clusters repository.ClusterRepository
	Network  repository.NetworkRepository
	Settings repository.SettingsRepository
	Log      *slog.Logger

	// Providers builds the provider set for the cloud-credentials test
	// endpoint. Defaults to cloud.EnabledProviders; injectable for tests.
	Providers func(models.CloudCredentials) []cloud.Provider

	// TestDatabase checks connectivity for the database-settings test
	// endpoint. Defaults to a real Postgres ping; injectable for tests.
	TestDatabase func(models.DatabaseSettings) error
}

// SetupRoutes mounts all API routes on the given subrouter (mounted at /api).
func SetupRoutes(router *mux.Router, h *Handler) {
	// Clusters
	router.HandleFunc("/clusters", h.ListClusters).Methods("GET")
	router.HandleFunc("/clusters/{id}/metrics", h.GetClusterMetrics).Methods("GET")
	router.HandleFunc("/clusters/{id}/namespaces", h.ListClusterNamespaces).Methods("GET")
	router.HandleFunc("/clusters/{id}/dependencies", h.ListClusterDependencies).Methods("GET")
	router.HandleFunc("/clusters/{id}/network/ingress-controllers", h.ListIngressControllers).Methods("GET")
	router.HandleFunc("/clusters/{id}/network/load-balancers", h.ListLoadBalancers).Methods("GET")
	router.HandleFunc("/clusters/{id}/network/routes", h.ListRoutes).Methods("GET")
	router.HandleFunc("/clusters/{id}/network/policies", h.ListPolicies).Methods("GET")
	router.HandleFunc("/clusters/{id}", h.GetCluster).Methods("GET")

	// Namespaces
	router.HandleFunc("/namespaces", h.ListNamespaces).Methods("GET")
	router.HandleFunc("/namespaces/{id}", h.GetNamespace).Methods("GET")

	// Dependencies
	router.HandleFunc("/dependencies", h.ListDependencies).Methods("GET")
	router.HandleFunc("/dependencies/type/{type}", h.ListDependenciesByType).Methods("GET")
	router.HandleFunc("/dependencies/{id}", h.GetDependency).Methods("GET")

	// Network resources
	router.HandleFunc("/network/resources", h.GetNetworkResources).Methods("GET")
	router.HandleFunc("/network/ingress-controllers", h.ListIngressControllers).Methods("GET")
	router.HandleFunc("/network/load-balancers", h.ListLoadBalancers).Methods("GET")
	router.HandleFunc("/network/routes", h.ListRoutes).Methods("GET")
	router.HandleFunc("/network/policies", h.ListPolicies).Methods("GET")

	// Settings
	router.HandleFunc("/settings/database", h.GetDatabaseSettings).Methods("GET")
	router.HandleFunc("/settings/database", h.SaveDatabaseSettings).Methods("POST")
	router.HandleFunc("/settings/database/test", h.TestDatabaseSettings).Methods("POST")
	router.HandleFunc("/settings/app", h.GetAppSettings).Methods("GET")
	router.HandleFunc("/settings/app", h.SaveAppSettings).Methods("POST")
	router.HandleFunc("/settings/auth", h.GetAuthSettings).Methods("GET")
	router.HandleFunc("/settings/auth", h.SaveAuthSettings).Methods("POST")
	router.HandleFunc("/settings/cloud-credentials", h.GetCloudCredentials).Methods("GET")
	router.HandleFunc("/settings/cloud-credentials", h.SaveCloudCredentials).Methods("POST")
	router.HandleFunc("/settings/cloud-credentials/test", h.TestCloudCredentials).Methods("POST")

	// Dashboard aggregates and curated datasets
	router.HandleFunc("/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/services", h.ListServices).Methods("GET")
	router.HandleFunc("/events", h.ListEvents).Methods("GET")
	router.HandleFunc("/workloads", h.ListWorkloads).Methods("GET")
	router.HandleFunc("/utilization", h.GetUtilization).Methods("GET")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
