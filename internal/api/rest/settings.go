package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aantony2/nautilus/internal/cloud"
	"github.com/aantony2/nautilus/internal/models"
	"github.com/aantony2/nautilus/internal/repository"
)

// Settings documents are read-modify-write with no optimistic locking; the
// last write wins.

// GetCloudCredentials handles GET /settings/cloud-credentials. Secret fields
// come back as the mask sentinel, never as stored values.
func (h *Handler) GetCloudCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := repository.LoadCloudCredentials(r.Context(), h.Settings)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch cloud credentials")
		return
	}
	respondJSON(w, http.StatusOK, creds.Masked())
}

// SaveCloudCredentials handles POST /settings/cloud-credentials. Posted
// secret fields equal to models.SecretMask keep the previously stored values.
func (h *Handler) SaveCloudCredentials(w http.ResponseWriter, r *http.Request) {
	var posted models.CloudCredentials
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	prev, err := repository.LoadCloudCredentials(r.Context(), h.Settings)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch cloud credentials")
		return
	}
	merged := posted.MergeMasked(prev)
	if err := h.Settings.Set(r.Context(), models.SettingsKeyCloudCredentials, merged); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save cloud credentials")
		return
	}
	respondJSON(w, http.StatusOK, merged.Masked())
}

// TestCloudCredentials handles POST /settings/cloud-credentials/test: one
// discovery pass per configured provider with a short deadline.
func (h *Handler) TestCloudCredentials(w http.ResponseWriter, r *http.Request) {
	var posted models.CloudCredentials
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	prev, err := repository.LoadCloudCredentials(r.Context(), h.Settings)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch cloud credentials")
		return
	}
	merged := posted.MergeMasked(prev)

	buildProviders := h.Providers
	if buildProviders == nil {
		buildProviders = cloud.EnabledProviders
	}
	providers := buildProviders(merged)
	if len(providers) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "No provider is enabled and fully configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 20*time.Second)
	defer cancel()

	type providerCheck struct {
		Provider models.CloudProvider `json:"provider"`
		Success  bool                 `json:"success"`
		Clusters int                  `json:"clusters"`
		Message  string               `json:"message,omitempty"`
	}
	checks := make([]providerCheck, 0, len(providers))
	allOK := true
	for _, p := range providers {
		discoveries, err := p.Discover(ctx)
		if err != nil {
			allOK = false
			checks = append(checks, providerCheck{Provider: p.Name(), Message: err.Error()})
			continue
		}
		checks = append(checks, providerCheck{Provider: p.Name(), Success: true, Clusters: len(discoveries)})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": allOK, "providers": checks})
}

// GetDatabaseSettings handles GET /settings/database.
func (h *Handler) GetDatabaseSettings(w http.ResponseWriter, r *http.Request) {
	settings := models.DatabaseSettings{Port: 5432, SSLMode: "require"}
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyDatabase, &settings); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch database settings")
		return
	}
	respondJSON(w, http.StatusOK, settings.Masked())
}

// SaveDatabaseSettings handles POST /settings/database.
func (h *Handler) SaveDatabaseSettings(w http.ResponseWriter, r *http.Request) {
	var posted models.DatabaseSettings
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	var prev models.DatabaseSettings
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyDatabase, &prev); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch database settings")
		return
	}
	merged := posted.MergeMasked(prev)
	if err := h.Settings.Set(r.Context(), models.SettingsKeyDatabase, merged); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save database settings")
		return
	}
	respondJSON(w, http.StatusOK, merged.Masked())
}

// TestDatabaseSettings handles POST /settings/database/test.
func (h *Handler) TestDatabaseSettings(w http.ResponseWriter, r *http.Request) {
	var posted models.DatabaseSettings
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	var prev models.DatabaseSettings
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyDatabase, &prev); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch database settings")
		return
	}
	merged := posted.MergeMasked(prev)

	test := h.TestDatabase
	if test == nil {
		test = pingPostgres
	}
	if err := test(merged); err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{"success": false, "message": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Connection successful"})
}

func pingPostgres(s models.DatabaseSettings) error {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=5",
		s.Host, s.Port, s.Database, s.Username, s.Password, s.SSLMode)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

// GetAppSettings handles GET /settings/app.
func (h *Handler) GetAppSettings(w http.ResponseWriter, r *http.Request) {
	settings := models.DefaultAppSettings()
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyApp, &settings); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch app settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// SaveAppSettings handles POST /settings/app.
func (h *Handler) SaveAppSettings(w http.ResponseWriter, r *http.Request) {
	var posted models.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	if err := h.Settings.Set(r.Context(), models.SettingsKeyApp, posted); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save app settings")
		return
	}
	respondJSON(w, http.StatusOK, posted)
}

// GetAuthSettings handles GET /settings/auth.
func (h *Handler) GetAuthSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AuthSettings
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyAuth, &settings); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch auth settings")
		return
	}
	respondJSON(w, http.StatusOK, settings.Masked())
}

// SaveAuthSettings handles POST /settings/auth.
func (h *Handler) SaveAuthSettings(w http.ResponseWriter, r *http.Request) {
	var posted models.AuthSettings
	if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}
	var prev models.AuthSettings
	if _, err := h.Settings.Get(r.Context(), models.SettingsKeyAuth, &prev); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch auth settings")
		return
	}
	merged := posted.MergeMasked(prev)
	if err := h.Settings.Set(r.Context(), models.SettingsKeyAuth, merged); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to save auth settings")
		return
	}
	respondJSON(w, http.StatusOK, merged.Masked())
}
