package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aantony2/nautilus/internal/cloud"
	"github.com/aantony2/nautilus/internal/models"
	"github.com/aantony2/nautilus/internal/pkg/logger"
)

// fakeSettings implements repository.SettingsRepository in memory.
type fakeSettings struct {
	docs map[string]json.RawMessage
}

func (f *fakeSettings) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok := f.docs[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (f *fakeSettings) Set(ctx context.Context, key string, value interface{}) error {
	if f.docs == nil {
		f.docs = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.docs[key] = raw
	return nil
}

func (f *fakeSettings) stored(t *testing.T, key string, out interface{}) {
	t.Helper()
	raw, ok := f.docs[key]
	require.True(t, ok, "no stored document for %s", key)
	require.NoError(t, json.Unmarshal(raw, out))
}

func newSettingsRouter(h *Handler) *mux.Router {
	if h.Log == nil {
		h.Log = logger.StdLogger()
	}
	router := mux.NewRouter()
	SetupRoutes(router, h)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetCloudCredentials_SecretsAreMasked(t *testing.T) {
	settings := &fakeSettings{}
	creds := models.DefaultCloudCredentials()
	creds.AWSEnabled = true
	creds.AWSAccessKeyID = "AKIAEXAMPLE"
	creds.AWSSecretAccessKey = "real-secret"
	creds.AWSRegion = "eu-west-1"
	require.NoError(t, settings.Set(context.Background(), models.SettingsKeyCloudCredentials, creds))

	router := newSettingsRouter(&Handler{Settings: settings})
	rec := doJSON(t, router, http.MethodGet, "/settings/cloud-credentials", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.CloudCredentials
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.SecretMask, got.AWSSecretAccessKey)
	assert.Equal(t, "AKIAEXAMPLE", got.AWSAccessKeyID)
}

func TestSaveCloudCredentials_MaskedSecretsKeepStoredValues(t *testing.T) {
	settings := &fakeSettings{}
	creds := models.DefaultCloudCredentials()
	creds.GCPEnabled = true
	creds.GCPProjectID = "acme-prod"
	creds.GCPServiceAccountJSON = `{"type":"service_account"}`
	creds.AWSSecretAccessKey = "aws-real"
	require.NoError(t, settings.Set(context.Background(), models.SettingsKeyCloudCredentials, creds))

	router := newSettingsRouter(&Handler{Settings: settings})

	// Simulate a UI round-trip: fetch the masked form, change one plain
	// field, post it back untouched otherwise.
	posted := creds.Masked()
	posted.GCPProjectID = "acme-staging"
	rec := doJSON(t, router, http.MethodPost, "/settings/cloud-credentials", posted)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.CloudCredentials
	settings.stored(t, models.SettingsKeyCloudCredentials, &stored)
	assert.Equal(t, `{"type":"service_account"}`, stored.GCPServiceAccountJSON)
	assert.Equal(t, "aws-real", stored.AWSSecretAccessKey)
	assert.Equal(t, "acme-staging", stored.GCPProjectID)

	// The response itself never echoes real secrets.
	var echoed models.CloudCredentials
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &echoed))
	assert.Equal(t, models.SecretMask, echoed.GCPServiceAccountJSON)
}

func TestSaveCloudCredentials_NewSecretReplacesStored(t *testing.T) {
	settings := &fakeSettings{}
	creds := models.DefaultCloudCredentials()
	creds.AzureClientSecret = "old-secret"
	require.NoError(t, settings.Set(context.Background(), models.SettingsKeyCloudCredentials, creds))

	router := newSettingsRouter(&Handler{Settings: settings})
	posted := creds
	posted.AzureClientSecret = "new-secret"
	rec := doJSON(t, router, http.MethodPost, "/settings/cloud-credentials", posted)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.CloudCredentials
	settings.stored(t, models.SettingsKeyCloudCredentials, &stored)
	assert.Equal(t, "new-secret", stored.AzureClientSecret)
}

func TestTestCloudCredentials_NothingConfigured(t *testing.T) {
	router := newSettingsRouter(&Handler{
		Settings:  &fakeSettings{},
		Providers: func(models.CloudCredentials) []cloud.Provider { return nil },
	})

	rec := doJSON(t, router, http.MethodPost, "/settings/cloud-credentials/test", models.DefaultCloudCredentials())
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestTestDatabaseSettings_UsesMergedPassword(t *testing.T) {
	settings := &fakeSettings{}
	require.NoError(t, settings.Set(context.Background(), models.SettingsKeyDatabase, models.DatabaseSettings{
		Host: "db.internal", Port: 5432, Database: "nautilus",
		Username: "app", Password: "stored-password", SSLMode: "require",
	}))

	var pinged models.DatabaseSettings
	router := newSettingsRouter(&Handler{
		Settings: settings,
		TestDatabase: func(s models.DatabaseSettings) error {
			pinged = s
			return nil
		},
	})

	posted := models.DatabaseSettings{
		Host: "db.internal", Port: 5432, Database: "nautilus",
		Username: "app", Password: models.SecretMask, SSLMode: "require",
	}
	rec := doJSON(t, router, http.MethodPost, "/settings/database/test", posted)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "stored-password", pinged.Password)

	var body struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
}

func TestTestDatabaseSettings_ReportsFailureWithoutError(t *testing.T) {
	router := newSettingsRouter(&Handler{
		Settings:     &fakeSettings{},
		TestDatabase: func(models.DatabaseSettings) error { return errors.New("connection refused") },
	})

	rec := doJSON(t, router, http.MethodPost, "/settings/database/test", models.DatabaseSettings{Host: "nowhere"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "connection refused")
}

func TestGetAppSettings_DefaultsWhenUnset(t *testing.T) {
	router := newSettingsRouter(&Handler{Settings: &fakeSettings{}})
	rec := doJSON(t, router, http.MethodGet, "/settings/app", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.AppSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.DefaultAppSettings(), got)
}

func TestSaveAuthSettings_MaskedSecretPreserved(t *testing.T) {
	settings := &fakeSettings{}
	require.NoError(t, settings.Set(context.Background(), models.SettingsKeyAuth, models.AuthSettings{
		SSOEnabled: true, OktaIssuer: "https://acme.okta.com", OktaClientID: "cid", OktaSecret: "okta-real",
	}))

	router := newSettingsRouter(&Handler{Settings: settings})
	rec := doJSON(t, router, http.MethodPost, "/settings/auth", models.AuthSettings{
		SSOEnabled: true, OktaIssuer: "https://acme.okta.com", OktaClientID: "cid", OktaSecret: models.SecretMask,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.AuthSettings
	settings.stored(t, models.SettingsKeyAuth, &stored)
	assert.Equal(t, "okta-real", stored.OktaSecret)
}
