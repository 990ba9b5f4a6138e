package models

import "time"

// Settings keys used by the dashboard. The settings table is a generic
// key -> JSON document store; rows are seeded lazily on first read.
const (
	SettingsKeyCloudCredentials = "cloud_credentials"
	SettingsKeyDatabase         = "db_settings"
	SettingsKeyApp              = "app_settings"
	SettingsKeyAuth             = "auth_settings"
)

// SecretMask is the sentinel returned in place of stored secret values. A
// POSTed field equal to this sentinel keeps the previously stored value; this
// is an explicit contract, not an incidental placeholder.
const SecretMask = "********"

// Setting is one row of the generic settings store.
type Setting struct {
	ID        int64     `json:"id" db:"id"`
	Key       string    `json:"key" db:"key"`
	Value     JSONMap   `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CloudCredentials holds per-provider enablement flags and credential fields,
// plus the cron expression driving the reconciliation schedule.
type CloudCredentials struct {
	GCPEnabled            bool   `json:"gcpEnabled"`
	GCPProjectID          string `json:"gcpProjectId"`
	GCPServiceAccountJSON string `json:"gcpServiceAccountJson"`

	AzureEnabled        bool   `json:"azureEnabled"`
	AzureTenantID       string `json:"azureTenantId"`
	AzureClientID       string `json:"azureClientId"`
	AzureClientSecret   string `json:"azureClientSecret"`
	AzureSubscriptionID string `json:"azureSubscriptionId"`

	AWSEnabled         bool   `json:"awsEnabled"`
	AWSAccessKeyID     string `json:"awsAccessKeyId"`
	AWSSecretAccessKey string `json:"awsSecretAccessKey"`
	AWSRegion          string `json:"awsRegion"`

	UpdateSchedule string `json:"updateSchedule"`
}

// DefaultUpdateSchedule runs the reconciliation daily at 02:00.
const DefaultUpdateSchedule = "0 2 * * *"

// DefaultCloudCredentials seeds the cloud_credentials row on first read.
func DefaultCloudCredentials() CloudCredentials {
	return CloudCredentials{UpdateSchedule: DefaultUpdateSchedule}
}

// GCPConfigured reports whether GKE discovery has everything it needs.
func (c CloudCredentials) GCPConfigured() bool {
	return c.GCPEnabled && c.GCPProjectID != "" && c.GCPServiceAccountJSON != ""
}

// AzureConfigured reports whether AKS discovery has everything it needs.
func (c CloudCredentials) AzureConfigured() bool {
	return c.AzureEnabled && c.AzureTenantID != "" && c.AzureClientID != "" &&
		c.AzureClientSecret != "" && c.AzureSubscriptionID != ""
}

// AWSConfigured reports whether EKS discovery has everything it needs.
func (c CloudCredentials) AWSConfigured() bool {
	return c.AWSEnabled && c.AWSAccessKeyID != "" && c.AWSSecretAccessKey != "" &&
		c.AWSRegion != ""
}

// AnyConfigured reports whether at least one provider can run.
func (c CloudCredentials) AnyConfigured() bool {
	return c.GCPConfigured() || c.AzureConfigured() || c.AWSConfigured()
}

// Masked returns a copy with secret fields replaced by SecretMask. Empty
// secrets stay empty so the UI can tell "unset" from "set".
func (c CloudCredentials) Masked() CloudCredentials {
	out := c
	if out.GCPServiceAccountJSON != "" {
		out.GCPServiceAccountJSON = SecretMask
	}
	if out.AzureClientSecret != "" {
		out.AzureClientSecret = SecretMask
	}
	if out.AWSSecretAccessKey != "" {
		out.AWSSecretAccessKey = SecretMask
	}
	return out
}

// MergeMasked returns a copy of c where any secret field equal to SecretMask
// is replaced with the corresponding value from prev.
func (c CloudCredentials) MergeMasked(prev CloudCredentials) CloudCredentials {
	out := c
	if out.GCPServiceAccountJSON == SecretMask {
		out.GCPServiceAccountJSON = prev.GCPServiceAccountJSON
	}
	if out.AzureClientSecret == SecretMask {
		out.AzureClientSecret = prev.AzureClientSecret
	}
	if out.AWSSecretAccessKey == SecretMask {
		out.AWSSecretAccessKey = prev.AWSSecretAccessKey
	}
	if out.UpdateSchedule == "" {
		out.UpdateSchedule = DefaultUpdateSchedule
	}
	return out
}

// DatabaseSettings is the db_settings document.
type DatabaseSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

// Masked returns a copy with the password replaced by SecretMask.
func (d DatabaseSettings) Masked() DatabaseSettings {
	out := d
	if out.Password != "" {
		out.Password = SecretMask
	}
	return out
}

// MergeMasked keeps the stored password when the posted one is the sentinel.
func (d DatabaseSettings) MergeMasked(prev DatabaseSettings) DatabaseSettings {
	out := d
	if out.Password == SecretMask {
		out.Password = prev.Password
	}
	return out
}

// AppSettings is the app_settings document (display preferences).
type AppSettings struct {
	RefreshInterval int    `json:"refreshInterval"`
	Theme           string `json:"theme"`
	DefaultView     string `json:"defaultView"`
	ShowSystemNS    bool   `json:"showSystemNamespaces"`
}

// DefaultAppSettings seeds the app_settings row on first read.
func DefaultAppSettings() AppSettings {
	return AppSettings{RefreshInterval: 30, Theme: "system", DefaultView: "clusters"}
}

// AuthSettings is the auth_settings document (optional Okta SSO).
type AuthSettings struct {
	SSOEnabled   bool   `json:"ssoEnabled"`
	OktaIssuer   string `json:"oktaIssuer"`
	OktaClientID string `json:"oktaClientId"`
	OktaSecret   string `json:"oktaClientSecret"`
}

// Masked returns a copy with the client secret replaced by SecretMask.
func (a AuthSettings) Masked() AuthSettings {
	out := a
	if out.OktaSecret != "" {
		out.OktaSecret = SecretMask
	}
	return out
}

// MergeMasked keeps the stored client secret when the posted one is the sentinel.
func (a AuthSettings) MergeMasked(prev AuthSettings) AuthSettings {
	out := a
	if out.OktaSecret == SecretMask {
		out.OktaSecret = prev.OktaSecret
	}
	return out
}
