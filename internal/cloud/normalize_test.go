package cloud

import (
	"testing"

	"github.com/aantony2/nautilus/internal/models"
)

func TestNormalizeGKEStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"RUNNING", models.StatusHealthy},
		{"DEGRADED", models.StatusWarning},
		{"RECONCILING", models.StatusWarning},
		{"STOPPING", models.StatusCritical},
		{"ERROR", models.StatusCritical},
		{"", models.StatusCritical},
	}
	for _, tt := range tests {
		if got := NormalizeGKEStatus(tt.status); got != tt.want {
			t.Errorf("NormalizeGKEStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestNormalizeAKSStatus(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Succeeded", models.StatusHealthy},
		{"Updating", models.StatusWarning},
		{"Upgrading", models.StatusWarning},
		{"Failed", models.StatusCritical},
	}
	for _, tt := range tests {
		if got := NormalizeAKSStatus(tt.state); got != tt.want {
			t.Errorf("NormalizeAKSStatus(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNormalizeEKSStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"ACTIVE", models.StatusHealthy},
		{"UPDATING", models.StatusWarning},
		{"CREATING", models.StatusCritical},
		{"FAILED", models.StatusCritical},
	}
	for _, tt := range tests {
		if got := NormalizeEKSStatus(tt.status); got != tt.want {
			t.Errorf("NormalizeEKSStatus(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestVersionFreshness(t *testing.T) {
	if got := VersionFreshness("1.29.4", "1.29.4"); got != models.VersionUpToDate {
		t.Errorf("same versions: got %q", got)
	}
	if got := VersionFreshness("1.30.1", "1.29.4"); got != models.VersionUpdateAvailable {
		t.Errorf("upgraded cluster: got %q", got)
	}
	if got := VersionFreshness("1.30.1", ""); got != models.VersionUpToDate {
		t.Errorf("missing baseline defaults to up to date: got %q", got)
	}
}

func TestEnabledProviders_OnlyGCP(t *testing.T) {
	creds := models.CloudCredentials{
		GCPEnabled:            true,
		GCPProjectID:          "acme-prod",
		GCPServiceAccountJSON: `{"type":"service_account"}`,
	}
	providers := EnabledProviders(creds)
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if providers[0].Name() != models.ProviderGKE {
		t.Errorf("expected GKE provider, got %s", providers[0].Name())
	}
}

func TestEnabledProviders_MissingFieldsSkippedSilently(t *testing.T) {
	// Enabled but incomplete providers are skipped, not an error.
	creds := models.CloudCredentials{
		GCPEnabled:   true, // no project or key
		AzureEnabled: true,
		AWSEnabled:   true,
		AWSRegion:    "eu-west-1", // no access keys
	}
	if providers := EnabledProviders(creds); len(providers) != 0 {
		t.Errorf("expected no providers, got %d", len(providers))
	}
}

func TestEnabledProviders_AllConfigured(t *testing.T) {
	creds := models.CloudCredentials{
		GCPEnabled: true, GCPProjectID: "p", GCPServiceAccountJSON: "{}",
		AzureEnabled: true, AzureTenantID: "t", AzureClientID: "c",
		AzureClientSecret: "s", AzureSubscriptionID: "sub",
		AWSEnabled: true, AWSAccessKeyID: "AKIA", AWSSecretAccessKey: "secret",
		AWSRegion: "us-east-1",
	}
	providers := EnabledProviders(creds)
	if len(providers) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(providers))
	}
	want := []models.CloudProvider{models.ProviderGKE, models.ProviderAKS, models.ProviderEKS}
	for i, p := range providers {
		if p.Name() != want[i] {
			t.Errorf("provider %d = %s, want %s", i, p.Name(), want[i])
		}
	}
}

func TestResourceGroupFromID(t *testing.T) {
	id := "/subscriptions/0000/resourceGroups/prod-rg/providers/Microsoft.ContainerService/managedClusters/prod-aks"
	if got := resourceGroupFromID(id); got != "prod-rg" {
		t.Errorf("resourceGroupFromID() = %q, want %q", got, "prod-rg")
	}
	if got := resourceGroupFromID("garbage"); got != "" {
		t.Errorf("expected empty for malformed id, got %q", got)
	}
}
