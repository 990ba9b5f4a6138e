// Package cloud discovers managed Kubernetes clusters from GKE, AKS and EKS
// and normalizes them into the canonical cluster record.
package cloud

import (
	"context"

	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/models"
)

// Discovery pairs one canonical cluster record (counts zero-filled, completed
// later by enrichment) with an optional rest.Config for direct API-server
// access. The config carries short-lived credentials and must not outlive the
// pipeline run.
type Discovery struct {
	Cluster models.Cluster
	REST    *rest.Config
}

// Provider enumerates the clusters visible to one cloud account.
type Provider interface {
	Name() models.CloudProvider
	Discover(ctx context.Context) ([]Discovery, error)
}

// EnabledProviders returns a provider per cloud whose enabled flag is set and
// whose required credential fields are present. Anything else is silently
// skipped, not an error.
func EnabledProviders(creds models.CloudCredentials) []Provider {
	var providers []Provider
	if creds.GCPConfigured() {
		providers = append(providers, NewGKEProvider(creds.GCPProjectID, []byte(creds.GCPServiceAccountJSON)))
	}
	if creds.AzureConfigured() {
		providers = append(providers, NewAKSProvider(
			creds.AzureTenantID, creds.AzureClientID, creds.AzureClientSecret, creds.AzureSubscriptionID))
	}
	if creds.AWSConfigured() {
		providers = append(providers, NewEKSProvider(creds.AWSAccessKeyID, creds.AWSSecretAccessKey, creds.AWSRegion))
	}
	return providers
}
