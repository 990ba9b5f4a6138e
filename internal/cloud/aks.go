package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v4"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/aantony2/nautilus/internal/models"
)

// AKSProvider lists managed clusters in one Azure subscription using a
// client-secret service principal.
type AKSProvider struct {
	tenantID       string
	clientID       string
	clientSecret   string
	subscriptionID string
}

func NewAKSProvider(tenantID, clientID, clientSecret, subscriptionID string) *AKSProvider {
	return &AKSProvider{
		tenantID:       tenantID,
		clientID:       clientID,
		clientSecret:   clientSecret,
		subscriptionID: subscriptionID,
	}
}

func (p *AKSProvider) Name() models.CloudProvider { return models.ProviderAKS }

func (p *AKSProvider) Discover(ctx context.Context) ([]Discovery, error) {
	cred, err := azidentity.NewClientSecretCredential(p.tenantID, p.clientID, p.clientSecret, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	client, err := armcontainerservice.NewManagedClustersClient(p.subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create AKS client: %w", err)
	}

	var discoveries []Discovery
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list AKS clusters: %w", err)
		}
		for _, mc := range page.Value {
			if mc == nil || mc.Name == nil || mc.Properties == nil {
				continue
			}
			resourceGroup := resourceGroupFromID(deref(mc.ID))
			record := models.Cluster{
				ClusterID: fmt.Sprintf("aks-%s-%s-%s", p.subscriptionID, resourceGroup, *mc.Name),
				Name:      *mc.Name,
				Provider:  models.ProviderAKS,
				Version:   deref(mc.Properties.CurrentKubernetesVersion),
				VersionStatus: VersionFreshness(
					deref(mc.Properties.CurrentKubernetesVersion),
					deref(mc.Properties.KubernetesVersion)),
				Region:    deref(mc.Location),
				Status:    NormalizeAKSStatus(deref(mc.Properties.ProvisioningState)),
				CreatedAt: time.Now(),
				Metadata:  models.JSONMap{},
			}
			if record.Version == "" {
				record.Version = deref(mc.Properties.KubernetesVersion)
				record.VersionStatus = models.VersionUpToDate
			}
			if mc.Properties.AgentPoolProfiles != nil {
				total := 0
				for _, pool := range mc.Properties.AgentPoolProfiles {
					if pool != nil && pool.Count != nil {
						total += int(*pool.Count)
					}
				}
				record.NodesTotal = total
			}
			discoveries = append(discoveries, Discovery{
				Cluster: record,
				REST:    p.restConfig(ctx, client, resourceGroup, *mc.Name),
			})
		}
	}
	return discoveries, nil
}

// restConfig fetches the admin kubeconfig and parses it into a rest.Config.
// A failure here leaves REST nil; the cluster then skips enrichment but keeps
// its provider-level fields.
func (p *AKSProvider) restConfig(ctx context.Context, client *armcontainerservice.ManagedClustersClient, resourceGroup, name string) *rest.Config {
	resp, err := client.ListClusterAdminCredentials(ctx, resourceGroup, name, nil)
	if err != nil || len(resp.Kubeconfigs) == 0 || resp.Kubeconfigs[0].Value == nil {
		return nil
	}
	cfg, err := clientcmd.RESTConfigFromKubeConfig(resp.Kubeconfigs[0].Value)
	if err != nil {
		return nil
	}
	return cfg
}

// resourceGroupFromID extracts the resource group from an ARM resource ID.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourcegroups") {
			return parts[i+1]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
