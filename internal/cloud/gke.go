package cloud

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	container "cloud.google.com/go/container/apiv1"
	"cloud.google.com/go/container/apiv1/containerpb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/models"
)

// GKEProvider lists GKE clusters across all locations of one project using a
// service-account key.
type GKEProvider struct {
	projectID string
	saJSON    []byte
}

func NewGKEProvider(projectID string, saJSON []byte) *GKEProvider {
	return &GKEProvider{projectID: projectID, saJSON: saJSON}
}

func (p *GKEProvider) Name() models.CloudProvider { return models.ProviderGKE }

func (p *GKEProvider) Discover(ctx context.Context) ([]Discovery, error) {
	client, err := container.NewClusterManagerClient(ctx, option.WithCredentialsJSON(p.saJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create GKE client: %w", err)
	}
	defer client.Close()

	resp, err := client.ListClusters(ctx, &containerpb.ListClustersRequest{
		Parent: fmt.Sprintf("projects/%s/locations/-", p.projectID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list GKE clusters: %w", err)
	}

	// One short-lived access token is shared by every cluster in the run.
	creds, err := google.CredentialsFromJSON(ctx, p.saJSON, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to parse GCP credentials: %w", err)
	}
	tok, err := creds.TokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to mint GCP access token: %w", err)
	}

	discoveries := make([]Discovery, 0, len(resp.Clusters))
	for _, c := range resp.Clusters {
		record := models.Cluster{
			ClusterID:     fmt.Sprintf("gke-%s-%s-%s", p.projectID, c.Location, c.Name),
			Name:          c.Name,
			Provider:      models.ProviderGKE,
			Version:       c.CurrentMasterVersion,
			VersionStatus: VersionFreshness(c.CurrentMasterVersion, c.InitialClusterVersion),
			Region:        c.Location,
			Status:        NormalizeGKEStatus(c.Status.String()),
			NodesTotal:    int(c.CurrentNodeCount),
			CreatedAt:     parseGKETime(c.CreateTime),
			Metadata:      models.JSONMap{},
		}
		discoveries = append(discoveries, Discovery{
			Cluster: record,
			REST:    gkeRESTConfig(c, tok.AccessToken),
		})
	}
	return discoveries, nil
}

func gkeRESTConfig(c *containerpb.Cluster, accessToken string) *rest.Config {
	if c.Endpoint == "" || c.MasterAuth == nil {
		return nil
	}
	ca, err := base64.StdEncoding.DecodeString(c.MasterAuth.ClusterCaCertificate)
	if err != nil {
		return nil
	}
	return &rest.Config{
		Host:            "https://" + c.Endpoint,
		BearerToken:     accessToken,
		TLSClientConfig: rest.TLSClientConfig{CAData: ca},
	}
}

func parseGKETime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now()
	}
	return t
}
