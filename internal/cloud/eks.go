package cloud

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"k8s.io/client-go/rest"

	"github.com/aantony2/nautilus/internal/models"
)

// tokenPrefix is the bearer-token encoding the EKS API server expects from
// aws-iam-authenticator style tokens.
const tokenPrefix = "k8s-aws-v1."

// EKSProvider lists EKS clusters in one region using static credentials.
type EKSProvider struct {
	accessKeyID     string
	secretAccessKey string
	region          string
}

func NewEKSProvider(accessKeyID, secretAccessKey, region string) *EKSProvider {
	return &EKSProvider{accessKeyID: accessKeyID, secretAccessKey: secretAccessKey, region: region}
}

func (p *EKSProvider) Name() models.CloudProvider { return models.ProviderEKS }

func (p *EKSProvider) Discover(ctx context.Context) ([]Discovery, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(p.region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.accessKeyID, p.secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := eks.NewFromConfig(awsCfg)

	var names []string
	paginator := eks.NewListClustersPaginator(client, &eks.ListClustersInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list EKS clusters: %w", err)
		}
		names = append(names, page.Clusters...)
	}

	discoveries := make([]Discovery, 0, len(names))
	for _, name := range names {
		out, err := client.DescribeCluster(ctx, &eks.DescribeClusterInput{Name: aws.String(name)})
		if err != nil {
			return nil, fmt.Errorf("failed to describe EKS cluster %s: %w", name, err)
		}
		c := out.Cluster
		record := models.Cluster{
			ClusterID: fmt.Sprintf("eks-%s-%s", p.region, name),
			Name:      name,
			Provider:  models.ProviderEKS,
			Version:   aws.ToString(c.Version),
			// EKS does not report the requested version after upgrades.
			VersionStatus: models.VersionUpToDate,
			Region:        p.region,
			Status:        NormalizeEKSStatus(string(c.Status)),
			CreatedAt:     aws.ToTime(c.CreatedAt),
			Metadata:      models.JSONMap{},
		}
		var restCfg *rest.Config
		if c.Endpoint != nil && c.CertificateAuthority != nil && c.CertificateAuthority.Data != nil {
			token, err := p.bearerToken(ctx, awsCfg, name)
			if err == nil {
				if ca, decErr := base64.StdEncoding.DecodeString(*c.CertificateAuthority.Data); decErr == nil {
					restCfg = &rest.Config{
						Host:            *c.Endpoint,
						BearerToken:     token,
						TLSClientConfig: rest.TLSClientConfig{CAData: ca},
					}
				}
			}
		}
		discoveries = append(discoveries, Discovery{Cluster: record, REST: restCfg})
	}
	return discoveries, nil
}

// bearerToken builds the presigned STS GetCallerIdentity token the EKS API
// server authenticates. The x-k8s-aws-id header binds the token to one
// cluster; expiry is 60 seconds, ample for an enrichment pass.
func (p *EKSProvider) bearerToken(ctx context.Context, awsCfg aws.Config, clusterName string) (string, error) {
	presigner := sts.NewPresignClient(sts.NewFromConfig(awsCfg))
	presigned, err := presigner.PresignGetCallerIdentity(ctx, &sts.GetCallerIdentityInput{},
		func(po *sts.PresignOptions) {
			po.ClientOptions = append(po.ClientOptions, func(o *sts.Options) {
				o.APIOptions = append(o.APIOptions,
					smithyhttp.AddHeaderValue("x-k8s-aws-id", clusterName),
					smithyhttp.AddHeaderValue("X-Amz-Expires", "60"),
				)
			})
		})
	if err != nil {
		return "", fmt.Errorf("failed to presign STS request: %w", err)
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(presigned.URL)), nil
}
