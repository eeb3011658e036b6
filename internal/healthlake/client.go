// Package healthlake wraps the HealthLake import operations: datastore
// describe and FHIR import job submission.
package healthlake

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/healthlake"
	"github.com/aws/aws-sdk-go-v2/service/healthlake/types"
)

// Client wraps the AWS HealthLake client.
type Client struct {
	hlClient *healthlake.Client
	config   aws.Config
}

// NewClient creates a new HealthLake client from a resolved AWS config.
func NewClient(cfg aws.Config) *Client {
	return &Client{
		hlClient: healthlake.NewFromConfig(cfg),
		config:   cfg,
	}
}

// GetClient returns the underlying HealthLake client.
func (c *Client) GetClient() *healthlake.Client {
	return c.hlClient
}

// DatastoreInfo is the subset of datastore properties the tool reports.
type DatastoreInfo struct {
	ID       string
	Name     string
	Status   string
	Endpoint string
}

// DescribeDatastore verifies the datastore exists and is reachable.
func (c *Client) DescribeDatastore(ctx context.Context, datastoreID string) (DatastoreInfo, error) {
	out, err := c.hlClient.DescribeFHIRDatastore(ctx, &healthlake.DescribeFHIRDatastoreInput{
		DatastoreId: aws.String(datastoreID),
	})
	if err != nil {
		return DatastoreInfo{}, fmt.Errorf("describe datastore %s: %w", datastoreID, err)
	}

	info := DatastoreInfo{ID: datastoreID, Status: string(out.DatastoreProperties.DatastoreStatus)}
	if out.DatastoreProperties.DatastoreName != nil {
		info.Name = *out.DatastoreProperties.DatastoreName
	}
	if out.DatastoreProperties.DatastoreEndpoint != nil {
		info.Endpoint = *out.DatastoreProperties.DatastoreEndpoint
	}
	return info, nil
}

// ImportRequest describes one import job submission. An ImportRequest is
// only ever built for an object that is already present at SourceURI.
type ImportRequest struct {
	DatastoreID       string
	SourceURI         string
	JobName           string
	DataAccessRoleArn string
	OutputURI         string
	KMSKeyArn         string
}

// StartImport submits one FHIR import job and returns the job ID.
func (c *Client) StartImport(ctx context.Context, req ImportRequest) (string, error) {
	s3Config := types.S3Configuration{
		S3Uri: aws.String(req.OutputURI),
	}
	if req.KMSKeyArn != "" {
		s3Config.KmsKeyId = aws.String(req.KMSKeyArn)
	}

	out, err := c.hlClient.StartFHIRImportJob(ctx, &healthlake.StartFHIRImportJobInput{
		DatastoreId:       aws.String(req.DatastoreID),
		JobName:           aws.String(req.JobName),
		DataAccessRoleArn: aws.String(req.DataAccessRoleArn),
		InputDataConfig: &types.InputDataConfigMemberS3Uri{
			Value: req.SourceURI,
		},
		JobOutputDataConfig: &types.OutputDataConfigMemberS3Configuration{
			Value: s3Config,
		},
	})
	if err != nil {
		return "", fmt.Errorf("start import for %s: %w", req.SourceURI, err)
	}
	if out.JobId == nil {
		return "", fmt.Errorf("start import for %s: no job id in response", req.SourceURI)
	}
	return *out.JobId, nil
}
