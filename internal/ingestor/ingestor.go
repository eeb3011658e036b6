// Package ingestor submits one HealthLake import job per object stored
// in the source bucket.
package ingestor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Basfar/aws-healthlake-experiments/internal/faults"
	"github.com/Basfar/aws-healthlake-experiments/internal/healthlake"
)

// Import output lands in the source bucket under this reserved prefix.
const OutputPrefix = "healthlake-start_fhir_import_job-output/"

// BucketLister is the storage capability the ingestor needs.
type BucketLister interface {
	List(ctx context.Context, bucket string) ([]string, error)
}

// ImportStarter is the import-service capability the ingestor needs.
type ImportStarter interface {
	StartImport(ctx context.Context, req healthlake.ImportRequest) (string, error)
}

// Status of one key's submission.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusFailed    Status = "failed"
	// StatusNothing is the single informational outcome for an empty
	// bucket; it is not an error.
	StatusNothing Status = "nothing-to-ingest"
)

// Outcome records the result of one import submission.
type Outcome struct {
	Key    string      `json:"key,omitempty"`
	JobID  string      `json:"job_id,omitempty"`
	Status Status      `json:"status"`
	Reason faults.Kind `json:"reason,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Params identify the ingest destination.
type Params struct {
	Bucket            string
	DatastoreID       string
	DataAccessRoleArn string
	KMSKeyArn         string
}

// Ingestor orchestrates the bucket listing and job submission.
type Ingestor struct {
	store  BucketLister
	client ImportStarter
}

func New(store BucketLister, client ImportStarter) *Ingestor {
	return &Ingestor{store: store, client: client}
}

// IngestAll lists the bucket and submits one import job per key, in
// listing order. A listing failure is fatal; a per-key submission
// failure is recorded and the remaining keys are still submitted.
func (i *Ingestor) IngestAll(ctx context.Context, p Params) ([]Outcome, error) {
	keys, err := i.store.List(ctx, p.Bucket)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []Outcome{{Status: StatusNothing, Detail: fmt.Sprintf("no objects found in bucket %s", p.Bucket)}}, nil
	}

	outcomes := make([]Outcome, 0, len(keys))
	for _, key := range keys {
		req := healthlake.ImportRequest{
			DatastoreID:       p.DatastoreID,
			SourceURI:         fmt.Sprintf("s3://%s/%s", p.Bucket, key),
			JobName:           healthlake.JobName(key),
			DataAccessRoleArn: p.DataAccessRoleArn,
			OutputURI:         fmt.Sprintf("s3://%s/%s", p.Bucket, OutputPrefix),
			KMSKeyArn:         p.KMSKeyArn,
		}

		jobID, err := i.client.StartImport(ctx, req)
		if err != nil {
			outcomes = append(outcomes, Outcome{
				Key:    key,
				Status: StatusFailed,
				Reason: faults.Classify(err),
				Detail: err.Error(),
			})
			continue
		}
		slog.Debug("Import job started", "key", key, "job_id", jobID)
		outcomes = append(outcomes, Outcome{Key: key, JobID: jobID, Status: StatusSubmitted})
	}
	return outcomes, nil
}

// Failed counts outcomes with StatusFailed.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == StatusFailed {
			n++
		}
	}
	return n
}
