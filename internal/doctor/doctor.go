// Package doctor verifies credentials and reachability of the bucket
// and datastore before any real work is attempted.
package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/Basfar/aws-healthlake-experiments/internal/healthlake"
)

// BucketHeader is the storage capability the doctor needs.
type BucketHeader interface {
	HeadBucket(ctx context.Context, bucket string) error
}

// DatastoreDescriber is the import-service capability the doctor needs.
type DatastoreDescriber interface {
	DescribeDatastore(ctx context.Context, datastoreID string) (healthlake.DatastoreInfo, error)
}

// Check is one diagnostic result. Checks are accumulated in order and
// never discarded.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Result is the full diagnostic report.
type Result struct {
	Checks        []Check `json:"checks"`
	OverallPassed bool    `json:"overall_passed"`
}

// CheckEnv verifies the required credential variables are present and
// names each one that is missing. It is split out so it can run before
// any client is constructed.
func CheckEnv() Check {
	missing := config.MissingEnvVars()
	if len(missing) > 0 {
		return Check{
			Name:   "credentials",
			Passed: false,
			Detail: fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")),
		}
	}
	return Check{Name: "credentials", Passed: true, Detail: "all required environment variables are set"}
}

// Doctor runs the remote reachability checks.
type Doctor struct {
	store  BucketHeader
	client DatastoreDescriber
}

func New(store BucketHeader, client DatastoreDescriber) *Doctor {
	return &Doctor{store: store, client: client}
}

// Check runs the full diagnostic sequence. A missing credential variable
// aborts before any remote call; after that, the bucket and datastore
// checks both run regardless of each other's outcome.
func (d *Doctor) Check(ctx context.Context, bucket, datastoreID string) Result {
	res := Result{}

	env := CheckEnv()
	res.Checks = append(res.Checks, env)
	if !env.Passed {
		return res
	}

	bucketCheck := Check{Name: "s3-bucket"}
	if err := d.store.HeadBucket(ctx, bucket); err != nil {
		bucketCheck.Detail = err.Error()
	} else {
		bucketCheck.Passed = true
		bucketCheck.Detail = fmt.Sprintf("bucket %s exists and is accessible", bucket)
	}
	res.Checks = append(res.Checks, bucketCheck)

	dsCheck := Check{Name: "healthlake-datastore"}
	if info, err := d.client.DescribeDatastore(ctx, datastoreID); err != nil {
		dsCheck.Detail = err.Error()
	} else {
		dsCheck.Passed = true
		dsCheck.Detail = fmt.Sprintf("datastore %s (%s) is %s", datastoreID, info.Name, info.Status)
	}
	res.Checks = append(res.Checks, dsCheck)

	res.OverallPassed = true
	for _, c := range res.Checks {
		if !c.Passed {
			res.OverallPassed = false
			break
		}
	}
	return res
}
