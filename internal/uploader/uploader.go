// Package uploader syncs a local directory of FHIR bundles into an
// object store bucket, skipping keys that are already present.
package uploader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Basfar/aws-healthlake-experiments/internal/bundle"
	"github.com/Basfar/aws-healthlake-experiments/internal/faults"
)

// ObjectStore is the storage capability the uploader needs.
type ObjectStore interface {
	Exists(ctx context.Context, bucket, key string) (bool, error)
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// Status of one file's sync attempt.
type Status string

const (
	StatusUploaded Status = "uploaded"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Outcome records what happened to a single bundle file.
type Outcome struct {
	Key    string      `json:"key"`
	Status Status      `json:"status"`
	Reason faults.Kind `json:"reason,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Options tune a sync run.
type Options struct {
	// NDJSON converts each bundle to newline-delimited JSON before
	// upload; the stored key gains an .ndjson extension.
	NDJSON bool
}

// Uploader orchestrates the scanner and the object store.
type Uploader struct {
	store ObjectStore
	opts  Options
}

func New(store ObjectStore, opts Options) *Uploader {
	return &Uploader{store: store, opts: opts}
}

// Sync walks localRoot and uploads every bundle file missing from the
// bucket. Re-running against an unchanged directory uploads nothing.
// Per-file failures are recorded and the walk continues; only an invalid
// localRoot or a walk failure aborts the run.
func (u *Uploader) Sync(ctx context.Context, localRoot, bucket string) ([]Outcome, error) {
	scanner := bundle.NewScanner(localRoot)
	if err := scanner.CheckRoot(); err != nil {
		return nil, err
	}

	var outcomes []Outcome
	err := scanner.Walk(func(f bundle.File) error {
		outcomes = append(outcomes, u.syncOne(ctx, f, bucket))
		return nil
	})
	if err != nil {
		return outcomes, fmt.Errorf("walk %s: %w", localRoot, err)
	}
	return outcomes, nil
}

func (u *Uploader) syncOne(ctx context.Context, f bundle.File, bucket string) Outcome {
	key := f.Key
	contentType := "application/json"
	if u.opts.NDJSON {
		key = strings.TrimSuffix(key, bundle.Extension) + ".ndjson"
		contentType = "application/x-ndjson"
	}

	exists, err := u.store.Exists(ctx, bucket, key)
	if err != nil {
		return Outcome{Key: key, Status: StatusFailed, Reason: faults.Classify(err), Detail: err.Error()}
	}
	if exists {
		slog.Debug("Object already present, skipping", "bucket", bucket, "key", key)
		return Outcome{Key: key, Status: StatusSkipped, Detail: "already present"}
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Outcome{Key: key, Status: StatusFailed, Reason: faults.KindNotFound, Detail: err.Error()}
		}
		return Outcome{Key: key, Status: StatusFailed, Reason: faults.Classify(err), Detail: err.Error()}
	}
	if len(data) == 0 {
		return Outcome{Key: key, Status: StatusSkipped, Detail: "empty file"}
	}

	if u.opts.NDJSON {
		data, err = bundle.ToNDJSON(data)
		if err != nil {
			return Outcome{Key: key, Status: StatusFailed, Reason: faults.KindRejected, Detail: err.Error()}
		}
	}

	if err := u.store.Put(ctx, bucket, key, data, contentType); err != nil {
		return Outcome{Key: key, Status: StatusFailed, Reason: faults.Classify(err), Detail: err.Error()}
	}
	slog.Debug("Uploaded bundle", "bucket", bucket, "key", key)
	return Outcome{Key: key, Status: StatusUploaded}
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
