package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/Basfar/aws-healthlake-experiments/internal/report"
	"github.com/Basfar/aws-healthlake-experiments/internal/storage"
	"github.com/Basfar/aws-healthlake-experiments/internal/uploader"
	"github.com/spf13/cobra"
)

var syncStoreFlags struct {
	bucketName   string
	path         string
	ndjson       bool
	outputFormat string
	outputFile   string
}

var syncStoreCmd = &cobra.Command{
	Use:   "sync-store",
	Short: "Upload a directory of FHIR bundles to S3",
	Long: `Walks a local directory for .json bundle files and uploads each one to
the bucket under its relative path. Objects that already exist are
skipped, so re-running after a partial upload transfers nothing twice.`,
	RunE: runSyncStore,
}

func init() {
	syncStoreCmd.Flags().StringVar(&syncStoreFlags.bucketName, "bucket-name", "", "Destination S3 bucket")
	syncStoreCmd.Flags().StringVar(&syncStoreFlags.path, "path", "", "Local directory of FHIR bundles")
	syncStoreCmd.Flags().BoolVar(&syncStoreFlags.ndjson, "ndjson", false, "Convert bundles to NDJSON before upload")
	syncStoreCmd.Flags().StringVarP(&syncStoreFlags.outputFormat, "format", "f", "text", "Output format: text or json")
	syncStoreCmd.Flags().StringVarP(&syncStoreFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
	_ = syncStoreCmd.MarkFlagRequired("bucket-name")
	_ = syncStoreCmd.MarkFlagRequired("path")
}

func runSyncStore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	creds, err := config.FromEnv()
	if err != nil {
		return err
	}
	awsCfg, err := creds.AWSConfig(ctx)
	if err != nil {
		return enhanceError("AWS client initialization", err)
	}

	printStatus("Syncing %s to s3://%s", syncStoreFlags.path, syncStoreFlags.bucketName)
	up := uploader.New(storage.NewClient(awsCfg), uploader.Options{NDJSON: syncStoreFlags.ndjson})
	outcomes, err := up.Sync(ctx, syncStoreFlags.path, syncStoreFlags.bucketName)
	if err != nil {
		return enhanceError("bundle sync", err)
	}

	data := report.SyncData{
		Tool:      "hiosctl",
		Version:   GetVersion(),
		Timestamp: time.Now(),
		Bucket:    syncStoreFlags.bucketName,
		Path:      syncStoreFlags.path,
		Outcomes:  outcomes,
		Summary:   report.Summarize(outcomes),
	}

	writer := os.Stdout
	if syncStoreFlags.outputFile != "" {
		f, err := os.Create(syncStoreFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	reporter, err := selectReporter(syncStoreFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.GenerateSync(data); err != nil {
		return enhanceError("report generation", err)
	}

	if failed := uploader.Failed(outcomes); failed > 0 {
		return fmt.Errorf("%d of %d bundles failed to sync", failed, len(outcomes))
	}
	return nil
}
