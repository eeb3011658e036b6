package commands

import (
	"context"
	"os"
	"time"

	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/Basfar/aws-healthlake-experiments/internal/healthlake"
	"github.com/Basfar/aws-healthlake-experiments/internal/ingestor"
	"github.com/Basfar/aws-healthlake-experiments/internal/report"
	"github.com/Basfar/aws-healthlake-experiments/internal/storage"
	"github.com/spf13/cobra"
)

var ingestFlags struct {
	bucketName    string
	datastoreID   string
	accessRoleArn string
	kmsKeyArn     string
	outputFormat  string
	outputFile    string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Submit one HealthLake import job per stored object",
	Long: `Lists every object in the bucket and submits one FHIR import job per
key. Job lifecycle is owned by HealthLake; this command does not wait
for jobs to finish. Per-key submission failures are reported and the
remaining keys are still submitted.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFlags.bucketName, "bucket-name", "", "Source S3 bucket")
	ingestCmd.Flags().StringVar(&ingestFlags.datastoreID, "datastore-id", "", "HealthLake datastore ID")
	ingestCmd.Flags().StringVar(&ingestFlags.accessRoleArn, "access-role-arn", "", "Data access role ARN assumed by HealthLake")
	ingestCmd.Flags().StringVar(&ingestFlags.kmsKeyArn, "kms-key-arn", "", "KMS key for the job output location (optional)")
	ingestCmd.Flags().StringVarP(&ingestFlags.outputFormat, "format", "f", "text", "Output format: text or json")
	ingestCmd.Flags().StringVarP(&ingestFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
	_ = ingestCmd.MarkFlagRequired("bucket-name")
	_ = ingestCmd.MarkFlagRequired("datastore-id")
	_ = ingestCmd.MarkFlagRequired("access-role-arn")
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	creds, err := config.FromEnv()
	if err != nil {
		return err
	}
	awsCfg, err := creds.AWSConfig(ctx)
	if err != nil {
		return enhanceError("AWS client initialization", err)
	}

	printStatus("Ingesting s3://%s into datastore %s", ingestFlags.bucketName, ingestFlags.datastoreID)
	ing := ingestor.New(storage.NewClient(awsCfg), healthlake.NewClient(awsCfg))
	outcomes, err := ing.IngestAll(ctx, ingestor.Params{
		Bucket:            ingestFlags.bucketName,
		DatastoreID:       ingestFlags.datastoreID,
		DataAccessRoleArn: ingestFlags.accessRoleArn,
		KMSKeyArn:         ingestFlags.kmsKeyArn,
	})
	if err != nil {
		return enhanceError("bucket listing", err)
	}

	data := report.IngestData{
		Tool:        "hiosctl",
		Version:     GetVersion(),
		Timestamp:   time.Now(),
		Bucket:      ingestFlags.bucketName,
		DatastoreID: ingestFlags.datastoreID,
		Outcomes:    outcomes,
	}

	writer := os.Stdout
	if ingestFlags.outputFile != "" {
		f, err := os.Create(ingestFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	reporter, err := selectReporter(ingestFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.GenerateIngest(data); err != nil {
		return enhanceError("report generation", err)
	}
	return nil
}
