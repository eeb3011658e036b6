package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Basfar/aws-healthlake-experiments/internal/config"
	"github.com/Basfar/aws-healthlake-experiments/internal/doctor"
	"github.com/Basfar/aws-healthlake-experiments/internal/healthlake"
	"github.com/Basfar/aws-healthlake-experiments/internal/report"
	"github.com/Basfar/aws-healthlake-experiments/internal/storage"
	"github.com/spf13/cobra"
)

var doctorFlags struct {
	bucketName   string
	datastoreID  string
	outputFormat string
	outputFile   string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify credentials, bucket and datastore reachability",
	Long: `Checks that the required credential environment variables are set, then
that the bucket and the datastore are reachable with them. A missing
variable aborts before any remote call; otherwise both remote checks
run even if one of them fails.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorFlags.bucketName, "bucket-name", "", "S3 bucket to check")
	doctorCmd.Flags().StringVar(&doctorFlags.datastoreID, "datastore-id", "", "HealthLake datastore ID to check")
	doctorCmd.Flags().StringVarP(&doctorFlags.outputFormat, "format", "f", "text", "Output format: text or json")
	doctorCmd.Flags().StringVarP(&doctorFlags.outputFile, "output", "o", "", "Output file (default: stdout)")
	_ = doctorCmd.MarkFlagRequired("bucket-name")
	_ = doctorCmd.MarkFlagRequired("datastore-id")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var result doctor.Result
	if env := doctor.CheckEnv(); !env.Passed {
		// No client can be built without credentials; stop here.
		result = doctor.Result{Checks: []doctor.Check{env}}
	} else {
		creds, err := config.FromEnv()
		if err != nil {
			return err
		}
		awsCfg, err := creds.AWSConfig(ctx)
		if err != nil {
			return enhanceError("AWS client initialization", err)
		}
		d := doctor.New(storage.NewClient(awsCfg), healthlake.NewClient(awsCfg))
		result = d.Check(ctx, doctorFlags.bucketName, doctorFlags.datastoreID)
	}

	data := report.DoctorData{
		Tool:        "hiosctl",
		Version:     GetVersion(),
		Timestamp:   time.Now(),
		Bucket:      doctorFlags.bucketName,
		DatastoreID: doctorFlags.datastoreID,
		Result:      result,
	}

	writer := os.Stdout
	if doctorFlags.outputFile != "" {
		f, err := os.Create(doctorFlags.outputFile)
		if err != nil {
			return enhanceError("output file creation", err)
		}
		defer func() { _ = f.Close() }()
		writer = f
	}

	reporter, err := selectReporter(doctorFlags.outputFormat, writer)
	if err != nil {
		return err
	}
	if err := reporter.GenerateDoctor(data); err != nil {
		return enhanceError("report generation", err)
	}

	if !result.OverallPassed {
		return errors.New("one or more doctor checks failed")
	}
	return nil
}
