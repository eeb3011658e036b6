package report

import (
	"fmt"
	"io"

	"github.com/Basfar/aws-healthlake-experiments/internal/doctor"
	"github.com/Basfar/aws-healthlake-experiments/internal/ingestor"
	"github.com/Basfar/aws-healthlake-experiments/internal/uploader"
	"github.com/fatih/color"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{writer: w}
}

// GenerateSync generates a text sync report
func (r *TextReporter) GenerateSync(data SyncData) error {
	fmt.Fprintf(r.writer, "Bundle Sync Report\n")
	fmt.Fprintf(r.writer, "==================\n\n")
	fmt.Fprintf(r.writer, "Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Bucket: %s\n", data.Bucket)
	fmt.Fprintf(r.writer, "Path: %s\n\n", data.Path)

	for _, o := range data.Outcomes {
		switch o.Status {
		case uploader.StatusUploaded:
			fmt.Fprintf(r.writer, "  %s %s\n", color.GreenString("[UPLOADED]"), o.Key)
		case uploader.StatusSkipped:
			fmt.Fprintf(r.writer, "  %s %s (%s)\n", color.YellowString("[SKIPPED]"), o.Key, o.Detail)
		case uploader.StatusFailed:
			fmt.Fprintf(r.writer, "  %s %s: %s\n", color.RedString("[FAILED]"), o.Key, o.Detail)
		}
	}

	fmt.Fprintf(r.writer, "\nUploaded: %d, Skipped: %d, Failed: %d\n",
		data.Summary.Uploaded, data.Summary.Skipped, data.Summary.Failed)
	return nil
}

// GenerateIngest generates a text ingest report
func (r *TextReporter) GenerateIngest(data IngestData) error {
	fmt.Fprintf(r.writer, "HealthLake Ingest Report\n")
	fmt.Fprintf(r.writer, "========================\n\n")
	fmt.Fprintf(r.writer, "Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Bucket: %s\n", data.Bucket)
	fmt.Fprintf(r.writer, "Datastore: %s\n\n", data.DatastoreID)

	submitted, failed := 0, 0
	for _, o := range data.Outcomes {
		switch o.Status {
		case ingestor.StatusSubmitted:
			submitted++
			fmt.Fprintf(r.writer, "  %s %s (job %s)\n", color.GreenString("[SUBMITTED]"), o.Key, o.JobID)
		case ingestor.StatusFailed:
			failed++
			fmt.Fprintf(r.writer, "  %s %s: %s\n", color.RedString("[FAILED]"), o.Key, o.Detail)
		case ingestor.StatusNothing:
			fmt.Fprintf(r.writer, "  %s %s\n", color.YellowString("[INFO]"), o.Detail)
		}
	}

	fmt.Fprintf(r.writer, "\nSubmitted: %d, Failed: %d\n", submitted, failed)
	return nil
}

// GenerateDoctor generates a text doctor report
func (r *TextReporter) GenerateDoctor(data DoctorData) error {
	fmt.Fprintf(r.writer, "Doctor Report\n")
	fmt.Fprintf(r.writer, "=============\n\n")
	fmt.Fprintf(r.writer, "Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Bucket: %s\n", data.Bucket)
	fmt.Fprintf(r.writer, "Datastore: %s\n\n", data.DatastoreID)

	for _, c := range data.Result.Checks {
		r.printCheck(c)
	}

	fmt.Fprintf(r.writer, "\n")
	if data.Result.OverallPassed {
		fmt.Fprintf(r.writer, "Overall: %s\n", color.GreenString("PASS"))
	} else {
		fmt.Fprintf(r.writer, "Overall: %s\n", color.RedString("FAIL"))
	}
	return nil
}

func (r *TextReporter) printCheck(c doctor.Check) {
	status := color.GreenString("[PASS]")
	if !c.Passed {
		status = color.RedString("[FAIL]")
	}
	fmt.Fprintf(r.writer, "  %s %s", status, c.Name)
	if c.Detail != "" {
		fmt.Fprintf(r.writer, ": %s", c.Detail)
	}
	fmt.Fprintf(r.writer, "\n")
}
