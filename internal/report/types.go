package report

import (
	"time"

	"github.com/Basfar/aws-healthlake-experiments/internal/doctor"
	"github.com/Basfar/aws-healthlake-experiments/internal/ingestor"
	"github.com/Basfar/aws-healthlake-experiments/internal/uploader"
)

// Reporter interface for the different report formats.
type Reporter interface {
	GenerateSync(data SyncData) error
	GenerateIngest(data IngestData) error
	GenerateDoctor(data DoctorData) error
}

// SyncData is the full result of one sync-store run.
type SyncData struct {
	Tool      string             `json:"tool"`
	Version   string             `json:"version"`
	Timestamp time.Time          `json:"timestamp"`
	Bucket    string             `json:"bucket"`
	Path      string             `json:"path"`
	Outcomes  []uploader.Outcome `json:"outcomes"`
	Summary   SyncSummary        `json:"summary"`
}

// SyncSummary aggregates sync outcomes by status.
type SyncSummary struct {
	Uploaded int `json:"uploaded"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Summarize tallies outcomes into a SyncSummary.
func Summarize(outcomes []uploader.Outcome) SyncSummary {
	var s SyncSummary
	for _, o := range outcomes {
		switch o.Status {
		case uploader.StatusUploaded:
			s.Uploaded++
		case uploader.StatusSkipped:
			s.Skipped++
		case uploader.StatusFailed:
			s.Failed++
		}
	}
	return s
}

// IngestData is the full result of one ingest run.
type IngestData struct {
	Tool        string             `json:"tool"`
	Version     string             `json:"version"`
	Timestamp   time.Time          `json:"timestamp"`
	Bucket      string             `json:"bucket"`
	DatastoreID string             `json:"datastore_id"`
	Outcomes    []ingestor.Outcome `json:"outcomes"`
}

// DoctorData is the full result of one doctor run.
type DoctorData struct {
	Tool        string        `json:"tool"`
	Version     string        `json:"version"`
	Timestamp   time.Time     `json:"timestamp"`
	Bucket      string        `json:"bucket"`
	DatastoreID string        `json:"datastore_id"`
	Result      doctor.Result `json:"result"`
}
