package report

import (
	"encoding/json"
	"io"
)

// JSONReporter generates JSON reports
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) encode(v interface{}) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// GenerateSync generates a JSON sync report
func (r *JSONReporter) GenerateSync(data SyncData) error {
	data.Timestamp = data.Timestamp.UTC()
	return r.encode(data)
}

// GenerateIngest generates a JSON ingest report
func (r *JSONReporter) GenerateIngest(data IngestData) error {
	data.Timestamp = data.Timestamp.UTC()
	return r.encode(data)
}

// GenerateDoctor generates a JSON doctor report
func (r *JSONReporter) GenerateDoctor(data DoctorData) error {
	data.Timestamp = data.Timestamp.UTC()
	return r.encode(data)
}
