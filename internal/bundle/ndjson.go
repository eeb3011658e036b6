package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// HealthLake imports want one resource per line; a FHIR bundle wraps its
// resources in an entry array.
type fhirBundle struct {
	Entry []struct {
		Resource json.RawMessage `json:"resource"`
	} `json:"entry"`
}

// ToNDJSON rewrites a FHIR bundle document as newline-delimited JSON,
// one entry resource per line. Entries without a resource are dropped.
func ToNDJSON(data []byte) ([]byte, error) {
	var b fhirBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if len(b.Entry) == 0 {
		return nil, fmt.Errorf("document is not a FHIR bundle or has no entries")
	}

	var out bytes.Buffer
	for _, entry := range b.Entry {
		if len(entry.Resource) == 0 {
			continue
		}
		compact := bytes.Buffer{}
		if err := json.Compact(&compact, entry.Resource); err != nil {
			return nil, fmt.Errorf("compact entry resource: %w", err)
		}
		out.Write(compact.Bytes())
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}
