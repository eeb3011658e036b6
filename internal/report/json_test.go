package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONReporter_GenerateSync(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter(&buf).GenerateSync(syncData()); err != nil {
		t.Fatalf("GenerateSync failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected valid JSON, got %v:\n%s", err, buf.String())
	}
	if decoded["tool"] != "hiosctl" {
		t.Fatalf("expected tool hiosctl, got %v", decoded["tool"])
	}
	outcomes, ok := decoded["outcomes"].([]interface{})
	if !ok || len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %v", decoded["outcomes"])
	}
	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok || summary["failed"].(float64) != 1 {
		t.Fatalf("expected summary with 1 failure, got %v", decoded["summary"])
	}
}
