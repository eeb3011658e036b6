package athena

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(rt http.RoundTripper) *Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
		HTTPClient:  &http.Client{Transport: rt},
	}
	c := NewClient(cfg)
	c.pollInterval = time.Millisecond
	return c
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/x-amz-json-1.1"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSubmit(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"QueryExecutionId": "qid-1"}`), nil
	})

	id, err := newTestClient(rt).Submit(context.Background(), "SELECT 1", "db", "s3://bucket/results/")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id != "qid-1" {
		t.Fatalf("expected execution id qid-1, got %q", id)
	}
}

func TestWait_SucceedsAfterRunning(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		state := "RUNNING"
		if calls >= 2 {
			state = "SUCCEEDED"
		}
		return jsonResponse(`{"QueryExecution": {"QueryExecutionId": "qid-1", "Status": {"State": "` + state + `"}}}`), nil
	})

	if err := newTestClient(rt).Wait(context.Background(), "qid-1"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if calls < 2 {
		t.Fatalf("expected at least 2 polls, got %d", calls)
	}
}

func TestWait_FailureCarriesReason(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{"QueryExecution": {"Status": {"State": "FAILED", "StateChangeReason": "table not found"}}}`), nil
	})

	err := newTestClient(rt).Wait(context.Background(), "qid-1")
	if err == nil {
		t.Fatalf("expected error for failed query")
	}
	if !strings.Contains(err.Error(), "table not found") {
		t.Fatalf("expected state change reason in error, got %q", err.Error())
	}
}

func TestResults(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(`{
  "ResultSet": {
    "Rows": [
      {"Data": [{"VarCharValue": "id"}, {"VarCharValue": "name"}]},
      {"Data": [{"VarCharValue": "p1"}, {"VarCharValue": "Ada"}]}
    ]
  }
}`), nil
	})

	rows, err := newTestClient(rt).Results(context.Background(), "qid-1")
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Ada" {
		t.Fatalf("expected cell Ada, got %q", rows[1][1])
	}
}
